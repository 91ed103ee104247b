package err

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/parlance-lang/parlance/source/token"
)

// A map from error identifiers to functions that supply the corresponding error messages
// and explanations.
//
// Errors in the map are in alphabetical order of their identifiers.
//
// Major categories are eval, fn, hub, lex, num, parse, type and var.

var ErrorCreatorMap = map[string]ErrorCreator{

	"eval/arg/index": {
		Message: func(tok *token.Token, args ...any) string {
			return "there is no argument " + emph("#"+fmt.Sprint(args[0]))
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The arguments of a block are numbered from " + emph("#0") + ". This block was given " +
				strconv.Itoa(args[1].(int)) + " argument" + plural(args[1].(int)) + "."
		},
	},

	"eval/args/few": {
		Message: func(tok *token.Token, args ...any) string {
			return "too few arguments passed to " + emph(args[0]) + " on " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The verb " + emph(args[0]) + " on " + emph(args[1]) + " keeps taking arguments until " +
				"it has as many as it was declared with, but the clause ended first. A clause ends at " +
				"a " + emph(".") + ", a " + emph(",") + ", a " + emph(";") + " or the end of the block."
		},
	},

	"eval/args/many": {
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " on " + emph(args[1]) + " expects " + strconv.Itoa(args[2].(int)) +
				" argument" + plural(args[2].(int)) + " but got " + strconv.Itoa(args[3].(int))
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "More arguments were supplied to the verb than it was declared with."
		},
	},

	"eval/args/type": {
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " on " + emph(args[1]) + " expects " + emph(args[2]) + " for " +
				emph("#"+strconv.Itoa(args[3].(int))) + " but got " + emph(args[4])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Arguments are never converted from one type to another, even between numeric " +
				"types. To change the width of a number use the " + emph(":") + " verb, e.g. " +
				emph("3 : 'i64") + "."
		},
	},

	"fn/builtin": {
		Message: func(tok *token.Token, args ...any) string {
			return "cannot redefine builtin verb " + emph(args[0]) + " on " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The builtin verbs of a type can't be redefined or shadowed, in any scope."
		},
	},

	"fn/method/type": {
		Message: func(tok *token.Token, args ...any) string {
			return "cannot define a method on unknown type " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Methods can be defined on the builtin types and on user types that are in scope."
		},
	},

	"fn/method/verb": {
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " is not a usable verb name"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A verb name is a symbol such as " + emph("'double") + " for a public method or " +
				emph("'::double") + " for a private one, which can only be used inside the type's own methods."
		},
	},

	"fn/redefine": {
		Message: func(tok *token.Token, args ...any) string {
			return "cannot redefine verb " + emph(args[0]) + " on " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A verb defined with " + emph("~>>") + " is immutable. Use " + emph("~>") +
				" to define a verb that can be redefined later."
		},
	},

	"hub/args": {
		Message: func(tok *token.Token, args ...any) string {
			return "can't parse the arguments of " + emph("#"+fmt.Sprint(args[0])) + ": " + fmt.Sprint(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Hub commands take their arguments the way a shell does: separated by spaces, with " +
				"quotes around anything that contains spaces."
		},
	},

	"hub/file": {
		Message: func(tok *token.Token, args ...any) string {
			return "can't read file " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The file doesn't exist or can't be opened: " + fmt.Sprint(args[1]) + "."
		},
	},

	"hub/help": {
		Message: func(tok *token.Token, args ...any) string {
			return "there is no help topic " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Type " + emph("#help") + " to see the list of topics."
		},
	},

	"hub/missing": {
		Message: func(tok *token.Token, args ...any) string {
			return emph("#"+fmt.Sprint(args[0])) + " needs " + fmt.Sprint(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Type " + emph("#help hub") + " to see how the hub commands are used."
		},
	},

	"hub/unknown": {
		Message: func(tok *token.Token, args ...any) string {
			return "unknown hub command " + emph("#"+fmt.Sprint(args[0]))
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The hub commands are " + emph("#exit") + ", " + emph("#help") + ", " + emph("#history") +
				", " + emph("#reset") + ", " + emph("#run") + " and " + emph("#why") + "."
		},
	},

	"lex/quote": {
		Message: func(tok *token.Token, args ...any) string {
			return "string literal not closed before the end of the line"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A string literal begins and ends with " + emph("\"") + " on the same line."
		},
	},

	"num/cast": {
		Message: func(tok *token.Token, args ...any) string {
			return "cannot cast " + emph(args[0]) + " to " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A number can be cast to any of the numeric types " +
				emph("i8 u8 i16 u16 i32 u32 i64 u64 i128 u128 f32 f64") + "."
		},
	},

	"num/div": {
		Message: func(tok *token.Token, args ...any) string {
			return "division by zero"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Integer division and remainder by zero are errors. Floating point division by zero " +
				"gives an infinity instead."
		},
	},

	"parse/closer": {
		Message: func(tok *token.Token, args ...any) string {
			return "unmatched " + emph(tok.Literal) + " found"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A closing " + emph(tok.Literal) + " was found where a value should have started."
		},
	},

	"parse/unmatched": {
		Message: func(tok *token.Token, args ...any) string {
			return "unmatched " + emph(tok.Literal) + " found"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The " + emph(tok.Literal) + " has no matching " + emph(token.Closer(tok.Type)) + " after it."
		},
	},

	"type/cast/count": {
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " has " + strconv.Itoa(args[1].(int)) + " field" + plural(args[1].(int)) +
				", so needs " + strconv.Itoa(2*args[1].(int)) + " elements, but the array has " +
				strconv.Itoa(args[2].(int))
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "To make an instance of a user type, supply an array of field names and values, e.g. " +
				emph("[':x 1 ':y 2] : 'point") + "."
		},
	},

	"type/cast/duplicate": {
		Message: func(tok *token.Token, args ...any) string {
			return "field " + emph(args[1]) + " of " + emph(args[0]) + " is given twice"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Every field of the type must be given exactly once."
		},
	},

	"type/cast/name": {
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " has no field " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The fields of a type are the ones named when it was defined with " + emph("=>>") +
				" or " + emph("->>") + "."
		},
	},

	"type/cast/pair": {
		Message: func(tok *token.Token, args ...any) string {
			return "expected a field name symbol but got " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The array alternates field names, written as symbols such as " + emph("':x") +
				" or " + emph("'::x") + ", with their values."
		},
	},

	"type/cast/privacy": {
		Message: func(tok *token.Token, args ...any) string {
			return "field " + emph(args[1]) + " of " + emph(args[0]) + " is " + fmt.Sprint(args[2])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Public fields are named with " + emph(":") + " and private fields with " +
				emph("::") + ", both in the type definition and when making an instance."
		},
	},

	"type/cast/type": {
		Message: func(tok *token.Token, args ...any) string {
			return "field " + emph(args[1]) + " of " + emph(args[0]) + " expects " + emph(args[2]) +
				" but got " + emph(args[3])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Field values must be of exactly the declared type."
		},
	},

	"type/name": {
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " is not the name of a type"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Types are named by the symbols " + emph("'bool 'i8 'u8 'i16 'u16 'i32 'u32 'i64 'u64 " +
				"'i128 'u128 'f32 'f64 'string 'symbol '[] '{} '_") + ", by the names of user types in " +
				"scope, or by an array of type names for a function."
		},
	},

	"type/redefine": {
		Message: func(tok *token.Token, args ...any) string {
			return "cannot redefine type " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A type defined with " + emph("=>>") + " is immutable. Use " + emph("->>") +
				" to define a type that can be redefined later."
		},
	},

	"type/reserved": {
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " is already the name of a builtin type"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "User types can't take the names of the builtin types."
		},
	},

	"type/schema/duplicate": {
		Message: func(tok *token.Token, args ...any) string {
			return "field " + emph(args[1]) + " of " + emph(args[0]) + " is declared twice"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Each field of a type must have its own name."
		},
	},

	"type/schema/field": {
		Message: func(tok *token.Token, args ...any) string {
			return "malformed field " + emph(args[1]) + " in definition of " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Each field of a type is declared by an array of three things: " + emph("T") +
				" or " + emph("()") + " for whether it is mutable, its name as a symbol such as " +
				emph("':x") + " or " + emph("'::x") + ", and its type, e.g. " + emph("[T ':x 'i32]") + "."
		},
	},

	"type/sig": {
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " can't be used to describe a type"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The types of a function's parameters are given as an array of type names such as " +
				emph("['i32 'string]") + ", which may contain further arrays for parameters that are " +
				"themselves functions."
		},
	},

	"var/member/field": {
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " has no field " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The fields of a user type are fixed when the type is defined."
		},
	},

	"var/member/immutable": {
		Message: func(tok *token.Token, args ...any) string {
			return "cannot redefine immutable field " + emph(args[1]) + " of " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Only fields declared with " + emph("T") + " as their first element can be changed."
		},
	},

	"var/member/owner": {
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " is not an instance of a user type"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Only instances of user types have fields."
		},
	},

	"var/member/private": {
		Message: func(tok *token.Token, args ...any) string {
			return "field " + emph(args[1]) + " of " + emph(args[0]) + " is private"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Private fields are read with " + emph("::") + ", and only from inside a method of " +
				"the type itself."
		},
	},

	"var/member/public": {
		Message: func(tok *token.Token, args ...any) string {
			return "field " + emph(args[1]) + " of " + emph(args[0]) + " is public"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Public fields are read with " + emph(":") + ", e.g. " + emph("p:x") + "."
		},
	},

	"var/member/self": {
		Message: func(tok *token.Token, args ...any) string {
			return "private field " + emph(args[1]) + " of " + emph(args[0]) + " is not accessible here"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Private fields can only be used from inside the methods of their own type."
		},
	},

	"var/member/type": {
		Message: func(tok *token.Token, args ...any) string {
			return "field " + emph(args[1]) + " of " + emph(args[0]) + " has type " + emph(args[2]) +
				" and can't be given a value of type " + emph(args[3])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A field keeps the type it was declared with."
		},
	},

	"var/redefine": {
		Message: func(tok *token.Token, args ...any) string {
			return "cannot redefine variable " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A variable bound with " + emph("=>") + " is immutable in every scope for as long as " +
				"it exists. Use " + emph("->") + " for a variable that can be rebound."
		},
	},

	"var/reserved": {
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " is reserved and cannot be bound"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return emph("T") + " is the true value and " + emph("##") + " is the receiver of a method."
		},
	},

	"var/undefined": {
		Message: func(tok *token.Token, args ...any) string {
			return "variable " + emph(args[0]) + " not found"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A label that isn't a verb of the value before it is looked up as a variable. " +
				"Variables are bound with " + emph("->") + " and " + emph("=>") + ", e.g. " +
				emph("12 -> 'twelve") + "."
		},
	},
}

func emph(s any) string {
	if t, ok := s.(string); ok {
		s = strings.TrimSpace(t)
	}
	return fmt.Sprintf("'%v'", s)
}

func plural(i int) string {
	if i == 1 {
		return ""
	}
	return "s"
}
