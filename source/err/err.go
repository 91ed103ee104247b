package err

import (
	"github.com/parlance-lang/parlance/source/text"
	"github.com/parlance-lang/parlance/source/token"
)

// The user-facing error. Anything the user can get wrong, from an unclosed quote to a
// private field accessed from outside its type, ends up as one of these.
type Error struct {
	ErrorId string
	Message string
	Args    []any
	Trace   []*token.Token
	Token   *token.Token
}

func (e *Error) Error() string {
	return e.Message
}

// Records a user-defined verb that the error passed up through.
func (e *Error) AddToTrace(tok *token.Token) {
	e.Trace = append(e.Trace, tok)
}

type Errors []*Error

type ErrorCreator struct {
	Message     func(tok *token.Token, args ...any) string
	Explanation func(errors Errors, pos int, tok *token.Token, args ...any) string
}

// Makes an error from the catalogue. An unknown identifier is a bug in the interpreter,
// not the user's code.
func CreateErr(errorId string, tok *token.Token, args ...any) *Error {
	creator, ok := ErrorCreatorMap[errorId]
	if !ok {
		panic("no error with id " + errorId + ".")
	}
	if tok == nil {
		tok = &token.Token{}
	}
	return &Error{ErrorId: errorId, Message: creator.Message(tok, args...), Args: args, Token: tok}
}

func Throw(errorId string, ers Errors, tok *token.Token, args ...any) Errors {
	return append(ers, CreateErr(errorId, tok, args...))
}

func (ers Errors) ErrorsExist() bool {
	return len(ers) > 0
}

// The explanation of the error at position pos of a list of errors, as shown by the
// hub's #why command.
func (ers Errors) Explain(pos int) string {
	e := ers[pos]
	creator := ErrorCreatorMap[e.ErrorId]
	if creator.Explanation == nil {
		return ""
	}
	return creator.Explanation(ers, pos, e.Token, e.Args...)
}

// Describes the error with its position, for printing.
func (e *Error) Describe() string {
	result := "$Error$" + e.Message + text.DescribePos(e.Token) + "."
	for _, tok := range e.Trace {
		result = result + "\n" + text.BULLET + "in " + text.Emph(tok.Literal) + text.DescribePos(tok)
	}
	return result
}
