// All this does is contain in one place the constants controlling which bits of the inner
// workings of the lexer and evaluator are logged for debugging purposes, and the user's
// configuration file. In a release the SHOW_ flags must all be set to false.

package settings

const (
	// These do what it sounds like. The output goes to the trace level of the logger.
	SHOW_LEXER     = false
	SHOW_EVALUATOR = false // Every verb applied and every block entered and left.
	SHOW_REGISTRY  = false // Every verb, variable and type registered.

	SHOW_TESTS = false // Says whether the tests should say what is being tested, useful if one of them crashes and we don't know which.
)

// The name given as the source of tokens typed into the REPL.
const REPL_SOURCE = "REPL input"

// The extension of script files.
const EXTENSION = ".par"
