package hub

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/shlex"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/parlance-lang/parlance/source/builtins"
	"github.com/parlance-lang/parlance/source/database"
	"github.com/parlance-lang/parlance/source/environment"
	"github.com/parlance-lang/parlance/source/err"
	"github.com/parlance-lang/parlance/source/evaluator"
	"github.com/parlance-lang/parlance/source/lexer"
	"github.com/parlance-lang/parlance/source/settings"
	"github.com/parlance-lang/parlance/source/text"
	"github.com/parlance-lang/parlance/source/token"
	"github.com/parlance-lang/parlance/source/values"
)

const DEFAULT_HISTORY_LINES = 10

// The hub owns the REPL's session: its environment, which persists from one line to the
// next, the last error for #why to explain, and the line history.
type Hub struct {
	out     io.Writer
	config  *settings.Config
	env     *environment.Environment
	ers     err.Errors
	History *database.History
}

func New(out io.Writer, config *settings.Config, history *database.History) *Hub {
	return &Hub{
		out:     out,
		config:  config,
		env:     builtins.NewEnvironment(out),
		History: history,
	}
}

func (hub *Hub) Prompt() string {
	return hub.config.Prompt
}

// #0 is an argument, not a hub command.
var hubCommand = regexp.MustCompile(`^\s*#[A-Za-z]`)

// Takes a line from the REPL and either does it as a hub command or evaluates it in the
// session's environment and shows the result. Returns true if the user wants to leave.
func (hub *Hub) Do(line string) bool {
	if hubCommand.MatchString(line) {
		verb, args, e := hub.ParseHubCommand(line)
		if e != nil {
			hub.WriteErr(e)
			return false
		}
		return hub.DoHubCommand(verb, args)
	}
	result, e := Evaluate(hub.env, settings.REPL_SOURCE, line)
	if e != nil {
		hub.WriteErr(e)
		return false
	}
	hub.WriteString(hub.env.FormatInDetail(result) + "\n")
	return false
}

// Evaluates the code in the top scope of the environment, so that what it defines stays
// defined. Returns the value of the last sentence.
func Evaluate(env *environment.Environment, source, code string) (values.Value, error) {
	tokens, e := lexer.Lex(source, code)
	if e != nil {
		return values.Value{}, e
	}
	results, e := evaluator.EvalBlockDirectly(env, token.NewCodeChunk(tokens))
	if e != nil {
		return values.Value{}, e
	}
	return evaluator.Last(results), nil
}

// Splits a hub command into its verb and arguments, the way a shell would.
func (hub *Hub) ParseHubCommand(line string) (string, []string, error) {
	words, e := shlex.Split(strings.TrimSpace(line)[1:])
	if e != nil {
		verb := strings.Fields(strings.TrimSpace(line)[1:])[0]
		return "", nil, err.CreateErr("hub/args", nil, verb, e.Error())
	}
	return words[0], words[1:], nil
}

func (hub *Hub) DoHubCommand(verb string, args []string) bool {
	log.Debug().Str("verb", verb).Strs("args", args).Msg("hub command")
	switch verb {
	case "exit":
		return true
	case "help":
		topic := "topics"
		if len(args) > 0 {
			topic = args[0]
		}
		helpMessage, ok := helpStrings[topic]
		if !ok {
			hub.WriteErr(err.CreateErr("hub/help", nil, topic))
			return false
		}
		hub.WritePretty(helpMessage + "\n")
	case "history":
		n := DEFAULT_HISTORY_LINES
		if len(args) > 0 {
			i, e := strconv.Atoi(args[0])
			if e != nil || i < 0 {
				hub.WriteErr(err.CreateErr("hub/args", nil, verb, "expected a number of lines, not "+args[0]))
				return false
			}
			n = i
		}
		hub.showHistory(n)
	case "reset":
		hub.env = builtins.NewEnvironment(hub.out)
		hub.ers = nil
		hub.WriteString(text.OK + "\n")
	case "run":
		if len(args) == 0 {
			hub.WriteErr(err.CreateErr("hub/missing", nil, verb, "the name of a script"))
			return false
		}
		env, result, e := runScript(args[0], args[1:], hub.out)
		if e != nil {
			hub.WriteErr(e)
			return false
		}
		hub.WriteString(env.FormatInDetail(result) + "\n")
	case "why":
		if !hub.ers.ErrorsExist() {
			hub.WriteString("There are no errors to explain.\n")
			return false
		}
		explanation := hub.ers.Explain(0)
		if explanation == "" {
			explanation = "There is no further explanation of this error."
		}
		hub.WritePretty("\n" + hub.ers[0].Describe() + "\n\n" + explanation + "\n\n")
	default:
		hub.WriteErr(err.CreateErr("hub/unknown", nil, verb))
	}
	return false
}

func (hub *Hub) showHistory(n int) {
	if hub.History == nil {
		return
	}
	entries := hub.History.Last(n)
	first := hub.History.Len() - len(entries)
	for i, entry := range entries {
		hub.WriteString(fmt.Sprintf("%4d  %-16s %s\n", first+i+1, humanize.Time(entry.EnteredAt), entry.Line))
	}
}

// Runs a script in an environment of its own, with the given arguments.
func RunScript(path string, args []string, out io.Writer) error {
	_, _, e := runScript(path, args, out)
	return e
}

// A path with no extension is taken to be a script's name without it.
func runScript(path string, args []string, out io.Writer) (*environment.Environment, values.Value, error) {
	if filepath.Ext(path) == "" {
		path = path + settings.EXTENSION
	}
	code, e := os.ReadFile(path)
	if e != nil {
		return nil, values.Value{}, err.CreateErr("hub/file", nil, path, e.Error())
	}
	tokens, e := lexer.Lex(path, string(code))
	if e != nil {
		return nil, values.Value{}, e
	}
	log.Debug().Str("script", path).Int("args", len(args)).Msg("running script")
	env := builtins.NewEnvironment(out)
	results, e := evaluator.EvalBlock(env, token.NewCodeChunk(tokens),
		environment.WithArgs(evaluator.ConvertCommandLineArgs(args)))
	if e != nil {
		return nil, values.Value{}, e
	}
	return env, evaluator.Last(results), nil
}

func (hub *Hub) width() int {
	if hub.config.Width > 0 {
		return hub.config.Width
	}
	return text.TerminalWidth()
}

func (hub *Hub) WritePretty(s string) {
	hub.WriteString(text.Pretty(s, 0, hub.width()))
}

// Shows an error. Errors in the user's code are kept so that #why can explain them.
func (hub *Hub) WriteErr(e error) {
	var ue *err.Error
	if errors.As(e, &ue) {
		hub.ers = err.Errors{ue}
		hub.WritePretty(ue.Describe() + "\n")
		return
	}
	hub.WritePretty(text.HUB_ERROR + e.Error() + "\n")
}

func (hub *Hub) WriteString(s string) {
	io.WriteString(hub.out, s)
}

// Describes an error for printing outside the REPL.
func DescribeErr(e error, width int) string {
	var ue *err.Error
	if errors.As(e, &ue) {
		return text.Pretty(ue.Describe(), 0, width)
	}
	return text.Pretty(text.ERROR+e.Error(), 0, width)
}

//go:embed help.txt
var helpFile string

var helpStrings = map[string]string{}

var helpTopics = []string{}

func init() {
	for _, section := range strings.Split(helpFile, "\n***\n") {
		lines := strings.Split(strings.TrimSpace(section), "\n")
		topic := strings.TrimSpace(lines[0])
		helpTopics = append(helpTopics, topic)
		helpStrings[topic] = "\n" + strings.TrimSpace(strings.Join(lines[1:], "\n")) + "\n"
	}
	sort.Strings(helpTopics)
	helpStringForHelp := "\nYou can get help on a subject by typing '#help <topic>' into the REPL.\n\n" +
		"Help topics are: \n\n"
	for _, v := range helpTopics {
		helpStringForHelp = helpStringForHelp + text.BULLET + v + "\n"
	}
	helpStrings["topics"] = helpStringForHelp
}

// The hub's commands, for tab completion.
var HUB_COMMANDS = []string{"#exit", "#help", "#history", "#reset", "#run", "#why"}

// The topics #help knows about, for tab completion.
func HelpTopics() []string {
	return helpTopics
}
