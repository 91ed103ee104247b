package repl

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/lmorg/readline"
	"github.com/mattn/go-isatty"

	"github.com/parlance-lang/parlance/source/hub"
)

// Where the REPL gets its lines from. Readline returns io.EOF when there are no more.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// Reads from a terminal, with line editing, tab completion of hub commands, and the hub's
// history.
type terminalReader struct {
	rline *readline.Instance
}

func newTerminalReader(hb *hub.Hub) *terminalReader {
	rline := readline.NewInstance()
	if hb.History != nil {
		rline.History = hb.History
	}
	rline.TabCompleter = complete
	return &terminalReader{rline: rline}
}

func (tr *terminalReader) SetPrompt(prompt string) {
	tr.rline.SetPrompt(prompt)
}

// Ctrl-C abandons the line being typed; Ctrl-D leaves.
func (tr *terminalReader) Readline() (string, error) {
	for {
		line, e := tr.rline.Readline()
		retry, e := readlineErr(e)
		if retry {
			continue
		}
		return line, e
	}
}

// Readline reports Ctrl-C and Ctrl-D as errors whose text is one of its constants.
func readlineErr(e error) (bool, error) {
	if e == nil {
		return false, nil
	}
	switch e.Error() {
	case readline.ErrCtrlC:
		return true, nil
	case readline.ErrEOF:
		return false, io.EOF
	}
	return false, e
}

// Reads lines from anything else, so that input can be piped in.
type scannerReader struct {
	scanner *bufio.Scanner
}

func NewScannerReader(in io.Reader) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(in)}
}

func (sr *scannerReader) SetPrompt(prompt string) {}

func (sr *scannerReader) Readline() (string, error) {
	if sr.scanner.Scan() {
		return sr.scanner.Text(), nil
	}
	if e := sr.scanner.Err(); e != nil {
		return "", e
	}
	return "", io.EOF
}

// A terminal reader if stdin is a terminal, and a scanner otherwise. The history of
// piped input isn't kept.
func NewLineReader(hb *hub.Hub) LineReader {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return newTerminalReader(hb)
	}
	return NewScannerReader(os.Stdin)
}

// Passes lines to the hub until the user leaves or the input runs out.
func Start(hb *hub.Hub, lr LineReader) error {
	for {
		lr.SetPrompt(hb.Prompt())
		line, e := lr.Readline()
		if e == io.EOF {
			return nil
		}
		if e != nil {
			return e
		}
		if hb.Do(strings.TrimSpace(line)) {
			return nil
		}
	}
}

func complete(line []rune, pos int, dtx readline.DelayedTabContext) (string, []string, map[string]string, readline.TabDisplayType) {
	typed := string(line[:pos])
	var suggestions []string
	candidates := hub.HUB_COMMANDS
	if strings.HasPrefix(typed, "#help ") {
		candidates = hub.HelpTopics()
		typed = strings.TrimLeft(typed[len("#help "):], " ")
	} else if strings.Contains(typed, " ") {
		return typed, nil, nil, readline.TabDisplayGrid
	}
	for _, candidate := range candidates {
		if strings.HasPrefix(candidate, typed) {
			suggestions = append(suggestions, candidate[len(typed):])
		}
	}
	return string(line[:pos]), suggestions, nil, readline.TabDisplayGrid
}
