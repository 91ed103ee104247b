package text

// This consists of a bunch of text utilities to help in generating pretty and meaningful
// help messages, error messages, etc.

import (
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/parlance-lang/parlance/source/token"
)

const (
	VERSION        = "0.3.2"
	BULLET        = "  ▪ "
	PROMPT        = ">> "
	DEFAULT_WIDTH = 92
)

var (
	RESET  = "\033[0m"
	RED    = "\033[31m"
	GREEN  = "\033[32m"
	YELLOW = "\033[33m"
	CYAN   = "\033[36m"

	ERROR     = "$Error$"
	HUB_ERROR = "$Hub error$"
)

var OK = Green("OK")

// The color package decides whether stdout can take escape codes; if it can't we blank
// ours out too.
func init() {
	if color.NoColor {
		DisableColor()
	}
}

func DisableColor() {
	RESET, RED, GREEN, YELLOW, CYAN = "", "", "", "", ""
	OK = "OK"
}

func Cyan(s string) string {
	return CYAN + s + RESET
}

func Emph(s string) string {
	return "'" + s + "'"
}

func Red(s string) string {
	return RED + s + RESET
}

func Green(s string) string {
	return GREEN + s + RESET
}

func Logo() string {
	var padding string
	if len(VERSION)%2 == 1 {
		padding = ","
	}
	titleText := " Parlance" + padding + " version " + VERSION + " "
	mark := Cyan("◆")
	leftMargin := "  "
	bar := strings.Repeat("═", len(titleText)/2)
	logoString := "\n" +
		leftMargin + "╔" + bar + mark + bar + "╗\n" +
		leftMargin + "║" + titleText + "║\n" +
		leftMargin + "╚" + bar + mark + bar + "╝\n\n"
	return logoString
}

const HELP = "\nUsage: parlance [flags] [<script> [args...]]\n\n" +
	"With no script, starts the REPL. Flags are:\n\n"

func DescribePos(tok *token.Token) string {
	if tok == nil {
		return ""
	}
	prettySource := tok.Source
	if prettySource == "" {
		return ""
	}
	if prettySource != "REPL input" {
		prettySource = "'" + prettySource + "'"
	}
	if tok.Line > 0 {
		result := strconv.Itoa(tok.Line) + ":" + strconv.Itoa(tok.ChStart)
		if tok.ChStart != tok.ChEnd {
			result = result + "-" + strconv.Itoa(tok.ChEnd)
		}
		result = " at line" + "@" + result + "@"

		return result + "of " + prettySource
	}
	return " in " + prettySource
}

// The width to wrap text to: the terminal's, if stdout is one.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DEFAULT_WIDTH
	}
	return width
}

func HighlightLine(plainLine string, highlighter rune) (string, rune) {
	// Anything enclosed in '   ' is code and is therefore highlighted, i.e. 'foo' serves the
	// same function as writing foo in a monotype font would in a textbook or manual.

	// The ' doesn't trigger the highlighting unless it follows a line beginning or space etc,
	// because it might be an apostrophe.

	highlitLine := ""
	prevCh := ' '
	if highlighter != ' ' {
		highlitLine = CYAN
	}

	for _, ch := range plainLine {
		if highlighter == ' ' && ((prevCh == ' ' || prevCh == '\n' || prevCh == '$') &&
			(ch == '\'' || ch == '"' || ch == '$') || ch == '@') {
			highlighter = ch
			if highlighter == '$' {
				highlitLine = highlitLine + RED
				continue
			}
			if highlighter == '@' {
				highlitLine = highlitLine + " " + YELLOW
				continue
			}
			highlitLine = highlitLine + CYAN
		} else {
			if ch == highlighter {
				prevCh = ch
				highlighter = ' '

				if ch == '$' {
					highlitLine = highlitLine + RESET + ": "
					continue
				}
				if ch == '@' {
					highlitLine = highlitLine + " " + RESET
					continue
				}
				highlitLine = highlitLine + string(ch) + RESET
				continue
			}
		}
		prevCh = ch
		highlitLine = highlitLine + string(ch)
	}
	return highlitLine, highlighter
}

// Wraps s between the margins, highlighting as HighlightLine does. A line starting with
// |- opens or closes a box for code.
func Pretty(s string, lMargin, rMargin int) string {
	LENGTH := rMargin - lMargin
	result := ""
	codeWidth := -1
	highlighter := ' '
	for i := 0; i < len(s); {
		result = result + strings.Repeat(" ", lMargin)
		e := i + LENGTH
		j := 0
		if e > len(s) {
			j = len(s) - i
		} else if strings.Contains(s[i:e], "\n") {
			j = strings.Index(s[i:e], "\n")
		} else {
			j = strings.LastIndex(s[i:e], " ")
		}
		if j == -1 {
			j = LENGTH
		}
		if strings.Contains(s[i:i+j], "\n") {
			j = strings.Index(s[i:i+j], "\n")
		}

		plainLine := s[i : i+j]
		if len(plainLine) >= 2 && plainLine[0:2] == "|-" {
			if codeWidth > 0 {
				result = result + (" └──" + strings.Repeat("─", codeWidth) + "┘\n")
				codeWidth = -1
			} else {
				codeWidth = len(plainLine)
				result = result + (" ┌──" + strings.Repeat("─", codeWidth) + "┐\n")
			}
		} else if codeWidth > 0 {
			repeatNo := codeWidth - len(plainLine)
			if repeatNo < 0 {
				repeatNo = 0
			}
			result = result + (" │  " + Cyan(plainLine) + strings.Repeat(" ", repeatNo) + "│\n")
		} else {
			var str string
			str, highlighter = HighlightLine(plainLine, highlighter)
			result = result + (str + "\n")
		}
		i = i + j + 1
	}
	return result
}
