package lexer

// The RuneSupplier walks the source a rune at a time, keeping count of lines and
// columns for the tokens' positions.
type RuneSupplier struct {
	code      []rune
	pos       int
	lineNo    int
	lineStart int
}

func NewRuneSupplier(code []rune) *RuneSupplier {
	return &RuneSupplier{code: code, lineNo: 1}
}

func (rs *RuneSupplier) CurrentRune() rune {
	if rs.pos < len(rs.code) {
		return rs.code[rs.pos]
	}
	return 0
}

func (rs *RuneSupplier) PeekRune() rune {
	if rs.pos+1 < len(rs.code) {
		return rs.code[rs.pos+1]
	}
	return 0
}

func (rs *RuneSupplier) AtEnd() bool {
	return rs.pos >= len(rs.code)
}

func (rs *RuneSupplier) Next() {
	if rs.pos >= len(rs.code) {
		return
	}
	if rs.code[rs.pos] == '\n' {
		rs.lineNo++
		rs.lineStart = rs.pos + 1
	}
	rs.pos++
}

func (rs *RuneSupplier) Position() (int, int) {
	return rs.lineNo, rs.pos - rs.lineStart
}

// Reads a string literal, starting at its opening quote and finishing after its closing
// one. The bool is false if the line or the input ended first.
func (rs *RuneSupplier) ReadString() (string, bool) {
	result := []rune{'"'}
	for {
		rs.Next()
		ch := rs.CurrentRune()
		if rs.AtEnd() || ch == '\n' || ch == '\r' {
			return string(result), false
		}
		result = append(result, ch)
		if ch == '"' {
			rs.Next()
			return string(result), true
		}
	}
}

// Reads up to the next whitespace.
func (rs *RuneSupplier) ReadWord() string {
	result := []rune{}
	for !rs.AtEnd() && !IsWhitespace(rs.CurrentRune()) {
		result = append(result, rs.CurrentRune())
		rs.Next()
	}
	return string(result)
}

// Skips to the end of the line, leaving the newline to be read.
func (rs *RuneSupplier) SkipComment() {
	for !rs.AtEnd() && rs.CurrentRune() != '\n' {
		rs.Next()
	}
}
