package token

import (
	"strings"
)

// A TokenizedCodeChunk is a read cursor over an immutable slice of tokens. The slice
// itself is never written to, so sub-chunks and lazy blocks can share it freely.
type TokenizedCodeChunk struct {
	position int
	code     []Token
}

func NewCodeChunk(code []Token) *TokenizedCodeChunk {
	return &TokenizedCodeChunk{code: code}
}

// The number of tokens still to be read.
func (tcc *TokenizedCodeChunk) Length() int {
	return len(tcc.code) - tcc.position
}

func (tcc *TokenizedCodeChunk) IsEmpty() bool {
	return tcc.Length() == 0
}

func (tcc *TokenizedCodeChunk) PeekToken() Token {
	if tcc.position < len(tcc.code) {
		return tcc.code[tcc.position]
	}
	return tcc.eof()
}

func (tcc *TokenizedCodeChunk) NextToken() Token {
	if tcc.position < len(tcc.code) {
		tcc.position++
		return tcc.code[tcc.position-1]
	}
	return tcc.eof()
}

// Having just read the opening delimiter opener, finds its partner and returns the
// tokens strictly between them as a new chunk, leaving the cursor after the closer.
// Only delimiters of the same kind are counted. Returns false if there is no partner.
func (tcc *TokenizedCodeChunk) ExtractGroup(opener Token) (*TokenizedCodeChunk, bool) {
	closer := Closer(opener.Type)
	if closer == "" {
		panic("tried to extract a group opened by " + opener.Literal + ".")
	}
	depth := 0
	for i := tcc.position; i < len(tcc.code); i++ {
		switch tcc.code[i].Type {
		case opener.Type:
			depth++
		case closer:
			if depth == 0 {
				group := NewCodeChunk(tcc.code[tcc.position:i:i])
				tcc.position = i + 1
				return group, true
			}
			depth--
		}
	}
	return nil, false
}

// The unread tokens. The result aliases the chunk's storage and must not be modified.
func (tcc *TokenizedCodeChunk) Tokens() []Token {
	return tcc.code[tcc.position:len(tcc.code):len(tcc.code)]
}

func (tcc *TokenizedCodeChunk) String() string {
	var sb strings.Builder
	for _, tok := range tcc.code[tcc.position:] {
		sb.WriteString(tok.String() + " ")
	}
	return strings.TrimSpace(sb.String())
}

func (tcc *TokenizedCodeChunk) eof() Token {
	if len(tcc.code) == 0 {
		return Token{Type: EOF, Literal: "EOF"}
	}
	last := tcc.code[len(tcc.code)-1]
	return Token{Type: EOF, Literal: "EOF", Line: last.Line, ChStart: last.ChEnd, ChEnd: last.ChEnd, Source: last.Source}
}
