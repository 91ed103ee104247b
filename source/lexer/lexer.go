package lexer

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/parlance-lang/parlance/source/err"
	"github.com/parlance-lang/parlance/source/settings"
	"github.com/parlance-lang/parlance/source/token"
)

type lexer struct {
	runes  *RuneSupplier
	source string
	tokens []token.Token
	Ers    err.Errors
}

func NewLexer(source, input string) *lexer {
	return &lexer{
		runes:  NewRuneSupplier([]rune(input)),
		source: source,
		Ers:    []*err.Error{},
	}
}

// Lexes the whole of the input, returning the first error if there is one.
func Lex(source, input string) ([]token.Token, error) {
	l := NewLexer(source, input)
	tokens := l.GetTokens()
	if l.Ers.ErrorsExist() {
		return nil, l.Ers[0]
	}
	return tokens, nil
}

func (l *lexer) GetTokens() []token.Token {
	for {
		l.skipWhitespace()
		if l.runes.AtEnd() {
			break
		}
		lineNo, chStart := l.runes.Position()
		switch ch := l.runes.CurrentRune(); {
		case ch == '-' && l.runes.PeekRune() == '-':
			l.runes.SkipComment()
		case ch == '"':
			word, ok := l.runes.ReadString()
			if !ok {
				l.Throw("lex/quote", lineNo, chStart)
				l.runes.SkipComment()
				continue
			}
			l.addWords(word, lineNo, chStart)
		case isBracket(ch):
			l.runes.Next()
			l.addToken(string(ch), lineNo, chStart, chStart+1)
		default:
			word := l.runes.ReadWord()
			// A comment can start in the middle of a word.
			if i := strings.Index(word, "--"); i > 0 {
				word = word[:i]
				l.runes.SkipComment()
			}
			l.addWords(word, lineNo, chStart)
		}
	}
	return l.tokens
}

// Splits the trailing signs off the word and adds the resulting tokens.
func (l *lexer) addWords(word string, lineNo, chStart int) {
	ch := chStart
	for _, w := range splitTrailingSigns(word) {
		width := len([]rune(w))
		l.addToken(w, lineNo, ch, ch+width)
		ch = ch + width
	}
}

func (l *lexer) addToken(word string, lineNo, chStart, chEnd int) {
	tokenType, literal := classify(word)
	if settings.SHOW_LEXER {
		log.Trace().Str("type", string(tokenType)).Str("literal", literal).Int("line", lineNo).Msg("lexed")
	}
	l.tokens = append(l.tokens, token.Token{Type: tokenType, Literal: literal, Source: l.source,
		Line: lineNo, ChStart: chStart, ChEnd: chEnd})
}

func (l *lexer) skipWhitespace() {
	for !l.runes.AtEnd() && IsWhitespace(l.runes.CurrentRune()) {
		l.runes.Next()
	}
}

func (l *lexer) Throw(errorID string, lineNo, chStart int, args ...any) {
	_, chEnd := l.runes.Position()
	tok := token.Token{Type: token.ILLEGAL, Literal: errorID, Source: l.source, Line: lineNo, ChStart: chStart, ChEnd: chEnd}
	l.Ers = err.Throw(errorID, l.Ers, &tok, args...)
}

func splitTrailingSigns(word string) []string {
	if len(word) == 1 {
		return []string{word}
	}
	// The type names of arrays and lazy blocks look like signs but aren't.
	for _, typeName := range []string{"'[]", "'{}"} {
		if strings.HasPrefix(word, typeName) && allSigns(word[len(typeName):]) {
			return append([]string{typeName}, strings.Split(word[len(typeName):], "")...)
		}
	}
	pos := len(word)
	for pos > 0 && IsSign(rune(word[pos-1])) {
		pos--
	}
	result := []string{}
	if pos > 0 {
		result = append(result, word[:pos])
	}
	return append(result, strings.Split(word[pos:], "")...)
}

func allSigns(s string) bool {
	for _, ch := range s {
		if !IsSign(ch) {
			return false
		}
	}
	return true
}

func classify(word string) (token.TokenType, string) {
	switch word {
	case ".", ",", ";", "(", ")", "{", "}", "[", "]", "T":
		return token.TokenType(word), word
	}
	if tokenType, literal, ok := parseNumber(word); ok {
		return tokenType, literal
	}
	if len(word) >= 2 && strings.HasPrefix(word, "\"") && strings.HasSuffix(word, "\"") {
		return token.STRING, word[1 : len(word)-1]
	}
	if strings.HasPrefix(word, "'") {
		return token.SYMBOL, word[1:]
	}
	if n, ok := strings.CutPrefix(word, "#"); ok {
		if _, e := strconv.ParseUint(n, 10, 32); e == nil {
			return token.ARGUMENT, n
		}
	}
	return token.LABEL, word
}

// Numbers are a body followed by an optional suffix naming the type. A body that
// doesn't fit in the type means the word isn't a number at all, so e.g. 300u8 is a
// label.
func parseNumber(word string) (token.TokenType, string, bool) {
	body, suffix := word, token.TokenType("")
	for _, s := range token.NUMERIC_SUFFIXES {
		if b, ok := strings.CutSuffix(word, string(s)); ok {
			body, suffix = b, s
			break
		}
	}
	if body == "" {
		return "", "", false
	}
	var e error
	switch suffix {
	case "":
		if _, e = strconv.ParseInt(body, 10, 32); e == nil {
			return token.I32, body, true
		}
		if isDecimalFloat(body) {
			return token.F64, body, true
		}
		return "", "", false
	case token.I8:
		_, e = strconv.ParseInt(body, 10, 8)
	case token.I16:
		_, e = strconv.ParseInt(body, 10, 16)
	case token.I32:
		_, e = strconv.ParseInt(body, 10, 32)
	case token.I64:
		_, e = strconv.ParseInt(body, 10, 64)
	case token.U8:
		_, e = strconv.ParseUint(body, 10, 8)
	case token.U16:
		_, e = strconv.ParseUint(body, 10, 16)
	case token.U32:
		_, e = strconv.ParseUint(body, 10, 32)
	case token.U64:
		_, e = strconv.ParseUint(body, 10, 64)
	case token.I128, token.U128:
		if !fitsIn128(body, suffix == token.I128) {
			return "", "", false
		}
	case token.F32:
		_, e = strconv.ParseFloat(body, 32)
	case token.F64:
		_, e = strconv.ParseFloat(body, 64)
	}
	if e != nil {
		return "", "", false
	}
	return suffix, body, true
}

var (
	minI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxI128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

func fitsIn128(body string, signed bool) bool {
	if !isInteger(body) {
		return false
	}
	n, ok := new(big.Int).SetString(body, 10)
	if !ok {
		return false
	}
	if signed {
		return n.Cmp(minI128) >= 0 && n.Cmp(maxI128) <= 0
	}
	return n.Sign() >= 0 && n.Cmp(maxU128) <= 0
}

func isInteger(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if len(s) == 0 {
		return false
	}
	for _, ch := range s {
		if !IsDigit(ch) {
			return false
		}
	}
	return true
}

// An unsuffixed number with a decimal point or exponent, such as 1.5 or -2e3. Words
// like inf and NaN, which ParseFloat would accept, stay labels.
func isDecimalFloat(s string) bool {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) == 0 || !IsDigit(rune(digits[0])) || !strings.ContainsAny(digits, ".eE") {
		return false
	}
	_, e := strconv.ParseFloat(s, 64)
	return e == nil
}

func IsDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func IsWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isBracket(ch rune) bool {
	return ch == '(' || ch == ')' || ch == '[' || ch == ']' || ch == '{' || ch == '}'
}

// The characters that are split off the end of a word.
func IsSign(ch rune) bool {
	return isBracket(ch) || ch == '.' || ch == ',' || ch == ';'
}
