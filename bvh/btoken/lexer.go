// Package btoken splits BVH text into classified tokens.
//
// Whitespace (spaces, tabs, CR, LF in any combination) only separates tokens.
// Line numbers are still tracked because the motion section uses one line per
// frame.
package btoken

import (
	"strings"
)

type Lexer struct {
	src     []byte
	pos     Position
	pending []Token
	peeked  *peeked
}

type peeked struct {
	token Token
	err   error
}

func NewLexer(src []byte) *Lexer {
	l := &Lexer{src: src}
	l.Reset()
	return l
}

// Reset rewinds the lexer to the start of its input.
func (l *Lexer) Reset() {
	l.pos = Position{Offset: 0, Line: 1, Column: 1}
	l.pending = nil
	l.peeked = nil
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked == nil {
		token, err := l.scan()
		l.peeked = &peeked{token: token, err: err}
	}
	return l.peeked.token, l.peeked.err
}

// Next consumes and returns the next token. After the input is exhausted it
// keeps returning KindEOF.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		p := l.peeked
		l.peeked = nil
		return p.token, p.err
	}
	return l.scan()
}

// Tokenize lexes the whole input, including the trailing KindEOF token.
func Tokenize(src []byte) ([]Token, error) {
	l := NewLexer(src)
	tokens := make([]Token, 0, len(src)/4)
	for {
		token, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if token.Kind == KindEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) scan() (Token, error) {
	if len(l.pending) > 0 {
		token := l.pending[0]
		l.pending = l.pending[1:]
		return token, nil
	}

	l.skipWhitespace()
	if l.pos.Offset >= len(l.src) {
		return Token{Kind: KindEOF, Pos: l.pos}, nil
	}

	start := l.pos
	c := l.src[l.pos.Offset]
	switch {
	case c == '{':
		l.advance()
		return Token{Kind: KindLBrace, Text: "{", Pos: start}, nil
	case c == '}':
		l.advance()
		return Token{Kind: KindRBrace, Text: "}", Pos: start}, nil
	case c == ':':
		l.advance()
		return Token{Kind: KindColon, Text: ":", Pos: start}, nil
	case isControl(c):
		return Token{}, LexError{Pos: start, Byte: c}
	}

	for l.pos.Offset < len(l.src) && isWordByte(l.src[l.pos.Offset]) {
		l.advance()
	}
	word := string(l.src[start.Offset:l.pos.Offset])
	return l.classify(word, start), nil
}

func (l *Lexer) classify(word string, start Position) Token {
	if kw, ok := keywords[word]; ok {
		return Token{Kind: KindKeyword, Keyword: kw, Text: word, Pos: start}
	}
	// "Frames:" and "Time:" are usually written without a space before the
	// colon, and sometimes without one after it either. Joint names such as
	// "End:Effector" stay whole.
	if stem, rest, found := strings.Cut(word, ":"); found {
		if kw, ok := keywords[stem]; ok && (rest == "" || kw == KeywordFrames || kw == KeywordTime) {
			colonPos := start
			colonPos.Offset += len(stem)
			colonPos.Column += len(stem)
			l.pending = append(l.pending, Token{Kind: KindColon, Text: ":", Pos: colonPos})
			if rest != "" {
				restPos := colonPos
				restPos.Offset++
				restPos.Column++
				restToken := Token{Kind: KindIdentifier, Text: rest, Pos: restPos}
				if IsNumber(rest) {
					restToken.Kind = KindNumber
				}
				l.pending = append(l.pending, restToken)
			}
			return Token{Kind: KindKeyword, Keyword: kw, Text: stem, Pos: start}
		}
	}
	if IsNumber(word) {
		return Token{Kind: KindNumber, Text: word, Pos: start}
	}
	return Token{Kind: KindIdentifier, Text: word, Pos: start}
}

func (l *Lexer) skipWhitespace() {
	for l.pos.Offset < len(l.src) && isSpace(l.src[l.pos.Offset]) {
		l.advance()
	}
}

// advance moves past one byte. CRLF counts as a single line break, and so does
// a lone CR.
func (l *Lexer) advance() {
	c := l.src[l.pos.Offset]
	l.pos.Offset++
	switch c {
	case '\n':
		l.pos.Line++
		l.pos.Column = 1
	case '\r':
		if l.pos.Offset < len(l.src) && l.src[l.pos.Offset] == '\n' {
			l.pos.Column++
			return
		}
		l.pos.Line++
		l.pos.Column = 1
	default:
		l.pos.Column++
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isControl(c byte) bool {
	return (c < 0x20 && !isSpace(c)) || c == 0x7f
}

func isWordByte(c byte) bool {
	return !isSpace(c) && !isControl(c) && c != '{' && c != '}'
}

// IsNumber reports whether s is a decimal number lexeme: an optional sign,
// digits with an optional fractional part, and an optional exponent.
func IsNumber(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
