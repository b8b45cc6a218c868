package syntax

// tokenKind discriminates the token categories the parser cares about.
// Everything the boundary analysis does not need (operators, literals,
// numbers) is folded into tokenPunct and ignored downstream.
type tokenKind int

const (
	tokenEOF tokenKind = iota
	// tokenWord is a lowercase or underscore-led identifier or keyword
	// (defmodule, do, end, fn, alias, false, ...).
	tokenWord
	// tokenKeyword is a word immediately followed by a colon, i.e. a
	// keyword-list key such as `do:` or `as:`. A `do:` key does not open
	// an end-terminated block, which is why it gets its own kind.
	tokenKeyword
	// tokenQualified is a dotted name chain led by an uppercase letter or
	// by the self token, e.g. `Invoicing.Invoice` or `Invoicing.create_invoice`
	// or `__MODULE__.helper`.
	tokenQualified
	// tokenString is a string literal; only its presence matters, except
	// for doc attributes where presence means "documented".
	tokenString
	// tokenAtom is `:name`.
	tokenAtom
	// tokenAttr is `@name`.
	tokenAttr
	tokenPunct
)

type token struct {
	kind tokenKind
	text string
	line int
}

// lexer performs a best-effort scan of Elixir-flavoured source. Comments,
// strings (including heredocs and simple sigils) are consumed so that words
// like `end` inside them cannot unbalance the block tracking.
type lexer struct {
	src  []byte
	pos  int
	line int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src, line: 1}
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}

	return l.src[l.pos]
}

func (l *lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}

	return l.src[l.pos+offset]
}

func (l *lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++

	if ch == '\n' {
		l.line++
	}

	return ch
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isUpper(ch byte) bool { return ch >= 'A' && ch <= 'Z' }

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

// next returns the next significant token.
func (l *lexer) next() token {
	for l.pos < len(l.src) {
		ch := l.peek()

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '#':
			l.skipLineComment()
		case ch == '"' || ch == '\'':
			line := l.line
			text := l.scanString(ch)

			return token{kind: tokenString, text: text, line: line}
		case ch == '~':
			line := l.line
			if text, ok := l.scanSigil(); ok {
				return token{kind: tokenString, text: text, line: line}
			}

			l.advance()

			return token{kind: tokenPunct, text: "~", line: line}
		case ch == '?':
			// Character literal such as `?a` or `?"`; consume both runes so
			// the quote cannot start a bogus string.
			l.advance()
			if l.pos < len(l.src) {
				l.advance()
			}
		case ch == '@' && isIdentChar(l.peekAt(1)):
			line := l.line
			l.advance()

			return token{kind: tokenAttr, text: l.scanIdent(), line: line}
		case ch == ':' && (isLetter(l.peekAt(1)) || l.peekAt(1) == '_'):
			line := l.line
			l.advance()

			return token{kind: tokenAtom, text: l.scanIdent(), line: line}
		case isUpper(ch):
			line := l.line
			return token{kind: tokenQualified, text: l.scanQualified(), line: line}
		case isLetter(ch) || ch == '_':
			return l.scanWord()
		case isDigit(ch):
			line := l.line
			start := l.pos

			for l.pos < len(l.src) && (isIdentChar(l.peek()) || l.peek() == '.' && isDigit(l.peekAt(1))) {
				l.advance()
			}

			return token{kind: tokenPunct, text: string(l.src[start:l.pos]), line: line}
		default:
			line := l.line
			l.advance()

			return token{kind: tokenPunct, text: string(ch), line: line}
		}
	}

	return token{kind: tokenEOF, line: l.line}
}

func (l *lexer) skipLineComment() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

// scanIdent reads an identifier including the trailing ? or ! Elixir allows.
func (l *lexer) scanIdent() string {
	start := l.pos

	for l.pos < len(l.src) && isIdentChar(l.peek()) {
		l.advance()
	}

	if l.pos < len(l.src) && (l.peek() == '?' || l.peek() == '!') {
		l.advance()
	}

	return string(l.src[start:l.pos])
}

// scanQualified reads a dotted name chain. Segments after the first may be
// lowercase (function calls on a module); the chain stops when a dot is not
// followed by an identifier character.
func (l *lexer) scanQualified() string {
	start := l.pos
	l.scanIdent()

	for l.peek() == '.' && (isLetter(l.peekAt(1)) || l.peekAt(1) == '_') {
		l.advance()
		l.scanIdent()
	}

	return string(l.src[start:l.pos])
}

func (l *lexer) scanWord() token {
	line := l.line
	word := l.scanIdent()

	// The self token continues as a qualified chain: __MODULE__.helper(...).
	if word == SelfToken && l.peek() == '.' && (isLetter(l.peekAt(1)) || l.peekAt(1) == '_') {
		rest := l.scanQualified()
		return token{kind: tokenQualified, text: word + rest, line: line}
	}

	// A word glued to a colon is a keyword-list key (`do:`, `as:`), not a
	// block opener. `::` is an operator and excluded.
	if l.peek() == ':' && l.peekAt(1) != ':' {
		l.advance()
		return token{kind: tokenKeyword, text: word, line: line}
	}

	return token{kind: tokenWord, text: word, line: line}
}

// scanString consumes a quoted literal and returns its raw content. Heredocs
// (tripled quotes) and `#{...}` interpolation are skipped best-effort.
func (l *lexer) scanString(quote byte) string {
	l.advance()

	heredoc := l.peek() == quote && l.peekAt(1) == quote
	if heredoc {
		l.advance()
		l.advance()
	}

	start := l.pos

	for l.pos < len(l.src) {
		ch := l.peek()

		switch {
		case ch == '\\':
			l.advance()
			if l.pos < len(l.src) {
				l.advance()
			}
		case ch == '#' && l.peekAt(1) == '{':
			l.skipInterpolation()
		case ch == quote:
			if !heredoc {
				content := string(l.src[start:l.pos])
				l.advance()

				return content
			}

			if l.peekAt(1) == quote && l.peekAt(2) == quote {
				content := string(l.src[start:l.pos])
				l.advance()
				l.advance()
				l.advance()

				return content
			}

			l.advance()
		default:
			l.advance()
		}
	}

	return string(l.src[start:])
}

// skipInterpolation consumes `#{ ... }` counting brace nesting. Quotes inside
// the interpolation are not tracked; this is acceptable for a syntactic
// best-effort scan.
func (l *lexer) skipInterpolation() {
	l.advance() // '#'
	l.advance() // '{'

	depth := 1
	for l.pos < len(l.src) && depth > 0 {
		switch l.advance() {
		case '{':
			depth++
		case '}':
			depth--
		}
	}
}

var sigilDelims = map[byte]byte{
	'(': ')', '[': ']', '{': '}', '<': '>',
	'"': '"', '\'': '\'', '/': '/', '|': '|',
}

// scanSigil consumes a sigil literal such as ~r/.../ or ~S"..." and returns
// its content. Sigils lex as string tokens, so a sigil-valued attribute is
// its own value and the token after it stays untouched. Returns ok=false
// when the tilde does not start a sigil.
func (l *lexer) scanSigil() (string, bool) {
	if !isLetter(l.peekAt(1)) {
		return "", false
	}

	open := l.peekAt(2)

	closer, ok := sigilDelims[open]
	if !ok {
		return "", false
	}

	l.advance() // '~'
	l.advance() // sigil letter
	l.advance() // opening delimiter

	start := l.pos
	end := len(l.src)

	for l.pos < len(l.src) {
		ch := l.advance()
		if ch == '\\' && l.pos < len(l.src) {
			l.advance()
			continue
		}

		if ch == closer {
			end = l.pos - 1
			break
		}
	}

	// Trailing sigil modifiers (e.g. ~r/.../i).
	for l.pos < len(l.src) && isLetter(l.peek()) {
		l.advance()
	}

	return string(l.src[start:end]), true
}
