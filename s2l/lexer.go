package s2l

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes S2L source code.
type Lexer struct {
	source string
	pos    int
	line   int
	column int
	start  int
	tokens []Token
	errs   []LexError
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source string) *Lexer {
	// Estimate ~1 token per 6 characters of source.
	estTokens := len(source) / 6
	if estTokens < 16 {
		estTokens = 16
	}
	return &Lexer{
		source: source,
		pos:    0,
		line:   1,
		column: 1,
		tokens: make([]Token, 0, estTokens),
	}
}

// Tokenize scans the whole source and returns the token stream.
//
// An unrecognized character is not fatal: it is recorded as a TokenError
// token (and a LexError in Errors) and scanning continues with the next
// character. Callers that only want valid tokens can drop the TokenError
// entries from the stream.
func (l *Lexer) Tokenize() []Token {
	for !l.isAtEnd() {
		l.start = l.pos
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Kind:   TokenEOF,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens
}

// Errors returns the lex errors accumulated during Tokenize, one per
// dropped TokenError token.
func (l *Lexer) Errors() []LexError {
	return l.errs
}

func (l *Lexer) scanToken() {
	r := l.advance()

	switch r {
	case '(':
		l.addToken(TokenLeftParen)
	case ')':
		l.addToken(TokenRightParen)
	case '{':
		l.addToken(TokenLeftBrace)
	case '}':
		l.addToken(TokenRightBrace)
	case '[':
		l.addToken(TokenLeftBracket)
	case ']':
		l.addToken(TokenRightBracket)
	case ',':
		l.addToken(TokenComma)
	case '.':
		l.addToken(TokenDot)
	case ':':
		l.addToken(TokenColon)
	case ';':
		l.addToken(TokenSemicolon)
	case '+':
		l.addToken(TokenPlus)
	case '-':
		l.addToken(TokenMinus)
	case '*':
		l.addToken(TokenStar)
	case '!':
		l.addToken(TokenBang)
	case '=':
		if l.match('=') {
			l.addToken(TokenEqualEqual)
		} else {
			l.addToken(TokenEqual)
		}
	case '<':
		if l.match('=') {
			l.addToken(TokenLessEqual)
		} else {
			l.addToken(TokenLess)
		}
	case '>':
		if l.match('=') {
			l.addToken(TokenGreaterEqual)
		} else {
			l.addToken(TokenGreater)
		}
	case '/':
		if l.match('/') {
			l.comment()
		} else {
			l.addToken(TokenSlash)
		}

	// Whitespace
	case ' ', '\r', '\t', '\f':
		// Ignore whitespace
	case '\n':
		l.line++
		l.column = 1

	default:
		if isDigit(r) {
			l.number()
		} else if isAlpha(r) || r == '_' {
			l.identifier()
		} else {
			l.addToken(TokenError)
			l.errs = append(l.errs, LexError{
				Lexeme: l.source[l.start:l.pos],
				Line:   l.line,
				Column: l.column - (l.pos - l.start),
			})
		}
	}
}

// comment handles both comment forms after "//" has been consumed.
// A third slash makes it a doc comment, which is kept as a token with
// the marker and surrounding whitespace trimmed. Plain comments are
// discarded entirely.
func (l *Lexer) comment() {
	doc := l.match('/')
	textStart := l.pos
	for l.peek() != '\n' && !l.isAtEnd() {
		l.advance()
	}
	if doc {
		l.tokens = append(l.tokens, Token{
			Kind:   TokenDocComment,
			Lexeme: strings.TrimSpace(l.source[textStart:l.pos]),
			Line:   l.line,
			Column: l.column - (l.pos - l.start),
		})
	}
}

// number scans an integer or decimal literal. No exponent or hex forms.
// The raw lexeme is kept; the parser does the conversion.
func (l *Lexer) number() {
	for isDigit(l.peek()) {
		l.advance()
	}

	// Fractional part only when a digit follows the dot, so "1.x"
	// stays (int 1, dot, ident x).
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance() // consume '.'
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	l.addToken(TokenNumber)
}

func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	text := l.source[l.start:l.pos]
	l.addToken(lookupKeyword(text))
}

var keywords = map[string]TokenKind{
	"struct": TokenStruct,
	"fn":     TokenFn,
	"return": TokenReturn,
	"if":     TokenIf,
	"else":   TokenElse,
	"for":    TokenFor,
	"break":  TokenBreak,
}

// lookupKeyword resolves an identifier lexeme to a keyword kind.
// Note "var" is not a keyword: the S2L declaration form is recognized
// by the parser from a plain identifier spelled "var".
func lookupKeyword(text string) TokenKind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return TokenIdent
}

func (l *Lexer) addToken(kind TokenKind) {
	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Lexeme: l.source[l.start:l.pos],
		Line:   l.line,
		Column: l.column - (l.pos - l.start),
	})
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	l.column++
	return r
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.pos:])
	r, _ := utf8.DecodeRuneInString(l.source[l.pos+size:])
	return r
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() {
		return false
	}
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	if r != expected {
		return false
	}
	l.pos += size
	l.column++
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return unicode.IsLetter(r)
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
