// Package s2l provides S2L (Sumi shader language) parsing.
package s2l

// TokenKind represents the type of token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenIdent
	TokenNumber
	TokenDocComment

	// Operators
	TokenPlus         // +
	TokenMinus        // -
	TokenStar         // *
	TokenSlash        // /
	TokenBang         // !
	TokenEqual        // =
	TokenLess         // <
	TokenGreater      // >
	TokenEqualEqual   // ==
	TokenLessEqual    // <=
	TokenGreaterEqual // >=
	TokenDot          // .
	TokenComma        // ,
	TokenColon        // :
	TokenSemicolon    // ;

	// Delimiters
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftBracket  // [
	TokenRightBracket // ]

	// Keywords
	TokenStruct
	TokenFn
	TokenReturn
	TokenIf
	TokenElse
	TokenFor
	TokenBreak
)

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "Error"
	case TokenIdent:
		return "Ident"
	case TokenNumber:
		return "Number"
	case TokenDocComment:
		return "DocComment"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenBang:
		return "!"
	case TokenEqual:
		return "="
	case TokenLess:
		return "<"
	case TokenGreater:
		return ">"
	case TokenEqualEqual:
		return "=="
	case TokenLessEqual:
		return "<="
	case TokenGreaterEqual:
		return ">="
	case TokenDot:
		return "."
	case TokenComma:
		return ","
	case TokenColon:
		return ":"
	case TokenSemicolon:
		return ";"
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	case TokenLeftBrace:
		return "{"
	case TokenRightBrace:
		return "}"
	case TokenLeftBracket:
		return "["
	case TokenRightBracket:
		return "]"
	case TokenStruct:
		return "struct"
	case TokenFn:
		return "fn"
	case TokenReturn:
		return "return"
	case TokenIf:
		return "if"
	case TokenElse:
		return "else"
	case TokenFor:
		return "for"
	case TokenBreak:
		return "break"
	default:
		return "Unknown"
	}
}

// Token represents a lexical token.
//
// For TokenNumber the Lexeme holds the raw source text; conversion to
// int/float happens in the parser. For TokenDocComment the Lexeme is the
// comment text with the /// marker and surrounding whitespace trimmed.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Column int
}

// Position represents a position in source code.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Span represents a source code location span.
type Span struct {
	Start Position
	End   Position
}
