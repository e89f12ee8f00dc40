package s2l

import (
	"fmt"
	"strings"
)

// ParseError represents a grammar violation. Parsing stops at the first
// one; there is no recovery or multi-error aggregation.
type ParseError struct {
	Message string
	Token   Token
}

func (e *ParseError) Error() string {
	if e.Token.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Token.Line, e.Token.Column, e.Message)
}

// FormatWithContext returns the error message with the offending source
// line and a caret pointing at the error column.
func (e *ParseError) FormatWithContext(source string) string {
	if source == "" || e.Token.Line == 0 {
		return e.Error()
	}

	lines := strings.Split(source, "\n")
	lineNum := e.Token.Line
	if lineNum < 1 || lineNum > len(lines) {
		return e.Error()
	}

	line := lines[lineNum-1]
	col := e.Token.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", e.Message)
	fmt.Fprintf(&sb, "  --> line %d:%d\n", lineNum, col)
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", lineNum, line)
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))

	return sb.String()
}

// LexError records an unrecognized character. Lex errors are non-fatal:
// the offending token is dropped and lexing continues.
type LexError struct {
	Lexeme string
	Line   int
	Column int
}

func (e LexError) Error() string {
	return fmt.Sprintf("line %d, column %d: unrecognized character %q", e.Line, e.Column, e.Lexeme)
}
