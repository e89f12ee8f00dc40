package s2l

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser parses S2L tokens into an AST.
//
// Two surface grammars are accepted and unified into one tree: the S2L
// form (fn name(args) returnType { ... }, var name: Type = expr;) and the
// legacy C-style form (Type name(args) { ... }, Type name = expr;).
//
// Parsing stops at the first grammar violation. There is no error
// recovery and the parser is not resumable after a failure.
type Parser struct {
	tokens  []Token
	current int
}

// NewParser creates a new parser for the given tokens. The stream must be
// terminated by a TokenEOF entry, as produced by Lexer.Tokenize.
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
	}
}

// Parse parses the tokens and returns a Program.
func (p *Parser) Parse() (*Program, error) {
	prog := &Program{}

	for !p.isAtEnd() {
		decl, err := p.declaration()
		if err != nil {
			return nil, err
		}
		prog.Decls = append(prog.Decls, decl)
	}

	return prog, nil
}

// declaration parses one top-level declaration, first collecting any
// immediately preceding doc comments. The joined doc text attaches to
// this declaration only; it never leaks onto a neighbor.
func (p *Parser) declaration() (Decl, *ParseError) {
	var docLines []string
	for p.check(TokenDocComment) {
		docLines = append(docLines, p.advance().Lexeme)
	}
	doc := strings.Join(docLines, "\n")

	if p.check(TokenStruct) {
		return p.structDecl(doc)
	}
	return p.functionDecl(doc)
}

// structDecl parses: struct Name { Type field; ... };
// The trailing semicolon is mandatory.
func (p *Parser) structDecl(doc string) (*StructDecl, *ParseError) {
	start := p.peek()
	if err := p.expect(TokenStruct); err != nil {
		return nil, err
	}

	name, err := p.expectIdent("struct name")
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}

	fields := make([]Field, 0, 4)
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		fieldType, err := p.expectIdent("field type")
		if err != nil {
			return nil, err
		}
		fieldName, err := p.expectIdent("field name")
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		fields = append(fields, Field{Type: fieldType, Name: fieldName})
	}

	if err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return &StructDecl{
		Name:   name,
		Fields: fields,
		Doc:    doc,
		Span:   spanFrom(start),
	}, nil
}

// functionDecl parses a function in either dialect. S2L places the return
// type after the parameter list; the legacy form places it before the
// name. An absent type before the body means implicit void.
func (p *Parser) functionDecl(doc string) (*FunctionDecl, *ParseError) {
	start := p.peek()

	if p.match(TokenFn) {
		name, err := p.expectIdent("function name")
		if err != nil {
			return nil, err
		}

		if err := p.expect(TokenLeftParen); err != nil {
			return nil, err
		}
		params, err := p.parameters()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}

		returnType := "void"
		if p.check(TokenIdent) {
			returnType = p.advance().Lexeme
		} else if !p.check(TokenLeftBrace) {
			return nil, p.errorAtCurrent("expected return type, got %s", p.peek().Kind)
		}

		if err := p.expect(TokenLeftBrace); err != nil {
			return nil, err
		}
		body, err := p.blockRest(start)
		if err != nil {
			return nil, err
		}

		return &FunctionDecl{
			ReturnType: returnType,
			Name:       name,
			Params:     params,
			Body:       body,
			Doc:        doc,
			Span:       spanFrom(start),
		}, nil
	}

	// Legacy C-style: Type Name(args) { ... }
	returnType, err := p.expectIdent("function or struct")
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdent("function name")
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	params, err := p.parameters()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	if err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}
	body, err := p.blockRest(start)
	if err != nil {
		return nil, err
	}

	return &FunctionDecl{
		ReturnType: returnType,
		Name:       name,
		Params:     params,
		Body:       body,
		Doc:        doc,
		Span:       spanFrom(start),
	}, nil
}

// parameters parses a comma-separated parameter list up to (but not
// consuming) the closing paren. Both "name: Type" and "Type name" forms
// are accepted; in/out/inout qualifiers are skipped.
func (p *Parser) parameters() ([]Param, *ParseError) {
	params := make([]Param, 0, 4)
	for !p.check(TokenRightParen) && !p.isAtEnd() {
		if p.check(TokenIdent) {
			switch p.peek().Lexeme {
			case "in", "out", "inout":
				p.advance()
			}
		}

		first, err := p.expectIdent("parameter")
		if err != nil {
			return nil, err
		}

		if p.match(TokenColon) {
			// S2L: name: Type
			typeName, err := p.expectIdent("parameter type")
			if err != nil {
				return nil, err
			}
			params = append(params, Param{Type: typeName, Name: first})
		} else {
			// Legacy: Type name
			name, err := p.expectIdent("parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, Param{Type: first, Name: name})
		}

		if !p.match(TokenComma) {
			break
		}
	}
	return params, nil
}

// blockRest parses the statements of a block whose opening brace has
// already been consumed, including the closing brace.
func (p *Parser) blockRest(start Token) (*BlockStmt, *ParseError) {
	statements := make([]Stmt, 0, 8)
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}
	return &BlockStmt{Statements: statements, Span: spanFrom(start)}, nil
}

func (p *Parser) statement() (Stmt, *ParseError) {
	start := p.peek()

	switch {
	case p.match(TokenLeftBrace):
		return p.blockRest(start)

	case p.match(TokenIf):
		if err := p.expect(TokenLeftParen); err != nil {
			return nil, err
		}
		condition, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		then, err := p.statement()
		if err != nil {
			return nil, err
		}
		// Dangling else binds to the nearest open if.
		var elseBranch Stmt
		if p.match(TokenElse) {
			elseBranch, err = p.statement()
			if err != nil {
				return nil, err
			}
		}
		return &IfStmt{
			Condition: condition,
			Then:      then,
			Else:      elseBranch,
			Span:      spanFrom(start),
		}, nil

	case p.match(TokenReturn):
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		return &ReturnStmt{Value: value, Span: spanFrom(start)}, nil

	case p.match(TokenBreak):
		if err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		return &BreakStmt{Span: spanFrom(start)}, nil

	case p.match(TokenFor):
		return p.forStmt(start)
	}

	if p.check(TokenIdent) {
		// S2L: var name: Type [= expr];
		if p.peek().Lexeme == "var" && p.peekNext().Kind == TokenIdent {
			return p.varStmt(start)
		}

		// Two consecutive identifiers open a declaration (Type Name).
		// This lookahead rule is deliberate: a statement starting with
		// a single identifier followed by (, = or . falls through to
		// the call/assignment/member-access path below instead.
		if p.peekNext().Kind == TokenIdent {
			return p.legacyVarStmt(start)
		}
	}

	// Fallback: expression or assignment statement.
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.match(TokenEqual) {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		return &AssignStmt{Target: expr, Value: value, Span: spanFrom(start)}, nil
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr, Span: spanFrom(start)}, nil
}

// forStmt parses: for (init; condition; increment) body
// The init is a full statement (it consumes its own semicolon); the
// increment is a bare expression or assignment with no trailing
// semicolon.
func (p *Parser) forStmt(start Token) (Stmt, *ParseError) {
	if err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	init, err := p.statement()
	if err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	increment, err := p.bareAssignment()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ForStmt{
		Init:      init,
		Condition: condition,
		Increment: increment,
		Body:      body,
		Span:      spanFrom(start),
	}, nil
}

// bareAssignment parses an expression optionally followed by = value,
// without a terminating semicolon. Used for the for-loop increment.
func (p *Parser) bareAssignment() (Stmt, *ParseError) {
	start := p.peek()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.match(TokenEqual) {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &AssignStmt{Target: expr, Value: value, Span: spanFrom(start)}, nil
	}
	return &ExprStmt{Expr: expr, Span: spanFrom(start)}, nil
}

// varStmt parses the S2L declaration form:
//
//	var name: Type [= expr];
//	var name: Type[N] [= { expr, ... }];
func (p *Parser) varStmt(start Token) (Stmt, *ParseError) {
	p.advance() // consume the "var" identifier

	name, err := p.expectIdent("variable name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	typeName, err := p.expectIdent("type")
	if err != nil {
		return nil, err
	}

	if p.check(TokenLeftBracket) {
		return p.arrayRest(start, typeName, name)
	}

	var value Expr
	if p.match(TokenEqual) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &VarDecl{TypeName: typeName, Name: name, Value: value, Span: spanFrom(start)}, nil
}

// legacyVarStmt parses the C-style declaration form:
//
//	Type name [= expr];
//	Type name[N] [= { expr, ... }];
func (p *Parser) legacyVarStmt(start Token) (Stmt, *ParseError) {
	typeName := p.advance().Lexeme
	name := p.advance().Lexeme

	if p.check(TokenLeftBracket) {
		return p.arrayRest(start, typeName, name)
	}

	var value Expr
	if p.match(TokenEqual) {
		v, err := p.expression()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &VarDecl{TypeName: typeName, Name: name, Value: value, Span: spanFrom(start)}, nil
}

// arrayRest parses the [N] suffix and optional { ... } initializer of an
// array declaration. Sizes are literal only, never computed.
func (p *Parser) arrayRest(start Token, typeName, name string) (Stmt, *ParseError) {
	if err := p.expect(TokenLeftBracket); err != nil {
		return nil, err
	}
	if !p.check(TokenNumber) {
		return nil, p.errorAtCurrent("expected array size, got %s", p.peek().Kind)
	}
	size := int(parseInt(p.advance().Lexeme))
	if err := p.expect(TokenRightBracket); err != nil {
		return nil, err
	}

	var values []Expr
	if p.match(TokenEqual) {
		if err := p.expect(TokenLeftBrace); err != nil {
			return nil, err
		}
		values = make([]Expr, 0, size)
		for !p.check(TokenRightBrace) && !p.isAtEnd() {
			v, err := p.expression()
			if err != nil {
				return nil, err
			}
			values = append(values, v)
			if !p.match(TokenComma) {
				break
			}
		}
		if err := p.expect(TokenRightBrace); err != nil {
			return nil, err
		}
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	return &ArrayDecl{
		TypeName: typeName,
		Name:     name,
		Size:     size,
		Values:   values,
		Span:     spanFrom(start),
	}, nil
}

// Expression grammar, precedence low to high:
// comparison -> additive -> multiplicative -> unary -> postfix -> primary

func (p *Parser) expression() (Expr, *ParseError) {
	return p.comparison()
}

// comparison parses ==, <, >, <=, >= left-to-right.
func (p *Parser) comparison() (Expr, *ParseError) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}

	for {
		var op BinaryOp
		switch p.peek().Kind {
		case TokenEqualEqual:
			op = OpEqual
		case TokenLess:
			op = OpLess
		case TokenGreater:
			op = OpGreater
		case TokenLessEqual:
			op = OpLessEqual
		case TokenGreaterEqual:
			op = OpGreaterEqual
		default:
			return left, nil
		}
		p.advance()
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}
}

// additive parses + and - expressions.
func (p *Parser) additive() (Expr, *ParseError) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}

	for p.check(TokenPlus) || p.check(TokenMinus) {
		op := OpAdd
		if p.peek().Kind == TokenMinus {
			op = OpSub
		}
		p.advance()
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}

	return left, nil
}

// multiplicative parses * and / expressions.
func (p *Parser) multiplicative() (Expr, *ParseError) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}

	for p.check(TokenStar) || p.check(TokenSlash) {
		op := OpMul
		if p.peek().Kind == TokenSlash {
			op = OpDiv
		}
		p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: op, Right: right}
	}

	return left, nil
}

// unary parses prefix - and ! expressions, right-recursively.
func (p *Parser) unary() (Expr, *ParseError) {
	if p.check(TokenMinus) || p.check(TokenBang) {
		tok := p.advance()
		op := OpNegate
		if tok.Kind == TokenBang {
			op = OpNot
		}
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Operand: operand, Span: spanFrom(tok)}, nil
	}
	return p.postfix()
}

// postfix parses call, member access and subscript chains left-to-right.
func (p *Parser) postfix() (Expr, *ParseError) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(TokenLeftParen):
			args := make([]Expr, 0, 4)
			for !p.check(TokenRightParen) && !p.isAtEnd() {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.match(TokenComma) {
					break
				}
			}
			if err := p.expect(TokenRightParen); err != nil {
				return nil, err
			}
			ident, ok := expr.(*Ident)
			if !ok {
				return nil, p.errorAtCurrent("expected identifier before call")
			}
			expr = &CallExpr{Func: ident.Name, Args: args, Span: ident.Span}

		case p.match(TokenDot):
			member, err := p.expectIdent("member name")
			if err != nil {
				return nil, err
			}
			expr = &MemberExpr{Base: expr, Member: member, Span: expr.Pos()}

		case p.match(TokenLeftBracket):
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(TokenRightBracket); err != nil {
				return nil, err
			}
			expr = &IndexExpr{Base: expr, Index: index, Span: expr.Pos()}

		default:
			return expr, nil
		}
	}
}

// primary parses literals, identifiers and parenthesized expressions.
func (p *Parser) primary() (Expr, *ParseError) {
	tok := p.peek()

	switch tok.Kind {
	case TokenNumber:
		p.advance()
		if strings.Contains(tok.Lexeme, ".") {
			return &FloatLit{Value: parseFloat(tok.Lexeme), Span: spanFrom(tok)}, nil
		}
		return &IntLit{Value: parseInt(tok.Lexeme), Span: spanFrom(tok)}, nil

	case TokenIdent:
		p.advance()
		return &Ident{Name: tok.Lexeme, Span: spanFrom(tok)}, nil

	case TokenLeftParen:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, p.errorAtCurrent("expected expression, got %s", tok.Kind)
	}
}

// Numeric conversion silently falls back to zero on malformed input.
// Longstanding behavior; generated output depends on it.

func parseFloat(lexeme string) float64 {
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(lexeme string) int64 {
	n, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Helper methods

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

// peekNext returns the token one past current, the parser's single token
// of lookahead beyond the cursor.
func (p *Parser) peekNext() Token {
	if p.current+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+1]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == TokenEOF
}

func (p *Parser) check(kind TokenKind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind TokenKind) *ParseError {
	if p.check(kind) {
		p.advance()
		return nil
	}
	return &ParseError{
		Message: fmt.Sprintf("expected %s, got %s", kind, p.describeCurrent()),
		Token:   p.peek(),
	}
}

func (p *Parser) expectIdent(what string) (string, *ParseError) {
	if p.check(TokenIdent) {
		return p.advance().Lexeme, nil
	}
	return "", &ParseError{
		Message: fmt.Sprintf("expected %s, got %s", what, p.describeCurrent()),
		Token:   p.peek(),
	}
}

func (p *Parser) errorAtCurrent(format string, args ...any) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Token:   p.peek(),
	}
}

// describeCurrent names the current token for error messages, using EOF
// at end of input.
func (p *Parser) describeCurrent() string {
	tok := p.peek()
	if tok.Kind == TokenEOF {
		return "EOF"
	}
	if tok.Kind == TokenIdent || tok.Kind == TokenNumber {
		return fmt.Sprintf("%s %q", tok.Kind, tok.Lexeme)
	}
	return tok.Kind.String()
}

func spanFrom(tok Token) Span {
	return Span{Start: Position{Line: tok.Line, Column: tok.Column}}
}
