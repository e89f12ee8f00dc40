package s2l

// The S2L AST is purely structural: type names stay raw strings and no
// identifier is resolved. Every child is owned exclusively by its parent,
// so the tree is acyclic and safe to walk from any number of generators.

// Program represents a parsed translation unit: the ordered list of
// top-level declarations.
type Program struct {
	Decls []Decl
}

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() Span
}

// Decl is the interface for top-level declarations.
type Decl interface {
	Node
	declNode()
}

// Stmt is the interface for statements.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the interface for expressions.
type Expr interface {
	Node
	exprNode()
}

// Param represents a function parameter. Both surface forms
// ("name: Type" and "Type name") normalize to this shape.
type Param struct {
	Type string
	Name string
}

// Field represents a struct field.
type Field struct {
	Type string
	Name string
}

// FunctionDecl represents a function declaration.
type FunctionDecl struct {
	ReturnType string
	Name       string
	Params     []Param
	Body       *BlockStmt
	Doc        string // joined /// lines, empty when undocumented
	Span       Span
}

func (f *FunctionDecl) Pos() Span { return f.Span }
func (f *FunctionDecl) declNode() {}

// StructDecl represents a struct declaration.
type StructDecl struct {
	Name   string
	Fields []Field
	Doc    string
	Span   Span
}

func (s *StructDecl) Pos() Span { return s.Span }
func (s *StructDecl) declNode() {}

// Statements

// BlockStmt represents a brace-enclosed statement list.
type BlockStmt struct {
	Statements []Stmt
	Span       Span
}

func (b *BlockStmt) Pos() Span { return b.Span }
func (b *BlockStmt) stmtNode() {}

// VarDecl represents a scalar variable declaration in either dialect.
type VarDecl struct {
	TypeName string
	Name     string
	Value    Expr // nil when uninitialized
	Span     Span
}

func (v *VarDecl) Pos() Span { return v.Span }
func (v *VarDecl) stmtNode() {}

// ArrayDecl represents a fixed-size array declaration. Sizes are literal
// only, never computed.
type ArrayDecl struct {
	TypeName string
	Name     string
	Size     int
	Values   []Expr // nil when no initializer list
	Span     Span
}

func (a *ArrayDecl) Pos() Span { return a.Span }
func (a *ArrayDecl) stmtNode() {}

// AssignStmt represents an assignment to an existing lvalue.
type AssignStmt struct {
	Target Expr
	Value  Expr
	Span   Span
}

func (a *AssignStmt) Pos() Span { return a.Span }
func (a *AssignStmt) stmtNode() {}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	Value Expr
	Span  Span
}

func (r *ReturnStmt) Pos() Span { return r.Span }
func (r *ReturnStmt) stmtNode() {}

// IfStmt represents an if statement with optional else branch.
// A dangling else binds to the nearest open if.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt // nil when absent
	Span      Span
}

func (i *IfStmt) Pos() Span { return i.Span }
func (i *IfStmt) stmtNode() {}

// ForStmt represents a C-style for loop. Init is a full statement;
// Increment is a bare expression or assignment without the trailing
// semicolon.
type ForStmt struct {
	Init      Stmt
	Condition Expr
	Increment Stmt
	Body      Stmt
	Span      Span
}

func (f *ForStmt) Pos() Span { return f.Span }
func (f *ForStmt) stmtNode() {}

// BreakStmt represents a break statement.
type BreakStmt struct {
	Span Span
}

func (b *BreakStmt) Pos() Span { return b.Span }
func (b *BreakStmt) stmtNode() {}

// ExprStmt represents a bare expression in statement position.
type ExprStmt struct {
	Expr Expr
	Span Span
}

func (e *ExprStmt) Pos() Span { return e.Span }
func (e *ExprStmt) stmtNode() {}

// Expressions

// BinaryExpr represents a binary expression.
type BinaryExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
	Span  Span
}

func (b *BinaryExpr) Pos() Span { return b.Span }
func (b *BinaryExpr) exprNode() {}

// UnaryExpr represents a prefix unary expression.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
	Span    Span
}

func (u *UnaryExpr) Pos() Span { return u.Span }
func (u *UnaryExpr) exprNode() {}

// CallExpr represents a function call. The callee is a bare name; no
// existence or signature checking happens here or later.
type CallExpr struct {
	Func string
	Args []Expr
	Span Span
}

func (c *CallExpr) Pos() Span { return c.Span }
func (c *CallExpr) exprNode() {}

// IndexExpr represents a subscript access.
type IndexExpr struct {
	Base  Expr
	Index Expr
	Span  Span
}

func (i *IndexExpr) Pos() Span { return i.Span }
func (i *IndexExpr) exprNode() {}

// MemberExpr represents a member access.
type MemberExpr struct {
	Base   Expr
	Member string
	Span   Span
}

func (m *MemberExpr) Pos() Span { return m.Span }
func (m *MemberExpr) exprNode() {}

// FloatLit represents a decimal literal containing a dot.
type FloatLit struct {
	Value float64
	Span  Span
}

func (f *FloatLit) Pos() Span { return f.Span }
func (f *FloatLit) exprNode() {}

// IntLit represents an integer literal.
type IntLit struct {
	Value int64
	Span  Span
}

func (i *IntLit) Pos() Span { return i.Span }
func (i *IntLit) exprNode() {}

// Ident represents a variable reference.
type Ident struct {
	Name string
	Span Span
}

func (i *Ident) Pos() Span { return i.Span }
func (i *Ident) exprNode() {}

// BinaryOp enumerates the binary operators.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEqual
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
)

// String returns the operator's source spelling, shared by every
// non-documentation backend.
func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEqual:
		return "=="
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpLessEqual:
		return "<="
	case OpGreaterEqual:
		return ">="
	default:
		return "?"
	}
}

// UnaryOp enumerates the prefix unary operators.
type UnaryOp uint8

const (
	OpNegate UnaryOp = iota
	OpNot
)

// String returns the operator's source spelling.
func (op UnaryOp) String() string {
	switch op {
	case OpNegate:
		return "-"
	case OpNot:
		return "!"
	default:
		return "?"
	}
}
