package msl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gyosho/sumi/s2l"
)

// writer renders AST nodes to Metal-like source text. Each node renders
// to a self-contained string; a block adds exactly one indentation
// prefix to each of its statements and nested blocks are not re-indented
// beyond their own single prefix.
type writer struct {
	options Options
}

const indent = "    "

func (w *writer) program(prog *s2l.Program) string {
	parts := make([]string, 0, len(prog.Decls))
	for _, d := range prog.Decls {
		parts = append(parts, w.decl(d))
	}
	return strings.Join(parts, "\n\n")
}

func (w *writer) decl(d s2l.Decl) string {
	switch d := d.(type) {
	case *s2l.FunctionDecl:
		return w.function(d)
	case *s2l.StructDecl:
		return w.structDecl(d)
	default:
		return ""
	}
}

func (w *writer) function(f *s2l.FunctionDecl) string {
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, fmt.Sprintf("%s %s", p.Type, p.Name))
	}
	signature := fmt.Sprintf("%s %s(%s)", f.ReturnType, f.Name, strings.Join(params, ", "))

	if w.options.StdLib {
		return fmt.Sprintf("%s; // native: %s", signature, f.Name)
	}
	return fmt.Sprintf("%s %s", signature, w.stmt(f.Body))
}

func (w *writer) structDecl(s *s2l.StructDecl) string {
	fields := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, fmt.Sprintf("%s%s %s;", indent, f.Type, f.Name))
	}
	return fmt.Sprintf("struct %s {\n%s\n};", s.Name, strings.Join(fields, "\n"))
}

func (w *writer) stmt(s s2l.Stmt) string {
	switch s := s.(type) {
	case *s2l.BlockStmt:
		lines := make([]string, 0, len(s.Statements))
		for _, st := range s.Statements {
			lines = append(lines, indent+w.stmt(st))
		}
		return fmt.Sprintf("{\n%s\n}", strings.Join(lines, "\n"))

	case *s2l.VarDecl:
		if s.Value != nil {
			return fmt.Sprintf("%s %s = %s;", s.TypeName, s.Name, w.expr(s.Value))
		}
		return fmt.Sprintf("%s %s;", s.TypeName, s.Name)

	case *s2l.ArrayDecl:
		init := ""
		if s.Values != nil {
			vals := make([]string, 0, len(s.Values))
			for _, v := range s.Values {
				vals = append(vals, w.expr(v))
			}
			init = fmt.Sprintf(" = { %s }", strings.Join(vals, ", "))
		}
		return fmt.Sprintf("%s %s[%d]%s;", s.TypeName, s.Name, s.Size, init)

	case *s2l.AssignStmt:
		return fmt.Sprintf("%s = %s;", w.expr(s.Target), w.expr(s.Value))

	case *s2l.ReturnStmt:
		return fmt.Sprintf("return %s;", w.expr(s.Value))

	case *s2l.IfStmt:
		base := fmt.Sprintf("if (%s) %s", w.expr(s.Condition), w.stmt(s.Then))
		if s.Else != nil {
			return fmt.Sprintf("%s else %s", base, w.stmt(s.Else))
		}
		return base

	case *s2l.ForStmt:
		// The init statement carries its own semicolon; the increment
		// renders as a statement, so its trailing semicolon is dropped.
		inc := strings.TrimRight(w.stmt(s.Increment), ";")
		return fmt.Sprintf("for (%s %s; %s) %s",
			w.stmt(s.Init), w.expr(s.Condition), inc, w.stmt(s.Body))

	case *s2l.BreakStmt:
		return "break;"

	case *s2l.ExprStmt:
		return w.expr(s.Expr) + ";"

	default:
		return ""
	}
}

func (w *writer) expr(e s2l.Expr) string {
	switch e := e.(type) {
	case *s2l.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", w.expr(e.Left), e.Op, w.expr(e.Right))

	case *s2l.UnaryExpr:
		return fmt.Sprintf("(%s%s)", e.Op, w.expr(e.Operand))

	case *s2l.CallExpr:
		args := make([]string, 0, len(e.Args))
		for _, a := range e.Args {
			args = append(args, w.expr(a))
		}
		return fmt.Sprintf("%s(%s)", e.Func, strings.Join(args, ", "))

	case *s2l.MemberExpr:
		return fmt.Sprintf("%s.%s", w.expr(e.Base), e.Member)

	case *s2l.IndexExpr:
		return fmt.Sprintf("%s[%s]", w.expr(e.Base), w.expr(e.Index))

	case *s2l.FloatLit:
		return formatFloat(e.Value)

	case *s2l.IntLit:
		return strconv.FormatInt(e.Value, 10)

	case *s2l.Ident:
		return e.Name

	default:
		return ""
	}
}

// formatFloat renders floats with zero fractional part as N.0 so they
// stay float literals in the output language.
func formatFloat(f float64) string {
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
