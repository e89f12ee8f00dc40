package wgsl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gyosho/sumi/s2l"
)

type writer struct{}

const indent = "    "

func (w *writer) program(prog *s2l.Program) string {
	parts := make([]string, 0, len(prog.Decls))
	for _, d := range prog.Decls {
		if s := w.decl(d); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// mapType maps S2L primitive type names to WGSL spellings. Unknown names
// (user structs, anything else) pass through unchanged. void maps to the
// empty string, which drops the return-type clause entirely.
func mapType(t string) string {
	switch t {
	case "float":
		return "f32"
	case "int":
		return "i32"
	case "uint":
		return "u32"
	case "bool":
		return "bool"
	case "vec2":
		return "vec2<f32>"
	case "vec3":
		return "vec3<f32>"
	case "vec4":
		return "vec4<f32>"
	case "mat2":
		return "mat2x2<f32>"
	case "mat3":
		return "mat3x3<f32>"
	case "mat4":
		return "mat4x4<f32>"
	case "void":
		return ""
	default:
		return t
	}
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
		params = append(params, fmt.Sprintf("%s: %s", p.Name, mapType(p.Type)))
	}

	header := fmt.Sprintf("fn %s(%s)", f.Name, strings.Join(params, ", "))
	if ret := mapType(f.ReturnType); ret != "" {
		header += fmt.Sprintf(" -> %s", ret)
	}
	return fmt.Sprintf("%s %s", header, w.stmt(f.Body))
}

func (w *writer) structDecl(s *s2l.StructDecl) string {
	fields := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, fmt.Sprintf("%s%s: %s,", indent, f.Name, mapType(f.Type)))
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
		t := mapType(s.TypeName)
		if s.Value == nil {
			return fmt.Sprintf("var %s: %s;", s.Name, t)
		}
		val := w.expr(s.Value)
		// WGSL has no implicit int-to-float conversion, so an integer
		// initializer on a float declaration is emitted as a float
		// literal.
		if t == "f32" {
			if lit, ok := s.Value.(*s2l.IntLit); ok {
				val = formatFloat(float64(lit.Value))
			}
		}
		return fmt.Sprintf("var %s: %s = %s;", s.Name, t, val)

	case *s2l.ArrayDecl:
		arrType := fmt.Sprintf("array<%s, %d>", mapType(s.TypeName), s.Size)
		if s.Values != nil {
			vals := make([]string, 0, len(s.Values))
			for _, v := range s.Values {
				vals = append(vals, w.expr(v))
			}
			return fmt.Sprintf("var %s: %s = %s(%s);", s.Name, arrType, arrType, strings.Join(vals, ", "))
		}
		return fmt.Sprintf("var %s: %s;", s.Name, arrType)

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
		return w.call(e)

	case *s2l.MemberExpr:
		return fmt.Sprintf("%s.%s", w.expr(e.Base), e.Member)

	case *s2l.IndexExpr:
		return fmt.Sprintf("%s[%s]", w.expr(e.Base), w.expr(e.Index))

	case *s2l.FloatLit:
		return formatFloat(e.Value)

	case *s2l.IntLit:
		return strconv.FormatInt(e.Value, 10)

	case *s2l.Ident:
		return builtin(e.Name)

	default:
		return ""
	}
}

// call renders a call expression, rewriting constructor-style calls for
// the vector, matrix and scalar primitives into their parametrized WGSL
// constructor forms. Every other call target passes through by name.
func (w *writer) call(c *s2l.CallExpr) string {
	args := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, w.expr(a))
	}
	argStr := strings.Join(args, ", ")

	switch c.Func {
	case "vec2", "vec3", "vec4":
		return fmt.Sprintf("%s<f32>(%s)", c.Func, argStr)
	case "mat2":
		return fmt.Sprintf("mat2x2<f32>(%s)", argStr)
	case "mat3":
		return fmt.Sprintf("mat3x3<f32>(%s)", argStr)
	case "mat4":
		return fmt.Sprintf("mat4x4<f32>(%s)", argStr)
	case "float":
		return fmt.Sprintf("f32(%s)", argStr)
	case "int":
		return fmt.Sprintf("i32(%s)", argStr)
	case "uint":
		return fmt.Sprintf("u32(%s)", argStr)
	default:
		return fmt.Sprintf("%s(%s)", c.Func, argStr)
	}
}

// builtin substitutes the free builtin identifiers with field accesses
// on the external uniform binding. iResolution is stored as a vec2 in
// the uniform block, so the 3-component form is rebuilt with a constant
// 1.0 third component.
func builtin(name string) string {
	switch name {
	case "iTime":
		return "u.time"
	case "iResolution":
		return "vec3<f32>(u.resolution, 1.0)"
	case "iMouse":
		return "u.mouse"
	default:
		return name
	}
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
