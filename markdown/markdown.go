// Package markdown extracts documentation from an S2L AST.
//
// The markdown target ignores executable structure entirely: only
// top-level function and struct declarations are documented, using their
// attached /// doc comments when present. A program with nothing
// documentable yields the empty string.
package markdown

import (
	"fmt"
	"strings"

	"github.com/gyosho/sumi/s2l"
)

// Compile renders the program's documentation as Markdown.
func Compile(prog *s2l.Program) string {
	var sections []string
	for _, d := range prog.Decls {
		switch d := d.(type) {
		case *s2l.FunctionDecl:
			sections = append(sections, functionSection(d))
		case *s2l.StructDecl:
			sections = append(sections, structSection(d))
		}
	}
	if len(sections) == 0 {
		return ""
	}
	return strings.Join(sections, "\n") + "\n"
}

func functionSection(f *s2l.FunctionDecl) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n", f.Name)
	if f.Doc != "" {
		fmt.Fprintf(&sb, "\n%s\n", f.Doc)
	}
	sb.WriteString("\n```s2l\n")
	sb.WriteString(signature(f))
	sb.WriteString("\n```\n")
	return sb.String()
}

func structSection(s *s2l.StructDecl) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n", s.Name)
	if s.Doc != "" {
		fmt.Fprintf(&sb, "\n%s\n", s.Doc)
	}
	sb.WriteString("\n")
	for _, f := range s.Fields {
		fmt.Fprintf(&sb, "- %s %s\n", f.Type, f.Name)
	}
	return sb.String()
}

// signature renders a function header in the legacy surface form, which
// reads naturally for both dialects.
func signature(f *s2l.FunctionDecl) string {
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, fmt.Sprintf("%s %s", p.Type, p.Name))
	}
	return fmt.Sprintf("%s %s(%s)", f.ReturnType, f.Name, strings.Join(params, ", "))
}
