// Package sumi provides the Sumi (S2L) shader compiler.
//
// sumi compiles S2L shader source — a small C/GLSL-like language with an
// alternative Rust/WGSL-like surface syntax — to multiple textual output
// formats:
//   - WGSL-like — primary target, consumed by the hanga GPU runtime
//   - Metal-like — C-style target, with an optional stdlib header mode
//   - Markdown — documentation extracted from /// comments
//
// The package provides a simple, high-level API for shader compilation
// as well as lower-level access to the individual stages (preprocess,
// lex, parse, generate).
//
// Example usage:
//
//	source := `
//	/// Signed distance to a circle.
//	float circle(vec2 p, float r) {
//	    return length(p) - r;
//	}
//	`
//	out, err := sumi.Compile(source, sumi.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// To resolve #include directives first, use CompileFile.
package sumi

import (
	"fmt"

	"github.com/gyosho/sumi/markdown"
	"github.com/gyosho/sumi/msl"
	"github.com/gyosho/sumi/preprocess"
	"github.com/gyosho/sumi/s2l"
	"github.com/gyosho/sumi/wgsl"
)

// Target selects an output format. The set of targets is small and
// fixed; dispatch happens once per Generate call.
type Target uint8

const (
	// TargetWGSL is the WGSL-like primary target.
	TargetWGSL Target = iota
	// TargetMetal is the Metal-like C-style target.
	TargetMetal
	// TargetMarkdown is the documentation target.
	TargetMarkdown
)

// String returns the target's selector name.
func (t Target) String() string {
	switch t {
	case TargetWGSL:
		return "wgsl"
	case TargetMetal:
		return "metal"
	case TargetMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// ParseTarget resolves a selector name to a Target.
func ParseTarget(name string) (Target, error) {
	switch name {
	case "wgsl":
		return TargetWGSL, nil
	case "metal":
		return TargetMetal, nil
	case "markdown", "md":
		return TargetMarkdown, nil
	default:
		return 0, fmt.Errorf("unknown target %q (want wgsl, metal or markdown)", name)
	}
}

// Options configures compilation.
type Options struct {
	// Target is the output format.
	Target Target

	// MetalStdLib enables the Metal-like backend's standard-library
	// header mode. Ignored by the other targets.
	MetalStdLib bool
}

// DefaultOptions returns the default options: the WGSL-like target.
func DefaultOptions() Options {
	return Options{Target: TargetWGSL}
}

// Compile compiles S2L source text to the selected target.
//
// The source must already be include-free; use CompileFile to expand
// #include directives first.
func Compile(source string, opts Options) (string, error) {
	prog, err := Parse(source)
	if err != nil {
		return "", err
	}
	return Generate(prog, opts), nil
}

// CompileFile reads and preprocesses the file at path, then compiles the
// expanded source. Each call uses a fresh include-tracking state, so a
// long-lived process can compile repeatedly without cross-contamination.
func CompileFile(path string, opts Options) (string, error) {
	source, err := preprocess.New().Process(path)
	if err != nil {
		return "", fmt.Errorf("preprocess error: %w", err)
	}
	out, err := Compile(source, opts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Parse parses S2L source text to an AST.
//
// Tokens the lexer could not recognize are dropped from the stream
// before parsing; a grammar violation aborts at the first error.
func Parse(source string) (*s2l.Program, error) {
	tokens := Tokenize(source)
	parser := s2l.NewParser(tokens)
	prog, err := parser.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return prog, nil
}

// Tokenize lexes source text and returns the valid tokens, dropping any
// TokenError entries produced for unrecognized characters.
func Tokenize(source string) []s2l.Token {
	raw := s2l.NewLexer(source).Tokenize()
	tokens := raw[:0:0]
	for _, tok := range raw {
		if tok.Kind != s2l.TokenError {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Generate renders the AST with the generator for the selected target.
// Generation is total: any AST the parser can produce is generatable.
func Generate(prog *s2l.Program, opts Options) string {
	switch opts.Target {
	case TargetMetal:
		return msl.Compile(prog, msl.Options{StdLib: opts.MetalStdLib})
	case TargetMarkdown:
		return markdown.Compile(prog)
	default:
		return wgsl.Compile(prog)
	}
}
