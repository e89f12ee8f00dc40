// Package msl generates Metal-like shader source from an S2L AST.
//
// The Metal-like target mirrors the legacy C-style surface grammar: type
// names and call targets pass through unchanged, so anything the parser
// accepted renders to syntactically similar output. Generation is total
// over any AST the parser can produce; unknown names are emitted
// verbatim, never rejected.
package msl

import "github.com/gyosho/sumi/s2l"

// Options configures MSL-like code generation.
type Options struct {
	// StdLib switches the backend into standard-library header mode:
	// every function renders as its signature with the body replaced by
	// a native-symbol marker comment. Used to declare functions that
	// are implemented natively rather than compiled from source.
	StdLib bool
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{}
}

// Compile generates Metal-like source code for the program.
func Compile(prog *s2l.Program, options Options) string {
	w := &writer{options: options}
	return w.program(prog)
}
