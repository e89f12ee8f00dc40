// Package wgsl generates WGSL-like shader source from an S2L AST.
//
// This is the primary target. Primitive type names are mapped to their
// WGSL spellings (float -> f32, vec3 -> vec3<f32>, ...), constructor
// style calls are rewritten to the parametrized constructor forms, and
// the free builtin identifiers iTime, iResolution and iMouse become
// field accesses on the runtime's uniform binding `u`. The field names
// are locked to the external uniform-buffer layout (f32 time, vec2
// resolution, vec4 mouse); changing them here breaks the runtime
// contract. Everything else passes through unchanged and unvalidated.
package wgsl

import "github.com/gyosho/sumi/s2l"

// Compile generates WGSL-like source code for the program.
func Compile(prog *s2l.Program) string {
	w := &writer{}
	return w.program(prog)
}
