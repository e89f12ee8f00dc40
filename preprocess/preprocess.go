// Package preprocess resolves textual #include directives in S2L source.
//
// The expansion is purely textual: each #include "relative/path" line is
// replaced by the expanded content of the target file, resolved relative
// to the including file's directory. There are no macros, no conditional
// compilation and no token pasting. A file that is included a second time
// within one Process call expands to the empty string (header-guard-like
// idempotence); include chains deeper than MaxDepth are a hard error.
package preprocess

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// MaxDepth is the include recursion limit. Exceeding it aborts the whole
// Process call with ErrDepthExceeded.
const MaxDepth = 10

// ErrDepthExceeded reports an include chain nested beyond MaxDepth,
// which in practice means two files include each other.
var ErrDepthExceeded = errors.New("include depth limit exceeded")

var includePattern = regexp.MustCompile(`#include\s+"([^"]+)"`)

// Preprocessor expands #include directives. The visited-file set is held
// per instance, so create one Preprocessor per top-level Process call;
// reusing an instance would silently skip files seen by an earlier call.
type Preprocessor struct {
	visited map[string]struct{}
}

// New creates a Preprocessor with an empty visited set.
func New() *Preprocessor {
	return &Preprocessor{
		visited: make(map[string]struct{}),
	}
}

// Process reads the file at path and returns its content with every
// #include directive recursively expanded in place. All other text is
// left untouched.
func (p *Preprocessor) Process(path string) (string, error) {
	return p.process(path, 0)
}

func (p *Preprocessor) process(path string, depth int) (string, error) {
	if depth > MaxDepth {
		return "", fmt.Errorf("%w (cycle detected?): %s", ErrDepthExceeded, path)
	}

	canonical, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(canonical); err == nil {
		canonical = resolved
	}

	if _, seen := p.visited[canonical]; seen {
		// Already spliced in earlier in this chain; expanding again
		// would duplicate declarations.
		return "", nil
	}

	data, err := os.ReadFile(canonical)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", canonical, err)
	}
	content := string(data)

	baseDir := filepath.Dir(canonical)

	matches := includePattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		p.visited[canonical] = struct{}{}
		return content, nil
	}

	var out []byte
	last := 0
	for _, m := range matches {
		// m[0]:m[1] is the whole directive, m[2]:m[3] the quoted path.
		out = append(out, content[last:m[0]]...)

		target := filepath.Join(baseDir, content[m[2]:m[3]])
		expanded, err := p.process(target, depth+1)
		if err != nil {
			return "", err
		}
		out = append(out, expanded...)
		last = m[1]
	}
	out = append(out, content[last:]...)

	// A file counts as visited only once fully expanded. A file that is
	// still in progress recurses instead, so genuine include cycles
	// surface as depth errors rather than silently truncating.
	p.visited[canonical] = struct{}{}

	return string(out), nil
}
