package hooks

import "github.com/ludo-technologies/jscan/domain"

// Minifier is the seam a real minifier (an esbuild/terser equivalent)
// would plug into. This package ships exactly one implementation,
// NoopMinifier, which returns its input unchanged — the core transform's
// contract never does more than delegate to an external minifier, and
// nothing in the corpus vendors one.
type Minifier interface {
	Minify(code string) (string, error)
}

// NoopMinifier is the default Minifier: domain.MinifyMinify is accepted as
// a valid mode, but actually invoking a minifier is left to a caller that
// wires in a real implementation.
type NoopMinifier struct{}

func (NoopMinifier) Minify(code string) (string, error) { return code, nil }

// ApplyMinify runs m over code when mode requests it. domain.MinifyNone and
// domain.MinifySimplify never call m — only domain.MinifyMinify does,
// matching parse.rs's TransformCodeOptions delegation boundary.
func ApplyMinify(mode domain.MinifyMode, code string, m Minifier) (string, error) {
	if mode != domain.MinifyMinify {
		return code, nil
	}
	if m == nil {
		m = NoopMinifier{}
	}
	return m.Minify(code)
}
