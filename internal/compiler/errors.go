package compiler

import "fmt"

// CompilationProcessError carries the compiler's stderr for a non-zero
// compile exit. At the evaluation boundary this becomes the whole-result
// verdict CompilationError(stderr) (spec.md §7).
type CompilationProcessError struct {
	Stderr string
}

func (e *CompilationProcessError) Error() string {
	return fmt.Sprintf("compilation failed: %s", e.Stderr)
}

// UnsupportedLanguageError is returned for a language token with no known
// compile pipeline.
type UnsupportedLanguageError struct {
	Language Language
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("compiler: unsupported language %q", string(e.Language))
}
