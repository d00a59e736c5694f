package triage

import "fmt"

// AnalyzeError distinguishes an unresolvable scope or input from a
// per-file degradation surfaced elsewhere as a log line rather than a
// failure. Callers use errors.As to tell the two apart.
type AnalyzeError struct {
	Kind string // "git"
	Err  error
}

// Error implements the error interface.
func (e *AnalyzeError) Error() string {
	return fmt.Sprintf("analyze: %s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *AnalyzeError) Unwrap() error {
	return e.Err
}

// gitError wraps a git-scope-resolution failure in an AnalyzeError.
func gitError(err error) error {
	return &AnalyzeError{Kind: "git", Err: err}
}
