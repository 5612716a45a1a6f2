package cards

import (
	"errors"
	"fmt"
)

// Load failure kinds. Every one of them is recovered by falling back to the
// sample cards.
var (
	ErrFetch = errors.New("fetch failure")
	ErrParse = errors.New("parse failure")
	ErrEmpty = errors.New("empty result")
)

// LoadError reports why a load fell back to the sample cards.
// errors.Is matches both the kind and the underlying cause.
type LoadError struct {
	Kind error
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func fetchErr(err error) error { return &LoadError{Kind: ErrFetch, Err: err} }
func parseErr(err error) error { return &LoadError{Kind: ErrParse, Err: err} }

// asLoadError classifies an error returned by a Source. Unclassified errors
// count as fetch failures.
func asLoadError(err error) *LoadError {
	var le *LoadError
	if errors.As(err, &le) {
		return le
	}
	return &LoadError{Kind: ErrFetch, Err: err}
}
