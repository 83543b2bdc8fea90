package pipeline

import (
	"errors"
	"fmt"
)

// Kind classifies why a capture or a run failed.
type Kind string

const (
	KindConfiguration     Kind = "configuration"
	KindLaunch            Kind = "launch"
	KindNavigationTimeout Kind = "navigation_timeout"
	KindNavigationError   Kind = "navigation_error"
	KindSelectorTimeout   Kind = "selector_timeout"
	KindScript            Kind = "script_error"
	KindCapture           Kind = "capture_error"
	KindNoTargets         Kind = "no_targets"
)

// Fatal reports whether a failure of this kind ends the whole run instead of
// a single batch target.
func (k Kind) Fatal() bool {
	switch k {
	case KindConfiguration, KindLaunch, KindNoTargets:
		return true
	default:
		return false
	}
}

// Failure is a classified error. It carries enough context to tell the user
// which URL failed and at which stage.
type Failure struct {
	Kind    Kind
	Stage   string // navigate, wait-for-selector, screenshot, ...
	URL     string
	Message string
	Err     error
}

// NewFailure creates a Failure wrapping err.
func NewFailure(kind Kind, stage, message string, err error) *Failure {
	return &Failure{
		Kind:    kind,
		Stage:   stage,
		Message: message,
		Err:     err,
	}
}

// Error implements error.
func (f *Failure) Error() string {
	msg := f.Message
	if msg == "" && f.Err != nil {
		msg = f.Err.Error()
	} else if f.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, f.Err)
	}
	if f.URL != "" {
		return fmt.Sprintf("%s (%s, %s): %s", f.Kind, f.Stage, f.URL, msg)
	}
	if f.Stage != "" {
		return fmt.Sprintf("%s (%s): %s", f.Kind, f.Stage, msg)
	}
	return fmt.Sprintf("%s: %s", f.Kind, msg)
}

// Unwrap returns the underlying error.
func (f *Failure) Unwrap() error {
	return f.Err
}

// AsFailure extracts a *Failure from err's chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// IsKind reports whether err is a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	f, ok := AsFailure(err)
	return ok && f.Kind == kind
}
