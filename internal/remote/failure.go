// Package remote implements the HTTP client for the remote SQL execution
// service and the classifier that turns its failures into domain errors.
package remote

import (
	"fmt"
	"strings"
)

// FailureKind distinguishes how a remote call failed.
type FailureKind string

const (
	// KindTransport covers connection errors, timeouts, and non-2xx HTTP
	// statuses other than authentication failures.
	KindTransport FailureKind = "transport"
	// KindAuth covers 401/403 responses. Tagged distinctly so the classifier
	// routes them to SystemError without inspecting message text.
	KindAuth FailureKind = "auth"
	// KindApplication covers HTTP 2xx responses with success:false in the
	// envelope; Messages carries every error message the service attached.
	KindApplication FailureKind = "application"
)

// Failure is the typed error returned by Client for any unsuccessful call.
type Failure struct {
	Kind       FailureKind
	StatusCode int      // set for Transport and Auth failures
	StatusText string   // HTTP status text or transport error description
	Messages   []string // set for Application failures
}

func (f *Failure) Error() string {
	switch f.Kind {
	case KindApplication:
		return fmt.Sprintf("remote sql error: %s", strings.Join(f.Messages, "; "))
	case KindAuth:
		return fmt.Sprintf("remote auth failure: %d %s", f.StatusCode, f.StatusText)
	default:
		return fmt.Sprintf("remote transport failure: %d %s", f.StatusCode, f.StatusText)
	}
}
