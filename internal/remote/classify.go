package remote

import (
	"errors"
	"strings"

	"sqlgate/internal/domain"
)

// DefaultUserErrorSignatures is the fixed set of substrings that mark an
// application failure as the user's SQL mistake. A `+` inside a signature
// means every part must appear (conjunction). The remote service has no
// machine-readable error taxonomy, so this list is necessarily heuristic;
// it is treated as configuration and pinned by characterization tests.
var DefaultUserErrorSignatures = []string{
	"syntax error",
	"no such table",
	"no such column",
	"near ",
	"sql error",
	"parse error",
	"duplicate column",
	"table+already exists",
	"constraint",
}

// Classifier decides whether a remote failure was caused by the user's SQL
// or by the infrastructure. It is pure: no network, no state beyond the
// injected signature list.
type Classifier struct {
	signatures []string
}

// NewClassifier creates a Classifier with the given signature list.
// Passing nil uses DefaultUserErrorSignatures.
func NewClassifier(signatures []string) *Classifier {
	if signatures == nil {
		signatures = DefaultUserErrorSignatures
	}
	return &Classifier{signatures: signatures}
}

// Classify maps an error from Client into a domain error.
//
//   - Auth failures (401/403) are always SystemError: authentication is never
//     the end user's SQL mistake.
//   - Other transport failures are SystemError.
//   - Application failures become UserError when any attached message matches
//     any signature, SystemError otherwise (rate limiting, quota, overload).
//   - Errors that are not a *Failure at all are wrapped conservatively as
//     SystemError.
func (c *Classifier) Classify(err error) error {
	var f *Failure
	if !errors.As(err, &f) {
		return &domain.SystemError{Message: err.Error()}
	}

	switch f.Kind {
	case KindApplication:
		if c.matches(f.Messages) {
			return domain.ErrUser(strings.Join(f.Messages, "; "), f.Messages)
		}
		return &domain.SystemError{Message: strings.Join(f.Messages, "; "), RawDetails: f.Messages}
	default:
		return &domain.SystemError{
			Message:    f.Error(),
			StatusCode: f.StatusCode,
			RawDetails: f.Messages,
		}
	}
}

// matches reports whether the joined, lowercased message text contains any
// signature. The policy favors recall for user-caused errors over precision.
func (c *Classifier) matches(messages []string) bool {
	joined := strings.ToLower(strings.Join(messages, "\n"))
	for _, sig := range c.signatures {
		if sigMatches(joined, sig) {
			return true
		}
	}
	return false
}

func sigMatches(joined, sig string) bool {
	for _, part := range strings.Split(strings.ToLower(sig), "+") {
		if !strings.Contains(joined, part) {
			return false
		}
	}
	return true
}
