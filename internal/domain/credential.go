package domain

import "time"

// CredentialSet is the account identifier and bearer token used to reach the
// remote SQL service. Exactly one set is active at a time, system-wide.
// The gateway borrows it per request and never logs the token.
type CredentialSet struct {
	AccountID string
	Token     string
	UpdatedAt time.Time
}
