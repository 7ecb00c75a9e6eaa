// Package credential manages the single active credential set used to reach
// the remote SQL service.
package credential

import (
	"context"
	"strings"

	"sqlgate/internal/domain"
)

var _ domain.CredentialSource = (*Service)(nil)

// Service is a single-slot store with an explicit SetActive/GetActive
// contract. Modeled as a service rather than a mutable global so it can be
// swapped for a per-tenant store without touching the gateway.
type Service struct {
	repo domain.CredentialRepository
}

// NewService creates a credential Service over the given repository.
func NewService(repo domain.CredentialRepository) *Service {
	return &Service{repo: repo}
}

// GetActive returns the active credential set. Absence is a precondition
// failure — the gateway never attempts inference.
func (s *Service) GetActive(ctx context.Context) (*domain.CredentialSet, error) {
	cred, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, domain.ErrValidation("no active credential configured")
	}
	return cred, nil
}

// SetActive replaces the active credential set.
func (s *Service) SetActive(ctx context.Context, accountID, token string) error {
	if strings.TrimSpace(accountID) == "" {
		return domain.ErrValidation("account id is required")
	}
	if strings.TrimSpace(token) == "" {
		return domain.ErrValidation("token is required")
	}
	return s.repo.Set(ctx, domain.CredentialSet{AccountID: accountID, Token: token})
}

// Clear removes the active credential set. Clearing an empty slot is a no-op.
func (s *Service) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// Describe returns the active credential with the token redacted, for
// display surfaces. Returns nil when no credential is configured.
func (s *Service) Describe(ctx context.Context) (*domain.CredentialSet, error) {
	cred, err := s.repo.Get(ctx)
	if err != nil || cred == nil {
		return nil, err
	}
	return &domain.CredentialSet{
		AccountID: cred.AccountID,
		Token:     redact(cred.Token),
		UpdatedAt: cred.UpdatedAt,
	}, nil
}

// redact keeps the last four characters of a token for recognisability.
func redact(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
