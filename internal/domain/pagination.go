package domain

// DefaultPageSize is the page size used when none is specified.
const DefaultPageSize = 50

// MaxPageSize is the maximum allowed page size for list operations.
const MaxPageSize = 500

// PageRequest holds limit/offset pagination parameters for list operations.
type PageRequest struct {
	MaxResults int
	Skip       int
}

// Limit returns the effective page size, clamped to [1, MaxPageSize].
func (p PageRequest) Limit() int {
	if p.MaxResults <= 0 {
		return DefaultPageSize
	}
	if p.MaxResults > MaxPageSize {
		return MaxPageSize
	}
	return p.MaxResults
}

// Offset returns the effective offset, never negative.
func (p PageRequest) Offset() int {
	if p.Skip < 0 {
		return 0
	}
	return p.Skip
}
