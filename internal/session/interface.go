package session

import "context"

type Store interface {
	// Create stores a new session with Version 1. Returns ErrAlreadyExists
	// when the ID is taken.
	Create(ctx context.Context, s *Session) error

	// Get returns nil, nil when the session does not exist.
	Get(ctx context.Context, id string) (*Session, error)

	// Update persists s if its Version still matches the stored one, then
	// increments Version. Returns ErrVersionConflict or ErrNotFound.
	Update(ctx context.Context, s *Session) error

	Delete(ctx context.Context, id string) error

	Close() error
}
