package out

import (
	"context"

	"momentum/internal/modules/session/domain"
)

// SessionStore owns the logged sessions. List returns them in storage order.
type SessionStore interface {
	List(ctx context.Context) ([]domain.Session, error)
	Append(ctx context.Context, session domain.Session) error
}

// Vocabulary tells the logger which group/activity pairs are known.
type Vocabulary interface {
	Knows(group, name string) bool
}
