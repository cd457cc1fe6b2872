package out

import (
	"context"

	"momentum/internal/modules/goal/domain"
)

// GoalStore returns goal definitions in storage order.
type GoalStore interface {
	List(ctx context.Context) ([]domain.Goal, error)
}

// GoalWriter replaces the whole goal set at once.
type GoalWriter interface {
	Replace(ctx context.Context, goals []domain.Goal) error
}

// GoalFileReader opens a goal file for import.
type GoalFileReader interface {
	Open(path string) GoalStore
}

// RecordSource yields the sessions goals are evaluated against.
type RecordSource interface {
	Records(ctx context.Context) ([]domain.Record, error)
}
