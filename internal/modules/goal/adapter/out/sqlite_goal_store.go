package out

import (
	"context"
	"database/sql"
	"fmt"

	"momentum/internal/modules/goal/domain"
	"momentum/internal/platform/category"
	"momentum/internal/platform/clock"
	"momentum/internal/platform/tx"
)

// SQLiteGoalStore expects a database already migrated by sqlitedb.Open.
type SQLiteGoalStore struct {
	db *sql.DB
	tx tx.Manager
}

func NewSQLiteGoalStore(db *sql.DB) *SQLiteGoalStore {
	return &SQLiteGoalStore{db: db, tx: tx.NewSQLManager(db)}
}

func (s *SQLiteGoalStore) List(ctx context.Context) ([]domain.Goal, error) {
	rows, err := tx.From(ctx, s.db).QueryContext(ctx,
		`SELECT id, start_date, end_date, label, identifier_level, identifier, condition_type, quantity FROM goals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		var (
			g          domain.Goal
			start, end string
			level      int
			condition  string
		)
		if err := rows.Scan(&g.ID, &start, &end, &g.Label, &level, &g.Identifier, &condition, &g.Quantity); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		if g.Start, err = clock.ParseDate(start); err != nil {
			return nil, fmt.Errorf("goal %d: bad start date %q: %w", g.ID, start, err)
		}
		if g.End, err = clock.ParseDate(end); err != nil {
			return nil, fmt.Errorf("goal %d: bad end date %q: %w", g.ID, end, err)
		}
		g.Level = category.Level(level)
		g.Condition = domain.ConditionType(condition)
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return goals, nil
}

func (s *SQLiteGoalStore) Replace(ctx context.Context, goals []domain.Goal) error {
	return s.tx.Within(ctx, func(ctx context.Context) error {
		exec := tx.From(ctx, s.db)
		if _, err := exec.ExecContext(ctx, `DELETE FROM goals`); err != nil {
			return fmt.Errorf("clear goals: %w", err)
		}
		for _, g := range goals {
			if _, err := exec.ExecContext(ctx,
				`INSERT INTO goals (id, start_date, end_date, label, identifier_level, identifier, condition_type, quantity) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				g.ID, clock.FormatDate(g.Start), clock.FormatDate(g.End), g.Label, int(g.Level), g.Identifier, string(g.Condition), g.Quantity,
			); err != nil {
				return fmt.Errorf("insert goal %d: %w", g.ID, err)
			}
		}
		return nil
	})
}
