package out

import (
	"context"
	"database/sql"
	"fmt"

	"momentum/internal/modules/session/domain"
	sessionout "momentum/internal/modules/session/port/out"
	"momentum/internal/platform/clock"
	"momentum/internal/platform/tx"
)

// SQLiteSessionStore expects a database already migrated by sqlitedb.Open.
type SQLiteSessionStore struct {
	db *sql.DB
	tx tx.Manager
}

func NewSQLiteSessionStore(db *sql.DB) sessionout.SessionStore {
	return &SQLiteSessionStore{db: db, tx: tx.NewSQLManager(db)}
}

func (s *SQLiteSessionStore) List(ctx context.Context) ([]domain.Session, error) {
	exec := tx.From(ctx, s.db)
	rows, err := exec.QueryContext(ctx, `SELECT id, date, activity_group, activity_name, notes, duration FROM sessions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	byID := map[int]int{}
	for rows.Next() {
		var (
			session  domain.Session
			rawDate  string
			duration sql.NullFloat64
		)
		if err := rows.Scan(&session.ID, &rawDate, &session.Group, &session.Name, &session.Notes, &duration); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		date, err := clock.ParseDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("session %d: bad date %q: %w", session.ID, rawDate, err)
		}
		session.Date = date
		if duration.Valid {
			v := duration.Float64
			session.Duration = &v
		}
		byID[session.ID] = len(sessions)
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	kwRows, err := exec.QueryContext(ctx, `SELECT session_id, keyword FROM session_keywords ORDER BY session_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query session keywords: %w", err)
	}
	defer kwRows.Close()
	for kwRows.Next() {
		var (
			sessionID int
			keyword   string
		)
		if err := kwRows.Scan(&sessionID, &keyword); err != nil {
			return nil, fmt.Errorf("scan session keyword: %w", err)
		}
		if i, ok := byID[sessionID]; ok {
			sessions[i].Keywords = append(sessions[i].Keywords, keyword)
		}
	}
	if err := kwRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session keywords: %w", err)
	}
	return sessions, nil
}

func (s *SQLiteSessionStore) Append(ctx context.Context, session domain.Session) error {
	return s.tx.Within(ctx, func(ctx context.Context) error {
		exec := tx.From(ctx, s.db)
		var duration any
		if session.Duration != nil {
			duration = *session.Duration
		}
		if _, err := exec.ExecContext(ctx,
			`INSERT INTO sessions (id, date, activity_group, activity_name, notes, duration) VALUES (?, ?, ?, ?, ?, ?)`,
			session.ID, clock.FormatDate(session.Date), session.Group, session.Name, session.Notes, duration,
		); err != nil {
			return fmt.Errorf("insert session %d: %w", session.ID, err)
		}
		for pos, kw := range session.Keywords {
			if _, err := exec.ExecContext(ctx,
				`INSERT INTO session_keywords (session_id, position, keyword) VALUES (?, ?, ?)`,
				session.ID, pos, kw,
			); err != nil {
				return fmt.Errorf("insert keyword for session %d: %w", session.ID, err)
			}
		}
		return nil
	})
}
