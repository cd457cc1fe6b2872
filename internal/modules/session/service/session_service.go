package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"momentum/internal/modules/session/domain"
	sessionout "momentum/internal/modules/session/port/out"
	"momentum/internal/platform/clock"
	"momentum/internal/platform/id"
)

type SessionService struct {
	store sessionout.SessionStore
	vocab sessionout.Vocabulary
	log   *zap.Logger

	// mu serializes id assignment: list, pick the lowest free id, append.
	mu sync.Mutex
}

func NewSessionService(store sessionout.SessionStore, vocab sessionout.Vocabulary, log *zap.Logger) *SessionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionService{store: store, vocab: vocab, log: log}
}

// Log validates the fields and appends a session under the smallest unused positive id.
// Nothing is written when validation fails.
func (s *SessionService) Log(ctx context.Context, date time.Time, group, name string, keywords []string, notes string, duration *float64) (domain.Session, error) {
	session := domain.Session{
		Date:     clock.Day(date),
		Group:    strings.TrimSpace(group),
		Name:     strings.TrimSpace(name),
		Keywords: domain.NormalizeKeywords(keywords),
		Notes:    strings.TrimSpace(notes),
		Duration: duration,
	}
	// Check everything but the id before touching the store.
	probe := session
	probe.ID = 1
	if err := probe.Validate(); err != nil {
		return domain.Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.List(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load sessions: %w", err)
	}
	used := make([]int, 0, len(existing))
	for _, e := range existing {
		used = append(used, e.ID)
	}
	session.ID = id.LowestFree(used)

	if err := s.store.Append(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("append session: %w", err)
	}
	if s.vocab != nil && !s.vocab.Knows(session.Group, session.Name) {
		s.log.Warn("session logged outside the catalog",
			zap.Int("id", session.ID),
			zap.String("group", session.Group),
			zap.String("name", session.Name))
	}
	s.log.Info("session logged",
		zap.Int("id", session.ID),
		zap.String("date", clock.FormatDate(session.Date)),
		zap.String("group", session.Group),
		zap.String("name", session.Name))
	return session, nil
}

// List returns every session, newest first; same-day sessions are ordered by id, highest first.
func (s *SessionService) List(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].Date.Equal(sessions[j].Date) {
			return sessions[i].Date.After(sessions[j].Date)
		}
		return sessions[i].ID > sessions[j].ID
	})
	s.log.Debug("sessions loaded", zap.Int("count", len(sessions)))
	return sessions, nil
}
