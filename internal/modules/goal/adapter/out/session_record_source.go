package out

import (
	"context"

	"momentum/internal/modules/goal/domain"
	goalout "momentum/internal/modules/goal/port/out"
	sessionin "momentum/internal/modules/session/port/in"
	"momentum/internal/platform/category"
)

// SessionRecordSource reads logged sessions through the session module.
type SessionRecordSource struct {
	sessions sessionin.Usecase
}

func NewSessionRecordSource(sessions sessionin.Usecase) goalout.RecordSource {
	return SessionRecordSource{sessions: sessions}
}

func (s SessionRecordSource) Records(ctx context.Context) ([]domain.Record, error) {
	sessions, err := s.sessions.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(sessions))
	for _, session := range sessions {
		records = append(records, domain.Record{
			Date:    session.Date,
			Subject: category.Subject{Group: session.Group, Name: session.Name, Keywords: session.Keywords},
		})
	}
	return records, nil
}
