package out

import (
	"context"

	"momentum/internal/modules/progress/domain"
	progressout "momentum/internal/modules/progress/port/out"
	sessionin "momentum/internal/modules/session/port/in"
	"momentum/internal/platform/category"
)

type SessionPointSource struct {
	sessions sessionin.Usecase
}

func NewSessionPointSource(sessions sessionin.Usecase) progressout.SessionPointSource {
	return SessionPointSource{sessions: sessions}
}

func (s SessionPointSource) SessionPoints(ctx context.Context) ([]domain.SessionPoint, error) {
	sessions, err := s.sessions.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	points := make([]domain.SessionPoint, 0, len(sessions))
	for _, session := range sessions {
		points = append(points, domain.SessionPoint{
			Date:    session.Date,
			Subject: category.Subject{Group: session.Group, Name: session.Name, Keywords: session.Keywords},
		})
	}
	return points, nil
}
