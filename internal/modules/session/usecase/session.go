package usecase

import (
	"context"
	"fmt"

	sessiondto "momentum/internal/modules/session/dto"
	sessionin "momentum/internal/modules/session/port/in"
	"momentum/internal/modules/session/service"
	"momentum/internal/platform/clock"
	apperrors "momentum/internal/platform/errors"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) LogSession(ctx context.Context, input sessiondto.LogSessionInput) (sessiondto.LogSessionOutput, error) {
	date, err := clock.ParseDate(input.Date)
	if err != nil {
		return sessiondto.LogSessionOutput{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", apperrors.ErrValidation, input.Date)
	}
	session, err := i.svc.Log(ctx, date, input.Group, input.Name, input.Keywords, input.Notes, input.Duration)
	if err != nil {
		return sessiondto.LogSessionOutput{}, err
	}
	return sessiondto.LogSessionOutput{ID: session.ID}, nil
}

func (i *Interactor) ListSessions(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	sessions, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessiondto.SessionOutput{
			ID:       s.ID,
			Date:     s.Date,
			Group:    s.Group,
			Name:     s.Name,
			Keywords: append([]string(nil), s.Keywords...),
			Notes:    s.Notes,
			Duration: s.Duration,
		})
	}
	return out, nil
}
