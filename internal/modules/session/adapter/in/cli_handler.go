package in

import (
	"context"

	sessiondto "momentum/internal/modules/session/dto"
	sessionin "momentum/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Log(ctx context.Context, input sessiondto.LogSessionInput) (sessiondto.LogSessionOutput, error) {
	return h.usecase.LogSession(ctx, input)
}

func (h CLIHandler) List(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	return h.usecase.ListSessions(ctx)
}
