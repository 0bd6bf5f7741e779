package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"ascent/internal/modules/session/domain"
	sessiondto "ascent/internal/modules/session/dto"
	sessionin "ascent/internal/modules/session/port/in"
	"ascent/internal/modules/session/service"
	apperrors "ascent/internal/platform/errors"
)

var validate = validator.New()

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	if err := check(input); err != nil {
		return sessiondto.StartOutput{}, err
	}
	result, warnings, err := i.svc.Start(ctx, input.GymName)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}
	out := sessiondto.StartOutput{
		GymName:   result.Active.GymName,
		StartedAt: result.Active.StartedAt,
		Warning:   strings.Join(warnings, "; "),
	}
	if result.Finished != nil {
		finished := sessiondto.FromEntry(*result.Finished)
		out.Finished = &finished
	}
	if result.Discarded != nil {
		out.DiscardedElapsed = domain.DurationLabel(result.Discarded.Elapsed(result.Active.StartedAt))
	}
	return out, nil
}

func (i *Interactor) End(ctx context.Context) (sessiondto.EndOutput, error) {
	entry, path, warnings, err := i.svc.End(ctx)
	if err != nil {
		return sessiondto.EndOutput{}, err
	}
	return sessiondto.EndOutput{
		Entry:    sessiondto.FromEntry(entry),
		NotePath: path,
		Warning:  strings.Join(warnings, "; "),
	}, nil
}

func (i *Interactor) GetActive(_ context.Context) (sessiondto.ActiveSessionOutput, error) {
	active, elapsed, ok := i.svc.Active()
	if !ok {
		return sessiondto.ActiveSessionOutput{}, apperrors.ErrNoActiveSession
	}
	return sessiondto.ActiveSessionOutput{
		GymName:   active.GymName,
		StartedAt: active.StartedAt,
		Elapsed:   domain.DurationLabel(elapsed),
	}, nil
}

// History lists finished sessions, newest first.
func (i *Interactor) History(_ context.Context, input sessiondto.HistoryInput) ([]sessiondto.EntryOutput, error) {
	if err := check(input); err != nil {
		return nil, err
	}
	entries := i.svc.History()
	out := make([]sessiondto.EntryOutput, 0, len(entries))
	for k := len(entries) - 1; k >= 0; k-- {
		if input.Limit > 0 && len(out) == input.Limit {
			break
		}
		out = append(out, sessiondto.FromEntry(entries[k]))
	}
	return out, nil
}

func check(input any) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return nil
}
