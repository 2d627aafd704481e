package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"event-manager/internal/events/core/domain"
	"event-manager/internal/events/core/ports"
)

// ManageEventsUseCase is the server side of the events resource: it validates
// input and delegates persistence to the repository.
type ManageEventsUseCase struct {
	repo ports.EventRepositoryPort
}

func NewManageEventsUseCase(repo ports.EventRepositoryPort) *ManageEventsUseCase {
	return &ManageEventsUseCase{repo: repo}
}

type CreateEventInput struct {
	EventName string
	StartDate string
	EndDate   string
}

type PatchEventInput struct {
	ID    domain.EventID
	Patch ports.EventPatch
}

func (uc *ManageEventsUseCase) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := uc.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, nil
}

func (uc *ManageEventsUseCase) GetEvent(ctx context.Context, id domain.EventID) (domain.Event, error) {
	e, found, err := uc.repo.GetEvent(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}
	if !found {
		return domain.Event{}, ErrEventNotFound
	}
	return e, nil
}

func (uc *ManageEventsUseCase) CreateEvent(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	e := domain.Event{
		EventName: strings.TrimSpace(in.EventName),
		StartDate: strings.TrimSpace(in.StartDate),
		EndDate:   strings.TrimSpace(in.EndDate),
	}

	if err := validateEvent(e); err != nil {
		return domain.Event{}, err
	}

	return uc.repo.InsertEvent(ctx, e)
}

// PatchEvent merges the present fields into the stored event.
func (uc *ManageEventsUseCase) PatchEvent(ctx context.Context, in PatchEventInput) (domain.Event, error) {
	current, err := uc.GetEvent(ctx, in.ID)
	if err != nil {
		return domain.Event{}, err
	}

	merged := applyPatch(current, in.Patch)
	if err := validateEvent(merged); err != nil {
		return domain.Event{}, err
	}

	updated, err := uc.repo.UpdateEvent(ctx, merged)
	if err != nil {
		return domain.Event{}, err
	}
	if !updated {
		// deleted between read and write
		return domain.Event{}, ErrEventNotFound
	}

	return merged, nil
}

// DeleteEvent removes the event and returns what was removed.
func (uc *ManageEventsUseCase) DeleteEvent(ctx context.Context, id domain.EventID) (domain.Event, error) {
	current, err := uc.GetEvent(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}

	deleted, err := uc.repo.DeleteEvent(ctx, current.ID)
	if err != nil {
		return domain.Event{}, err
	}
	if !deleted {
		return domain.Event{}, ErrEventNotFound
	}

	return current, nil
}

func applyPatch(e domain.Event, p ports.EventPatch) domain.Event {
	if p.EventName != nil {
		e.EventName = strings.TrimSpace(*p.EventName)
	}
	if p.StartDate != nil {
		e.StartDate = strings.TrimSpace(*p.StartDate)
	}
	if p.EndDate != nil {
		e.EndDate = strings.TrimSpace(*p.EndDate)
	}
	return e
}

func validateEvent(e domain.Event) error {
	if e.EventName == "" {
		return fmt.Errorf("%w: eventName is required", ErrInvalidEvent)
	}

	start, err := parseDate("startDate", e.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("endDate", e.EndDate)
	if err != nil {
		return err
	}

	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return ErrInvalidDateRange
	}

	return nil
}

// parseDate accepts an empty value as "not set".
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrInvalidEvent, field)
	}
	return t, nil
}
