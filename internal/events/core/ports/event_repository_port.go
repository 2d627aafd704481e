package ports

import (
	"context"

	"event-manager/internal/events/core/domain"
)

// EventPatch carries the fields present in a partial update; nil means
// "leave unchanged".
type EventPatch struct {
	EventName *string
	StartDate *string
	EndDate   *string
}

type EventRepositoryPort interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	// GetEvent reports found=false when no row has the id.
	GetEvent(ctx context.Context, id domain.EventID) (e domain.Event, found bool, err error)
	// InsertEvent stores e and returns it with the assigned id.
	InsertEvent(ctx context.Context, e domain.Event) (domain.Event, error)
	// UpdateEvent replaces the stored fields of e.ID:
	//   updated = true,  err = nil  -> row replaced
	//   updated = false, err = nil  -> no such id
	UpdateEvent(ctx context.Context, e domain.Event) (updated bool, err error)
	DeleteEvent(ctx context.Context, id domain.EventID) (deleted bool, err error)
}
