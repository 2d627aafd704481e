package ports

import (
	"context"
	"encoding/json"

	"event-manager/internal/events/core/domain"
)

// EventAPIPort is the remote events resource as seen by the front-end.
// Implementations issue exactly one request per call and return whatever
// JSON the server answered with.
type EventAPIPort interface {
	List(ctx context.Context) ([]domain.Event, error)
	Get(ctx context.Context, id domain.EventID) (domain.Event, error)
	Create(ctx context.Context, draft domain.Event) (domain.Event, error)
	Update(ctx context.Context, e domain.Event) (domain.Event, error)
	// Delete returns the raw response body; its shape is server-defined.
	Delete(ctx context.Context, id domain.EventID) (json.RawMessage, error)
}
