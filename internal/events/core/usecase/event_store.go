package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"event-manager/internal/events/core/domain"
	"event-manager/internal/events/core/ports"
)

// EventStore owns the in-memory copy of the server's events for one page
// load. Every mutation goes to the API first and then brings the cache in
// line with the server's answer.
type EventStore struct {
	api    ports.EventAPIPort
	logger *slog.Logger

	mu     sync.RWMutex
	events []domain.Event
	loaded bool
}

func NewEventStore(api ports.EventAPIPort, logger *slog.Logger) *EventStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventStore{api: api, logger: logger}
}

// DeleteResult is the outcome of Delete. Err is set when the API call failed;
// in that case the cache was not touched.
type DeleteResult struct {
	ID       domain.EventID
	Removed  bool
	Response json.RawMessage
	Err      error
}

func (r DeleteResult) OK() bool {
	return r.Err == nil
}

// Load replaces the cache with the server's list.
func (s *EventStore) Load(ctx context.Context) error {
	events, err := s.api.List(ctx)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	s.mu.Lock()
	s.events = append([]domain.Event(nil), events...)
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *EventStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// All returns a copy of the cache in server order.
func (s *EventStore) All() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Find returns the first cached event whose id loosely matches id.
func (s *EventStore) Find(id domain.EventID) (domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.events[i], nil
	}
	return domain.Event{}, ErrEventNotFound
}

func (s *EventStore) Create(ctx context.Context, draft domain.Event) (domain.Event, error) {
	draft.ID = ""
	created, err := s.api.Create(ctx, draft)
	if err != nil {
		return domain.Event{}, fmt.Errorf("create event: %w", err)
	}

	s.mu.Lock()
	s.events = append(s.events, created)
	s.mu.Unlock()
	return created, nil
}

// Update sends e to the server and caches the server's version of it.
func (s *EventStore) Update(ctx context.Context, e domain.Event) (domain.Event, error) {
	updated, err := s.api.Update(ctx, e)
	if err != nil {
		return domain.Event{}, fmt.Errorf("update event %s: %w", e.ID, err)
	}
	if updated.ID == "" {
		updated.ID = e.ID
	}

	s.mu.Lock()
	s.replace(e.ID, updated)
	s.mu.Unlock()
	return updated, nil
}

// Delete removes id on the server and then from the cache. A failed call is
// logged and reported through the result; the cache keeps the entry.
func (s *EventStore) Delete(ctx context.Context, id domain.EventID) DeleteResult {
	res := DeleteResult{ID: id}

	body, err := s.api.Delete(ctx, id)
	if err != nil {
		s.logger.Warn("event_delete_failed", "id", id.String(), "error", err.Error())
		res.Err = fmt.Errorf("delete event %s: %w", id, err)
		return res
	}
	res.Response = body

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.events = append(s.events[:i:i], s.events[i+1:]...)
		res.Removed = true
	}
	s.mu.Unlock()
	return res
}

// Fetch reads one event from the server and refreshes its cache entry when
// the event is cached.
func (s *EventStore) Fetch(ctx context.Context, id domain.EventID) (domain.Event, error) {
	e, err := s.api.Get(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("get event %s: %w", id, err)
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		if e.ID == "" {
			e.ID = s.events[i].ID
		}
		s.events[i] = e
	}
	s.mu.Unlock()
	return e, nil
}

// replace swaps the entry matching id for e, appending e when nothing matches
// so the cache still mirrors the server. Callers hold mu.
func (s *EventStore) replace(id domain.EventID, e domain.Event) {
	if i := s.indexOf(id); i >= 0 {
		s.events[i] = e
		return
	}
	s.events = append(s.events, e)
}

// indexOf is a linear scan; callers hold mu.
func (s *EventStore) indexOf(id domain.EventID) int {
	for i, e := range s.events {
		if e.ID.Matches(id) {
			return i
		}
	}
	return -1
}
