package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strconv"
	"testing"

	"event-manager/internal/events/core/domain"
	"event-manager/internal/events/core/usecase"
)

// fakeEventAPI keeps a server-side record set and assigns numeric ids, like
// the REST API the store talks to. Fn fields override single operations.
type fakeEventAPI struct {
	records []domain.Event
	nextID  int

	DeleteFn func(ctx context.Context, id domain.EventID) (json.RawMessage, error)
	UpdateFn func(ctx context.Context, e domain.Event) (domain.Event, error)
	ListFn   func(ctx context.Context) ([]domain.Event, error)

	createCalls []domain.Event
	updateCalls []domain.Event
}

func (f *fakeEventAPI) List(ctx context.Context) ([]domain.Event, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return append([]domain.Event(nil), f.records...), nil
}

func (f *fakeEventAPI) Get(ctx context.Context, id domain.EventID) (domain.Event, error) {
	for _, r := range f.records {
		if r.ID.Matches(id) {
			return r, nil
		}
	}
	return domain.Event{}, errors.New("404")
}

func (f *fakeEventAPI) Create(ctx context.Context, draft domain.Event) (domain.Event, error) {
	f.createCalls = append(f.createCalls, draft)
	f.nextID++
	created := draft
	created.ID = domain.EventID(strconv.Itoa(f.nextID))
	// server-side normalization
	if created.EndDate == "" {
		created.EndDate = created.StartDate
	}
	f.records = append(f.records, created)
	return created, nil
}

func (f *fakeEventAPI) Update(ctx context.Context, e domain.Event) (domain.Event, error) {
	f.updateCalls = append(f.updateCalls, e)
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, e)
	}
	for i, r := range f.records {
		if r.ID.Matches(e.ID) {
			e.ID = r.ID
			f.records[i] = e
			return e, nil
		}
	}
	return domain.Event{}, errors.New("404")
}

func (f *fakeEventAPI) Delete(ctx context.Context, id domain.EventID) (json.RawMessage, error) {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	for i, r := range f.records {
		if r.ID.Matches(id) {
			f.records = append(f.records[:i:i], f.records[i+1:]...)
			return json.RawMessage(`{}`), nil
		}
	}
	return nil, errors.New("404")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func assertCacheMatchesServer(t *testing.T, store *usecase.EventStore, api *fakeEventAPI) {
	t.Helper()
	got := store.All()
	want := api.records
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("cache diverged from server\n cache:  %+v\n server: %+v", got, want)
	}
}

// ------------------------------------------------------------
// LOAD
// ------------------------------------------------------------

func TestEventStore_Load(t *testing.T) {
	api := &fakeEventAPI{records: []domain.Event{
		{ID: "1", EventName: "Music Festival", StartDate: "2023-01-20", EndDate: "2023-01-21"},
		{ID: "2", EventName: "Food Festival", StartDate: "2023-02-01", EndDate: "2023-02-02"},
	}}
	store := usecase.NewEventStore(api, quietLogger())

	if store.Loaded() {
		t.Fatalf("expected store to start unloaded")
	}
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.Loaded() {
		t.Fatalf("expected store to be loaded")
	}
	assertCacheMatchesServer(t, store, api)
}

func TestEventStore_LoadError(t *testing.T) {
	api := &fakeEventAPI{
		ListFn: func(ctx context.Context) ([]domain.Event, error) {
			return nil, errors.New("connection refused")
		},
	}
	store := usecase.NewEventStore(api, quietLogger())

	err := store.Load(context.Background())
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if store.Loaded() {
		t.Fatalf("store must stay unloaded after a failed load")
	}
}

func TestEventStore_AllReturnsCopy(t *testing.T) {
	api := &fakeEventAPI{records: []domain.Event{{ID: "1", EventName: "a"}}}
	store := usecase.NewEventStore(api, quietLogger())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := store.All()
	all[0].EventName = "mutated"

	e, err := store.Find("1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.EventName != "a" {
		t.Fatalf("cache was aliased: %+v", e)
	}
}

// ------------------------------------------------------------
// FIND
// ------------------------------------------------------------

func TestEventStore_Find(t *testing.T) {
	api := &fakeEventAPI{records: []domain.Event{
		{ID: "1", EventName: "one"},
		{ID: "2", EventName: "two"},
	}}
	store := usecase.NewEventStore(api, quietLogger())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range []domain.EventID{"2", "02", " 2", "2.0"} {
		e, err := store.Find(id)
		if err != nil {
			t.Fatalf("Find(%q): unexpected error: %v", id, err)
		}
		if e.EventName != "two" {
			t.Fatalf("Find(%q): expected two, got %+v", id, e)
		}
	}

	for _, id := range []domain.EventID{"3", "", "two"} {
		if _, err := store.Find(id); !errors.Is(err, usecase.ErrEventNotFound) {
			t.Fatalf("Find(%q): expected ErrEventNotFound, got %v", id, err)
		}
	}
}

// ------------------------------------------------------------
// CREATE / UPDATE / DELETE keep cache == server
// ------------------------------------------------------------

func TestEventStore_MutationSequenceMirrorsServer(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{}
	store := usecase.NewEventStore(api, quietLogger())
	if err := store.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := store.Create(ctx, domain.Event{EventName: "A", StartDate: "2023-01-01", EndDate: "2023-01-02"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCacheMatchesServer(t, store, api)

	b, err := store.Create(ctx, domain.Event{EventName: "B", StartDate: "2023-03-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCacheMatchesServer(t, store, api)

	if _, err := store.Update(ctx, domain.Event{ID: a.ID, EventName: "A2", StartDate: "2023-01-05", EndDate: "2023-01-06"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCacheMatchesServer(t, store, api)

	if res := store.Delete(ctx, b.ID); !res.OK() || !res.Removed {
		t.Fatalf("expected successful delete, got %+v", res)
	}
	assertCacheMatchesServer(t, store, api)

	if _, err := store.Create(ctx, domain.Event{EventName: "C"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCacheMatchesServer(t, store, api)
}

func TestEventStore_CreateThenFindReturnsServerValue(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{}
	store := usecase.NewEventStore(api, quietLogger())

	draft := domain.Event{ID: "ignored", EventName: "Solo", StartDate: "2023-05-01"}
	created, err := store.Create(ctx, draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.createCalls[0].ID != "" {
		t.Fatalf("create must not send an id, sent %q", api.createCalls[0].ID)
	}

	found, err := store.Find(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.EndDate != "2023-05-01" {
		t.Fatalf("expected server-normalized end date, got %+v", found)
	}
	if reflect.DeepEqual(found, draft) {
		t.Fatalf("expected the server's record, got the draft")
	}
}

func TestEventStore_UpdateCachesServerResponse(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{
		records: []domain.Event{{ID: "1", EventName: "Music Festival", StartDate: "2023-01-20", EndDate: "2023-01-21"}},
		UpdateFn: func(ctx context.Context, e domain.Event) (domain.Event, error) {
			// numeric id and trimmed name from the server
			return domain.Event{ID: "1", EventName: "JAZZ FEST", StartDate: e.StartDate, EndDate: e.EndDate}, nil
		},
	}
	store := usecase.NewEventStore(api, quietLogger())
	if err := store.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Update(ctx, domain.Event{ID: "1", EventName: "Jazz Fest", StartDate: "2023-01-22", EndDate: "2023-01-23"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.EventName != "JAZZ FEST" {
		t.Fatalf("expected server value, got %+v", got)
	}

	cached, _ := store.Find("1")
	if cached.EventName != "JAZZ FEST" || cached.StartDate != "2023-01-22" {
		t.Fatalf("expected cache to hold server value, got %+v", cached)
	}
	if len(store.All()) != 1 {
		t.Fatalf("expected 1 cached event, got %d", len(store.All()))
	}
}

func TestEventStore_UpdateError(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{
		records: []domain.Event{{ID: "1", EventName: "keep"}},
		UpdateFn: func(ctx context.Context, e domain.Event) (domain.Event, error) {
			return domain.Event{}, errors.New("network down")
		},
	}
	store := usecase.NewEventStore(api, quietLogger())
	if err := store.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Update(ctx, domain.Event{ID: "1", EventName: "changed"}); err == nil {
		t.Fatalf("expected error, got nil")
	}
	cached, _ := store.Find("1")
	if cached.EventName != "keep" {
		t.Fatalf("cache must be untouched on failure, got %+v", cached)
	}
}

func TestEventStore_DeleteFailureLeavesCache(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{
		records: []domain.Event{{ID: "1", EventName: "stay"}},
		DeleteFn: func(ctx context.Context, id domain.EventID) (json.RawMessage, error) {
			return nil, errors.New("rejected")
		},
	}
	store := usecase.NewEventStore(api, quietLogger())
	if err := store.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := store.Delete(ctx, "1")
	if res.OK() {
		t.Fatalf("expected failed delete result")
	}
	if res.Removed {
		t.Fatalf("expected Removed=false")
	}
	if res.Err == nil || res.Err.Error() != "delete event 1: rejected" {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if _, err := store.Find("1"); err != nil {
		t.Fatalf("expected cache entry to remain, got %v", err)
	}
}

func TestEventStore_DeleteWithStringID(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{records: []domain.Event{{ID: "5", EventName: "x"}}}
	store := usecase.NewEventStore(api, quietLogger())
	if err := store.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := store.Delete(ctx, "05")
	if !res.OK() || !res.Removed {
		t.Fatalf("expected removal through loose id match, got %+v", res)
	}
	if string(res.Response) != `{}` {
		t.Fatalf("expected raw response body, got %s", res.Response)
	}
	if len(store.All()) != 0 {
		t.Fatalf("expected empty cache, got %+v", store.All())
	}
}

// ------------------------------------------------------------
// FETCH
// ------------------------------------------------------------

func TestEventStore_FetchRefreshesCachedEntry(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{records: []domain.Event{{ID: "1", EventName: "old"}}}
	store := usecase.NewEventStore(api, quietLogger())
	if err := store.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	api.records[0].EventName = "new"

	e, err := store.Fetch(ctx, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.EventName != "new" {
		t.Fatalf("expected fetched value, got %+v", e)
	}
	cached, _ := store.Find("1")
	if cached.EventName != "new" {
		t.Fatalf("expected cache refresh, got %+v", cached)
	}

	if _, err := store.Fetch(ctx, "9"); err == nil {
		t.Fatalf("expected error for unknown id")
	}
}
