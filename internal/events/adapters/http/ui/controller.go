package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"event-manager/internal/events/adapters/view"
	"event-manager/internal/events/core/domain"
	"event-manager/internal/events/core/usecase"
)

type EventStore interface {
	Load(ctx context.Context) error
	Loaded() bool
	All() []domain.Event
	Create(ctx context.Context, draft domain.Event) (domain.Event, error)
	Update(ctx context.Context, e domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id domain.EventID) usecase.DeleteResult
}

// Controller turns decoded actions into store calls and table updates. It
// holds a single table, shared by every request.
type Controller struct {
	store  EventStore
	page   *view.Page
	logger *slog.Logger

	// mu guards table; it is never held across a store call
	mu    sync.Mutex
	table *view.Table
}

func NewController(store EventStore, page *view.Page, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:  store,
		page:   page,
		logger: logger,
		table:  view.NewTable(),
	}
}

// Init loads the cache and renders it into a fresh table. Pending drafts are
// dropped.
func (c *Controller) Init(ctx context.Context) error {
	if err := c.store.Load(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = view.NewTable()
	c.table.RenderEvents(c.store.All())
	return nil
}

// Dispatch performs one action. values looks up submitted form fields; what
// was typed into other edit and draft rows is kept for the next render.
func (c *Controller) Dispatch(ctx context.Context, a Action, values view.Lookup) error {
	if !c.store.Loaded() {
		if err := c.Init(ctx); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.table.Capture(values)
	c.mu.Unlock()

	switch a.Kind {
	case ActionAddRow:
		c.mu.Lock()
		c.table.AppendDraft()
		c.mu.Unlock()
		return nil

	case ActionAdd:
		if _, err := c.row(a.Target, view.ModeDraft); err != nil {
			return err
		}
		created, err := c.store.Create(ctx, view.ReadFields(a.Target, values))
		if err != nil {
			return err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		c.removeRow(a.Target)
		c.table.AppendEvent(created)
		c.table.RenderEvents(c.store.All())
		return nil

	case ActionEdit:
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.table.EditRow(a.Target)

	case ActionSave:
		r, err := c.row(a.Target, view.ModeEdit)
		if err != nil {
			return err
		}
		e := view.ReadFields(a.Target, values)
		e.ID = r.Event.ID
		if _, err := c.store.Update(ctx, e); err != nil {
			return err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		c.table.RenderEvents(c.store.All())
		return nil

	case ActionCancel:
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.table.CancelRow(a.Target)

	case ActionDelete:
		r, err := c.row(a.Target, view.ModeDisplay, view.ModeEdit)
		if err != nil {
			return err
		}
		res := c.store.Delete(ctx, r.Event.ID)
		if !res.OK() {
			return fmt.Errorf("%w: %w", ErrDeleteFailed, res.Err)
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		c.removeRow(a.Target)
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrInvalidAction, a)
	}
}

// Rows returns the current table rows.
func (c *Controller) Rows() []view.Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.Rows()
}

// Render writes the page with the current table.
func (c *Controller) Render(w io.Writer) error {
	c.mu.Lock()
	nodes := c.table.Nodes()
	c.mu.Unlock()
	return c.page.Render(w, nodes)
}

// row looks up a row that must be in one of the given modes.
func (c *Controller) row(key string, modes ...view.Mode) (view.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.table.Row(key)
	if !ok {
		return view.Row{}, view.ErrUnknownRow
	}
	for _, m := range modes {
		if r.Mode == m {
			return r, nil
		}
	}
	return view.Row{}, view.ErrWrongMode
}

// removeRow drops a row after a store call. The row may already be gone when
// another request cancelled or removed it meanwhile. Callers hold mu.
func (c *Controller) removeRow(key string) {
	if err := c.table.RemoveRow(key); err != nil {
		c.logger.Debug("row_already_removed", "row", key, "error", err)
	}
}
