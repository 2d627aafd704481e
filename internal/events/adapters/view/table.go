package view

import (
	"event-manager/internal/events/core/domain"

	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// Table is the ordered set of rows shown in the events table body. It is not
// safe for concurrent use.
type Table struct {
	rows []Row
}

func NewTable() *Table {
	return &Table{}
}

// RenderEvents rebuilds every record row in display mode from events, in
// order. Pending draft rows are kept after them.
func (t *Table) RenderEvents(events []domain.Event) {
	rows := make([]Row, 0, len(events)+len(t.rows))
	for _, e := range events {
		rows = append(rows, displayRow(e))
	}
	for _, r := range t.rows {
		if r.Mode == ModeDraft {
			rows = append(rows, r)
		}
	}
	t.rows = rows
}

// AppendEvent adds a display row for e at the end of the table.
func (t *Table) AppendEvent(e domain.Event) {
	t.rows = append(t.rows, displayRow(e))
}

// AppendDraft adds an empty draft row and returns its key.
func (t *Table) AppendDraft() string {
	key := draftKeyPrefix + uuid.NewString()
	t.rows = append(t.rows, Row{Key: key, Mode: ModeDraft})
	return key
}

// Capture keeps what the user typed into edit and draft rows, so a later
// render shows it again. Rows whose inputs were not submitted are left alone.
func (t *Table) Capture(lookup Lookup) {
	for i, r := range t.rows {
		if r.Mode == ModeDisplay {
			continue
		}
		if in, ok := readInput(r.Key, r.Values(), lookup); ok {
			t.rows[i].Input = &in
		}
	}
}

// EditRow switches a display row to edit mode, keeping its current values.
func (t *Table) EditRow(key string) error {
	i := t.index(key)
	if i < 0 {
		return ErrUnknownRow
	}
	switch t.rows[i].Mode {
	case ModeDisplay:
		t.rows[i].Mode = ModeEdit
		t.rows[i].Input = nil
		return nil
	case ModeEdit:
		return nil
	default:
		return ErrWrongMode
	}
}

// CancelRow reverts an edit row to display mode and drops a draft row.
// Cancelling a display row does nothing.
func (t *Table) CancelRow(key string) error {
	i := t.index(key)
	if i < 0 {
		return ErrUnknownRow
	}
	switch t.rows[i].Mode {
	case ModeEdit:
		t.rows[i].Mode = ModeDisplay
		t.rows[i].Input = nil
	case ModeDraft:
		t.removeAt(i)
	}
	return nil
}

func (t *Table) RemoveRow(key string) error {
	i := t.index(key)
	if i < 0 {
		return ErrUnknownRow
	}
	t.removeAt(i)
	return nil
}

// Row returns the first row with the given key.
func (t *Table) Row(key string) (Row, bool) {
	i := t.index(key)
	if i < 0 {
		return Row{}, false
	}
	return t.rows[i], true
}

func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Nodes renders every row, in order.
func (t *Table) Nodes() []*html.Node {
	nodes := make([]*html.Node, 0, len(t.rows))
	for _, r := range t.rows {
		nodes = append(nodes, RenderRow(r))
	}
	return nodes
}

func (t *Table) index(key string) int {
	if key == "" {
		return -1
	}
	for i, r := range t.rows {
		if r.Key == key {
			return i
		}
	}
	if IsDraftKey(key) {
		return -1
	}
	// record rows also answer to an equivalent id ("1" for "01")
	for i, r := range t.rows {
		if r.Mode != ModeDraft && domain.EventID(r.Key).Matches(domain.EventID(key)) {
			return i
		}
	}
	return -1
}

func (t *Table) removeAt(i int) {
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
}

func displayRow(e domain.Event) Row {
	return Row{Key: e.ID.String(), Mode: ModeDisplay, Event: e}
}
