// Package view renders the events table. Rows are plain values tagged with a
// mode; HTML nodes are produced from them on demand and never read back.
package view

import (
	"strings"

	"event-manager/internal/events/core/domain"
)

type Mode int

const (
	ModeDisplay Mode = iota
	ModeEdit
	ModeDraft
)

func (m Mode) String() string {
	switch m {
	case ModeDisplay:
		return "display"
	case ModeEdit:
		return "edit"
	case ModeDraft:
		return "draft"
	default:
		return "unknown"
	}
}

// Row is one table row. Key is the record id for persisted rows and a
// generated draft key for rows not yet created.
type Row struct {
	Key   string
	Mode  Mode
	Event domain.Event

	// Input holds what was typed into an edit or draft row and not yet
	// stored. It is replaced, never modified in place.
	Input *domain.Event
}

// Values are the field values the row's inputs show.
func (r Row) Values() domain.Event {
	if r.Input != nil && r.Mode != ModeDisplay {
		return *r.Input
	}
	return r.Event
}

// Action verbs carried by submit buttons as "<verb>:<row key>".
const (
	VerbAddRow = "add-row"
	VerbAdd    = "add"
	VerbEdit   = "edit"
	VerbSave   = "save"
	VerbCancel = "cancel"
	VerbDelete = "delete"
)

// ActionField is the form field every action button submits.
const ActionField = "action"

// ActionValue builds the submitted value of an action button.
func ActionValue(verb, key string) string {
	if key == "" {
		return verb
	}
	return verb + ":" + key
}

// Field binds one event attribute to its input.
type Field struct {
	Name      string
	InputType string
	get       func(domain.Event) string
	set       func(*domain.Event, string)
}

// Fields lists the editable columns in display order.
var Fields = []Field{
	{
		Name:      "eventName",
		InputType: "text",
		get:       func(e domain.Event) string { return e.EventName },
		set:       func(e *domain.Event, v string) { e.EventName = v },
	},
	{
		Name:      "startDate",
		InputType: "date",
		get:       func(e domain.Event) string { return e.StartDate },
		set:       func(e *domain.Event, v string) { e.StartDate = v },
	},
	{
		Name:      "endDate",
		InputType: "date",
		get:       func(e domain.Event) string { return e.EndDate },
		set:       func(e *domain.Event, v string) { e.EndDate = v },
	},
}

// InputName is the form name of a field's input in the given row.
func InputName(field, rowKey string) string {
	return field + "[" + rowKey + "]"
}

// Lookup returns a submitted form value and whether the field was sent.
type Lookup func(name string) (string, bool)

// ReadFields collects a row's submitted inputs by field name, as typed. The
// id is left empty and missing fields read as empty.
func ReadFields(rowKey string, lookup Lookup) domain.Event {
	var e domain.Event
	for _, f := range Fields {
		v, _ := lookup(InputName(f.Name, rowKey))
		f.set(&e, v)
	}
	return e
}

// readInput overlays the submitted inputs of a row on base. ok is false when
// none of the row's inputs were sent.
func readInput(rowKey string, base domain.Event, lookup Lookup) (e domain.Event, ok bool) {
	e = base
	for _, f := range Fields {
		if v, sent := lookup(InputName(f.Name, rowKey)); sent {
			f.set(&e, v)
			ok = true
		}
	}
	return e, ok
}

// IsDraftKey reports whether key names a draft row.
func IsDraftKey(key string) bool {
	return strings.HasPrefix(key, draftKeyPrefix)
}

const draftKeyPrefix = "draft-"
