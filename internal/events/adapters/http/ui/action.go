package ui

import (
	"fmt"
	"strings"

	"event-manager/internal/events/adapters/view"
)

type ActionKind string

const (
	ActionAddRow ActionKind = view.VerbAddRow
	ActionAdd    ActionKind = view.VerbAdd
	ActionEdit   ActionKind = view.VerbEdit
	ActionSave   ActionKind = view.VerbSave
	ActionCancel ActionKind = view.VerbCancel
	ActionDelete ActionKind = view.VerbDelete
)

// Action is one decoded button click: what to do and to which row.
type Action struct {
	Kind   ActionKind
	Target string
}

func (a Action) String() string {
	return view.ActionValue(string(a.Kind), a.Target)
}

// DecodeAction parses a submitted "<verb>:<row key>" value. Only add-row
// comes without a target.
func DecodeAction(value string) (Action, error) {
	verb, target, _ := strings.Cut(strings.TrimSpace(value), ":")
	a := Action{Kind: ActionKind(verb), Target: strings.TrimSpace(target)}

	switch a.Kind {
	case ActionAddRow:
		if a.Target != "" {
			return Action{}, fmt.Errorf("%w: %s takes no row", ErrInvalidAction, verb)
		}
		return a, nil
	case ActionAdd, ActionEdit, ActionSave, ActionCancel, ActionDelete:
		if a.Target == "" {
			return Action{}, fmt.Errorf("%w: %s needs a row", ErrInvalidAction, verb)
		}
		return a, nil
	default:
		return Action{}, fmt.Errorf("%w: unknown verb %q", ErrInvalidAction, verb)
	}
}
