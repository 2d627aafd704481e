package ui

import (
	"errors"
	"testing"
)

func TestDecodeAction_RoundTrip(t *testing.T) {
	actions := []Action{
		{Kind: ActionAddRow},
		{Kind: ActionAdd, Target: "draft-0f8c"},
		{Kind: ActionEdit, Target: "1"},
		{Kind: ActionSave, Target: "1"},
		{Kind: ActionCancel, Target: "draft-0f8c"},
		{Kind: ActionDelete, Target: "42"},
	}

	for _, want := range actions {
		t.Run(string(want.Kind), func(t *testing.T) {
			got, err := DecodeAction(want.String())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != want {
				t.Fatalf("expected %+v, got %+v", want, got)
			}
		})
	}
}

func TestDecodeAction_Rejects(t *testing.T) {
	for _, value := range []string{
		"",
		"launch:1",
		"edit",
		"edit:",
		"delete:  ",
		"add-row:1",
		"event_edit-btn",
	} {
		t.Run(value, func(t *testing.T) {
			if _, err := DecodeAction(value); !errors.Is(err, ErrInvalidAction) {
				t.Fatalf("expected ErrInvalidAction for %q, got %v", value, err)
			}
		})
	}
}

func TestDecodeAction_TargetKeepsColons(t *testing.T) {
	a, err := DecodeAction("save:a:b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind != ActionSave || a.Target != "a:b" {
		t.Fatalf("unexpected action %+v", a)
	}
}
