package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DateLayout is the calendar date form used for StartDate and EndDate.
const DateLayout = "2006-01-02"

type Event struct {
	ID        EventID `json:"id,omitempty"`
	EventName string  `json:"eventName"`
	StartDate string  `json:"startDate"` // YYYY-MM-DD
	EndDate   string  `json:"endDate"`   // YYYY-MM-DD
}

// Persisted reports whether the server has assigned an id.
func (e Event) Persisted() bool {
	return e.ID != ""
}

// EventID is the textual form of a server-assigned id. Servers may send it as
// a JSON number or a JSON string; DOM attributes always carry it as text.
type EventID string

func (id EventID) String() string {
	return string(id)
}

// Matches compares ids loosely: identical text, or both plain decimal numbers
// equal in value, so "1" matches 1, "01" and "1.0" but not "0x1".
func (id EventID) Matches(other EventID) bool {
	a := strings.TrimSpace(string(id))
	b := strings.TrimSpace(string(other))
	if a == b {
		return a != ""
	}
	if !isDecimal(a) || !isDecimal(b) {
		return false
	}
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA != nil || errB != nil {
		return false
	}
	return fa == fb
}

// isDecimal accepts an optional sign, digits and at most one point. Hex,
// exponents, underscores and Inf/NaN are rejected.
func isDecimal(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	digits, point := 0, false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' && !point:
			point = true
		default:
			return false
		}
	}
	return digits > 0
}

// Int64 returns the id as an integer when it is numeric.
func (id EventID) Int64() (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(string(id)), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (id EventID) MarshalJSON() ([]byte, error) {
	if n, ok := id.Int64(); ok && strconv.FormatInt(n, 10) == string(id) {
		return []byte(string(id)), nil
	}
	return json.Marshal(string(id))
}

func (id *EventID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = EventID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("event id must be a number or a string: %w", err)
	}
	*id = EventID(n.String())
	return nil
}

// IDFromInt formats a numeric storage id.
func IDFromInt(n int64) EventID {
	return EventID(strconv.FormatInt(n, 10))
}
