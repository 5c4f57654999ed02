package exa

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is an upstream status value normalized to a lowercase-ish string.
// The zero value means the upstream record carried no status.
type Status string

// Well-known upstream status values.
const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusIdle      Status = "idle"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// IsActive reports whether s is pending or running.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusRunning
}

// UnmarshalJSON accepts a plain string, an enum-like object exposing "value"
// or "name", or any other scalar.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	norm, _ := NormalizeStatus(raw)
	*s = Status(norm)
	return nil
}

type valuer interface{ Value() string }

type namer interface{ Name() string }

// NormalizeStatus converts a status of unknown shape into its string form.
// It returns false when v is nil.
func NormalizeStatus(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case Status:
		return string(t), true
	case valuer:
		return t.Value(), true
	case namer:
		return strings.ToLower(t.Name()), true
	case map[string]any:
		if val, ok := t["value"]; ok && val != nil {
			return fmt.Sprint(val), true
		}
		if name, ok := t["name"]; ok && name != nil {
			return strings.ToLower(fmt.Sprint(name)), true
		}
	}
	str := fmt.Sprint(v)
	if i := strings.LastIndex(str, "."); i >= 0 {
		return str[i+1:], true
	}
	return str, true
}
