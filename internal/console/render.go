package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmehdipour/rc-admin/internal/model"
)

const (
	noID       = "(no-id)"
	noProject  = "project"
	noLastSeen = "-"

	// TimeLayout is the display format for last-seen timestamps.
	TimeLayout = "02.01.2006 15:04:05"
)

// Row is one rendered customer entry.
type Row struct {
	ID       string
	Label    string
	LastSeen string
	SeenAt   time.Time // zero when unknown
	Tag      string
	Disabled bool
}

// NormalizeCustomers pulls the customer array out of a list payload: "items" first, then "customers".
func NormalizeCustomers(payload json.RawMessage) []model.Customer {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil
	}
	for _, key := range []string{"items", "customers"} {
		raw, ok := env[key]
		if !ok || !isArray(raw) {
			continue
		}
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil
		}
		out := make([]model.Customer, 0, len(elems))
		for _, e := range elems {
			var c model.Customer
			// non-object entries still get a row, with placeholders
			_ = json.Unmarshal(e, &c)
			out = append(out, c)
		}
		return out
	}
	return nil
}

func isArray(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '['
}

// ParseLastSeen accepts epoch milliseconds or an RFC 3339 / ISO date string.
func ParseLastSeen(raw json.RawMessage) (time.Time, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case float64:
		if t == 0 {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(t)), true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// FormatLastSeen renders a timestamp in loc, or "-" when missing or unparsable.
func FormatLastSeen(raw json.RawMessage, loc *time.Location) string {
	ts, ok := ParseLastSeen(raw)
	if !ok {
		return noLastSeen
	}
	return ts.In(loc).Format(TimeLayout)
}

func newRow(c model.Customer, loc *time.Location) Row {
	r := Row{
		ID:       c.ID,
		Label:    c.ID,
		LastSeen: FormatLastSeen(c.LastSeenAt, loc),
		Tag:      c.ProjectID,
	}
	if ts, ok := ParseLastSeen(c.LastSeenAt); ok {
		r.SeenAt = ts
	}
	if r.Label == "" {
		r.Label = noID
	}
	if r.Tag == "" {
		r.Tag = noProject
	}
	return r
}

// CountLabel is the count text shown above the list.
func CountLabel(n int) string {
	return fmt.Sprintf("%d customer", n)
}
