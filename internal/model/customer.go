package model

import (
	"encoding/json"
	"fmt"
)

// Customer carries the fields the admin console displays. Upstream owns the full record.
type Customer struct {
	ID         string          `json:"id"`
	ProjectID  string          `json:"project_id"`
	LastSeenAt json.RawMessage `json:"last_seen_at"` // epoch millis or a date string
}

// UnmarshalJSON accepts non-string scalars for id/project_id so odd payloads still render.
func (c *Customer) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID         any             `json:"id"`
		ProjectID  any             `json:"project_id"`
		LastSeenAt json.RawMessage `json:"last_seen_at"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	c.ID = scalar(raw.ID)
	c.ProjectID = scalar(raw.ProjectID)
	c.LastSeenAt = raw.LastSeenAt
	return nil
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
		return "true"
	case float64:
		if t == 0 {
			return ""
		}
		return fmt.Sprint(t)
	default:
		return ""
	}
}
