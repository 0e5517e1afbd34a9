package console

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCustomers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		payload string
		want    []string
	}{
		{"items", `{"items":[{"id":"a"},{"id":"b"}]}`, []string{"a", "b"}},
		{"customers", `{"customers":[{"id":"c"}]}`, []string{"c"}},
		{"items wins", `{"items":[{"id":"a"}],"customers":[{"id":"c"}]}`, []string{"a"}},
		{"items not array falls back", `{"items":{"id":"a"},"customers":[{"id":"c"}]}`, []string{"c"}},
		{"neither", `{"data":[{"id":"a"}]}`, nil},
		{"null payload", `null`, nil},
		{"array payload", `[{"id":"a"}]`, nil},
		{"numeric id", `{"items":[{"id":42}]}`, []string{"42"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizeCustomers(json.RawMessage(tc.payload))
			var ids []string
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestFormatLastSeen(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		``:                            "-",
		`null`:                        "-",
		`""`:                          "-",
		`"yesterday"`:                 "-",
		`0`:                           "-",
		`1700000000000`:               "14.11.2023 22:13:20",
		`"2024-02-29T08:30:00Z"`:      "29.02.2024 08:30:00",
		`"2024-02-29T10:30:00+02:00"`: "29.02.2024 08:30:00",
		`"2024-02-29"`:                "29.02.2024 00:00:00",
	}
	for raw, want := range cases {
		assert.Equal(t, want, FormatLastSeen(json.RawMessage(raw), time.UTC), "input %q", raw)
	}
}

func TestPrintTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, State{Empty: true, Count: CountLabel(0)}))
	assert.Equal(t, "No customers found.\n0 customer\n", buf.String())

	buf.Reset()
	st := State{
		Rows: []Row{
			{ID: "c1", Label: "c1", LastSeen: "-", Tag: "p1"},
			{Label: "(no-id)", LastSeen: "-", Tag: "project"},
		},
		Count: CountLabel(2),
	}
	require.NoError(t, PrintTable(&buf, st))
	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "c1")
	assert.Contains(t, out, "(no-id)")
	assert.Contains(t, out, "2 customer")
}
