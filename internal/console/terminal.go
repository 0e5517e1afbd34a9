package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
)

// PromptConfirmer asks on the terminal unless AssumeYes is set.
type PromptConfirmer struct {
	AssumeYes bool
}

func (p PromptConfirmer) Confirm(prompt string) (bool, error) {
	if p.AssumeYes {
		return true, nil
	}
	var ok bool
	err := huh.NewConfirm().
		Title(prompt).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// WriterView prints statuses and alerts as plain lines.
type WriterView struct {
	Out     io.Writer
	Verbose bool // print every status change, not only alerts
}

func (v WriterView) Status(s string) {
	if v.Verbose {
		fmt.Fprintf(v.Out, "status: %s\n", s)
	}
}

func (v WriterView) Alert(msg string) {
	fmt.Fprintf(v.Out, "error: %s\n", msg)
}

// PrintTable renders the list the way the web console does, one line per customer.
func PrintTable(w io.Writer, st State) error {
	if st.Empty {
		fmt.Fprintln(w, "No customers found.")
		fmt.Fprintln(w, st.Count)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLAST SEEN\t\tPROJECT")
	for _, r := range st.Rows {
		ago := ""
		if !r.SeenAt.IsZero() {
			ago = humanize.Time(r.SeenAt)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Label, r.LastSeen, ago, r.Tag)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w, st.Count)
	return nil
}
