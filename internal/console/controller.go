package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	StatusLoading     = "loading"
	StatusReady       = "ready"
	StatusDeleting    = "deleting"
	StatusDeleted     = "deleted"
	StatusError       = "error"
	StatusBulkStarted = "bulk delete started"
	StatusBulkDone    = "bulk delete complete"
)

var (
	ErrBusy    = errors.New("another operation is in progress")
	ErrEmptyID = errors.New("customer id is empty")
)

// Backend is the proxy as seen from the console.
type Backend interface {
	List(ctx context.Context, search string) (json.RawMessage, error)
	Delete(ctx context.Context, id string) error
}

// Confirmer asks the operator before destructive actions.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// View receives status changes and user-facing alerts.
type View interface {
	Status(s string)
	Alert(msg string)
}

// State is a snapshot of what the console shows.
type State struct {
	Rows            []Row
	Count           string
	Empty           bool
	Status          string
	ControlsEnabled bool
	Search          string
}

type Controller struct {
	backend Backend
	confirm Confirmer
	view    View
	loc     *time.Location

	busy sync.Mutex

	mu       sync.Mutex
	rows     []Row
	status   string
	controls bool
	search   string
}

type Option func(*Controller)

// WithLocation sets the zone last-seen timestamps are rendered in (default time.Local).
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) { c.loc = loc }
}

func NewController(b Backend, confirm Confirmer, view View, opts ...Option) *Controller {
	c := &Controller{
		backend:  b,
		confirm:  confirm,
		view:     view,
		loc:      time.Local,
		controls: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetSearch stores the search term used by the next LoadList; surrounding blanks are dropped.
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	c.search = strings.TrimSpace(term)
	c.mu.Unlock()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows := make([]Row, len(c.rows))
	copy(rows, c.rows)
	return State{
		Rows:            rows,
		Count:           CountLabel(len(rows)),
		Empty:           len(rows) == 0,
		Status:          c.status,
		ControlsEnabled: c.controls,
		Search:          c.search,
	}
}

// LoadList fetches and renders the customer list.
func (c *Controller) LoadList(ctx context.Context) error {
	if !c.busy.TryLock() {
		return ErrBusy
	}
	defer c.busy.Unlock()

	c.setControls(false)
	defer c.setControls(true)
	c.setStatus(StatusLoading)

	c.mu.Lock()
	search := c.search
	c.mu.Unlock()

	payload, err := c.backend.List(ctx, search)
	if err != nil {
		c.fail(err)
		return err
	}

	customers := NormalizeCustomers(payload)
	rows := make([]Row, 0, len(customers))
	for _, cu := range customers {
		rows = append(rows, newRow(cu, c.loc))
	}

	c.mu.Lock()
	c.rows = rows
	c.mu.Unlock()
	c.setStatus(StatusReady)
	return nil
}

// DeleteOne deletes a single customer after confirmation. The row, when listed, is
// disabled during the call and removed on success.
func (c *Controller) DeleteOne(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if !c.busy.TryLock() {
		return ErrBusy
	}
	defer c.busy.Unlock()

	ok, err := c.confirm.Confirm(fmt.Sprintf("%s will be deleted. Continue?", id))
	if err != nil || !ok {
		return err
	}

	c.setRowDisabled(id, true)
	c.setStatus(StatusDeleting)

	if err := c.backend.Delete(ctx, id); err != nil {
		c.setRowDisabled(id, false)
		c.fail(err)
		return err
	}

	c.removeRow(id)
	c.setStatus(StatusDeleted)
	return nil
}

// DeleteAll deletes every listed customer one after another and stops at the first failure.
func (c *Controller) DeleteAll(ctx context.Context) error {
	if !c.busy.TryLock() {
		return ErrBusy
	}
	defer c.busy.Unlock()

	c.mu.Lock()
	ids := make([]string, 0, len(c.rows))
	for _, r := range c.rows {
		ids = append(ids, r.ID)
	}
	c.mu.Unlock()
	if len(ids) == 0 {
		return nil
	}

	ok, err := c.confirm.Confirm(fmt.Sprintf("%d customers will be deleted. Continue?", len(ids)))
	if err != nil || !ok {
		return err
	}

	c.setControls(false)
	defer c.setControls(true)
	c.setStatus(StatusBulkStarted)

	for _, id := range ids {
		if id == "" {
			continue
		}
		if err := c.backend.Delete(ctx, id); err != nil {
			c.setStatus(fmt.Sprintf("%s: %s: %s", StatusError, id, err.Error()))
			return fmt.Errorf("delete %s: %w", id, err)
		}
		c.removeRow(id)
	}

	c.setStatus(StatusBulkDone)
	return nil
}

func (c *Controller) fail(err error) {
	c.setStatus(StatusError)
	if c.view != nil {
		c.view.Alert(err.Error())
	}
}

func (c *Controller) setStatus(s string) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
	if c.view != nil {
		c.view.Status(s)
	}
}

func (c *Controller) setControls(enabled bool) {
	c.mu.Lock()
	c.controls = enabled
	c.mu.Unlock()
}

func (c *Controller) setRowDisabled(id string, disabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.rows {
		if c.rows[i].ID == id {
			c.rows[i].Disabled = disabled
			return
		}
	}
}

func (c *Controller) removeRow(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.rows {
		if c.rows[i].ID == id {
			c.rows = append(c.rows[:i], c.rows[i+1:]...)
			return
		}
	}
}
