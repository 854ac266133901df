// Package form drives a single form submission:
//
//	Editing -> Validating -> Submitting -> Succeeded | Failed
//
// Failed returns to Editing with the field errors kept for display.
// Succeeded is terminal and carries the route to redirect to.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"boothbuzz-admin/logger"
	"boothbuzz-admin/monitoring"
	"boothbuzz-admin/validate"
)

type State int

const (
	Editing State = iota
	Validating
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	ErrSubmitted  = errors.New("form already submitted")
	ErrInProgress = errors.New("form submission in progress")
)

// Result is what the caller renders after Submit.
type Result struct {
	State         State           `json:"-"`
	Fields        validate.Errors `json:"fields,omitempty"`
	Redirect      string          `json:"redirect,omitempty"`
	RedirectAfter time.Duration   `json:"-"`
	Err           error           `json:"-"`
}

// Invalid reports whether the submission stopped at validation.
func (r Result) Invalid() bool {
	_, submit := r.Fields[validate.Submit]
	return r.State != Succeeded && len(r.Fields) > 0 && !submit
}

type Flow struct {
	entity   string
	redirect string
	delay    time.Duration

	mu     sync.Mutex
	state  State
	fields validate.Errors
}

// New starts a flow in Editing. On success the caller is sent to redirect
// after delay.
func New(entity, redirect string, delay time.Duration) *Flow {
	return &Flow{entity: entity, redirect: redirect, delay: delay, state: Editing}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Fields returns the errors from the last failed submission.
func (f *Flow) Fields() validate.Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := validate.Errors{}
	for k, v := range f.fields {
		out[k] = v
	}
	return out
}

func (f *Flow) move(ctx context.Context, to State) {
	f.mu.Lock()
	from := f.state
	f.state = to
	f.mu.Unlock()
	logger.Debugf(ctx, "form: %s %s -> %s", f.entity, from, to)
}

// Submit runs check and, only if it passes, write. A check failure never
// reaches write. A write failure is reported under the submit pseudo-field
// with the error's message.
func (f *Flow) Submit(ctx context.Context, check func() error, write func(context.Context) error) Result {
	f.mu.Lock()
	switch f.state {
	case Succeeded:
		f.mu.Unlock()
		return Result{State: Succeeded, Redirect: f.redirect, RedirectAfter: f.delay, Err: ErrSubmitted}
	case Validating, Submitting:
		state := f.state
		f.mu.Unlock()
		return Result{State: state, Err: ErrInProgress}
	}
	f.fields = nil
	f.mu.Unlock()

	f.move(ctx, Validating)
	if err := check(); err != nil {
		var fields validate.Errors
		if !errors.As(err, &fields) {
			fields = validate.Errors{validate.Submit: err.Error()}
		}
		return f.fail(ctx, fields, err)
	}

	f.move(ctx, Submitting)
	if err := write(ctx); err != nil {
		var fields validate.Errors
		if !errors.As(err, &fields) {
			fields = validate.Errors{validate.Submit: err.Error()}
		}
		return f.fail(ctx, fields, err)
	}

	f.move(ctx, Succeeded)
	monitoring.ObserveForm(f.entity, Succeeded.String())
	return Result{State: Succeeded, Redirect: f.redirect, RedirectAfter: f.delay}
}

func (f *Flow) fail(ctx context.Context, fields validate.Errors, err error) Result {
	f.move(ctx, Failed)
	monitoring.ObserveForm(f.entity, Failed.String())

	f.mu.Lock()
	f.fields = fields
	f.state = Editing
	f.mu.Unlock()

	return Result{State: Failed, Fields: fields, Err: err}
}
