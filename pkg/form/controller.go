package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-formflow/pkg/blueprint"
	"github.com/goliatone/go-formflow/pkg/submit"
)

// Status reports the outcome of one submit attempt. Validation failures are
// data, not errors; only a second submit racing an in-flight one surfaces as
// a Go error from Submit.
type Status string

const (
	// StatusSubmitted means the POST succeeded and the state was cleared.
	StatusSubmitted Status = "submitted"
	// StatusValidationFailed means one or more fields violated their rules;
	// no network call happened and values were preserved.
	StatusValidationFailed Status = "validation_failed"
	// StatusSubmissionFailed means the POST was rejected or unreachable;
	// values and errors were left untouched so no user input is lost.
	StatusSubmissionFailed Status = "submission_failed"
)

// Result is the pipeline's outcome signal for the presentation layer.
type Result struct {
	Status Status
	// Errors carries the per-field messages for StatusValidationFailed.
	Errors map[string]string
	// Err carries the transport failure for StatusSubmissionFailed. Server
	// rejections (non-2xx) and network errors deliberately collapse into this
	// one signal.
	Err error
}

// ErrSubmitInFlight rejects a submit triggered while a previous attempt's
// network call is still pending. Exactly one POST may be outstanding per
// controller.
var ErrSubmitInFlight = errors.New("form: submit already in flight")

// Submitter dispatches a validated payload to its endpoint. submit.Client is
// the default implementation.
type Submitter interface {
	Submit(ctx context.Context, endpoint string, payload map[string]any) error
}

// Observer receives the outcome of each submit attempt. Metrics integrations
// implement this; the zero configuration observes nothing.
type Observer interface {
	ObserveSubmit(status Status, elapsed time.Duration)
}

// Option customises a Controller.
type Option func(*Controller)

// WithSubmitter injects a custom transport, replacing the default
// submit.Client.
func WithSubmitter(submitter Submitter) Option {
	return func(c *Controller) {
		if submitter != nil {
			c.submitter = submitter
		}
	}
}

// WithObserver attaches an outcome observer.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		c.observer = observer
	}
}

// WithState seeds the controller with an existing state store.
func WithState(state *State) Option {
	return func(c *Controller) {
		if state != nil {
			c.state = state
		}
	}
}

// Controller serializes field-change events and submit attempts for one
// mounted form. The blueprint is held read-only for the controller's
// lifetime; the state store is owned exclusively by the controller.
type Controller struct {
	mu         sync.Mutex
	submitting bool

	bp        blueprint.Blueprint
	endpoint  string
	state     *State
	submitter Submitter
	observer  Observer
}

// NewController mounts a form instance for the given blueprint. The endpoint
// is where validated payloads are POSTed, typically the same URL the
// blueprint was fetched from.
func NewController(bp blueprint.Blueprint, endpoint string, options ...Option) *Controller {
	c := &Controller{
		bp:       bp,
		endpoint: endpoint,
		state:    NewState(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.submitter == nil {
		c.submitter = submit.NewClient()
	}
	return c
}

// Blueprint returns the mounted blueprint.
func (c *Controller) Blueprint() blueprint.Blueprint {
	return c.bp
}

// Endpoint returns the configured submission target.
func (c *Controller) Endpoint() string {
	return c.endpoint
}

// State exposes the form's state store. External writers must go through
// SetValue; the store is returned for read access by renderers.
func (c *Controller) State() *State {
	return c.state
}

// SetValue records a field-change event from the interaction surface.
func (c *Controller) SetValue(name string, value any) {
	c.state.SetValue(name, value)
}

// Descriptors projects the current render state for the presentation layer.
func (c *Controller) Descriptors() []Descriptor {
	return Descriptors(c.bp, c.state)
}

// Submit runs one pass of the submission pipeline: validate, and either
// publish field errors or POST the payload. Exactly one attempt per call, no
// retries. A call while a previous attempt is pending returns
// ErrSubmitInFlight without touching any state.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return Result{}, ErrSubmitInFlight
	}
	c.submitting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	start := time.Now()
	result, err := c.submit(ctx)
	if err == nil && c.observer != nil {
		c.observer.ObserveSubmit(result.Status, time.Since(start))
	}
	return result, err
}

func (c *Controller) submit(ctx context.Context) (Result, error) {
	if c.endpoint == "" {
		return Result{}, errors.New("form: endpoint is required")
	}

	errs := Evaluate(c.bp, c.state)
	c.state.SetErrors(errs)
	if len(errs) > 0 {
		return Result{Status: StatusValidationFailed, Errors: errs}, nil
	}

	if err := c.submitter.Submit(ctx, c.endpoint, c.state.Values()); err != nil {
		return Result{
			Status: StatusSubmissionFailed,
			Err:    fmt.Errorf("form: submit payload: %w", err),
		}, nil
	}

	c.state.Clear()
	return Result{Status: StatusSubmitted}, nil
}
