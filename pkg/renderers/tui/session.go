package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-formflow/pkg/blueprint"
	"github.com/goliatone/go-formflow/pkg/form"
)

const defaultMaxAttempts = 3

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithMaxAttempts bounds how many validation-failed rounds the session allows
// before giving up.
func WithMaxAttempts(attempts int) Option {
	return func(s *Session) {
		if attempts > 0 {
			s.maxAttempts = attempts
		}
	}
}

// Session walks a mounted form interactively: every stateful element becomes
// a prompt, answers flow into the controller as field-change events, and the
// submit element triggers the submission pipeline. On validation failure only
// the offending fields are re-prompted.
type Session struct {
	driver      PromptDriver
	maxAttempts int
}

// NewSession constructs a Session with the survey driver by default.
func NewSession(options ...Option) *Session {
	s := &Session{
		driver:      newSurveyDriver(),
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Run executes one interactive pass over the controller's form and returns
// the final submission result. ErrAborted surfaces when the user interrupts;
// ErrTooManyAttempts when validation keeps failing.
func (s *Session) Run(ctx context.Context, ctrl *form.Controller) (form.Result, error) {
	if ctrl == nil {
		return form.Result{}, errors.New("tui: controller is required")
	}

	if err := s.promptAll(ctx, ctrl); err != nil {
		return form.Result{}, err
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		result, err := ctrl.Submit(ctx)
		if err != nil {
			return form.Result{}, err
		}

		switch result.Status {
		case form.StatusSubmitted:
			if err := s.driver.Info(ctx, "Form submitted."); err != nil {
				return result, err
			}
			return result, nil
		case form.StatusSubmissionFailed:
			if err := s.driver.Info(ctx, "Submission failed; your input was kept."); err != nil {
				return result, err
			}
			return result, nil
		case form.StatusValidationFailed:
			if err := s.reportErrors(ctx, result.Errors); err != nil {
				return result, err
			}
			if err := s.promptFailed(ctx, ctrl, result.Errors); err != nil {
				return result, err
			}
		}
	}
	return form.Result{}, ErrTooManyAttempts
}

func (s *Session) promptAll(ctx context.Context, ctrl *form.Controller) error {
	for _, d := range ctrl.Descriptors() {
		if err := s.promptOne(ctx, ctrl, d); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptFailed(ctx context.Context, ctrl *form.Controller, errs map[string]string) error {
	for _, d := range ctrl.Descriptors() {
		if d.Name == "" {
			continue
		}
		if _, failed := errs[d.Name]; !failed {
			continue
		}
		if err := s.promptOne(ctx, ctrl, d); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptOne(ctx context.Context, ctrl *form.Controller, d form.Descriptor) error {
	switch d.Kind {
	case blueprint.ElementKindHeading:
		return s.driver.Info(ctx, "== "+d.Text+" ==")
	case blueprint.ElementKindParagraph:
		return s.driver.Info(ctx, d.Text)
	case blueprint.ElementKindInput:
		value, err := s.driver.Input(ctx, InputConfig{
			Message: promptMessage(d),
			Default: stringValue(d.Value),
			Help:    d.Error,
		})
		if err != nil {
			return err
		}
		ctrl.SetValue(d.Name, value)
	case blueprint.ElementKindPassword:
		value, err := s.driver.Password(ctx, InputConfig{
			Message: promptMessage(d),
			Help:    d.Error,
		})
		if err != nil {
			return err
		}
		ctrl.SetValue(d.Name, value)
	case blueprint.ElementKindCheckbox:
		value, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: promptMessage(d),
			Default: boolValue(d.Value),
			Help:    d.Error,
		})
		if err != nil {
			return err
		}
		ctrl.SetValue(d.Name, value)
	case blueprint.ElementKindSubmit:
		// The submit trigger is driven by Run after all prompts complete.
	}
	return nil
}

func (s *Session) reportErrors(ctx context.Context, errs map[string]string) error {
	for _, d := range orderedMessages(errs) {
		if err := s.driver.Info(ctx, "! "+d); err != nil {
			return err
		}
	}
	return nil
}

func orderedMessages(errs map[string]string) []string {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, errs[name])
	}
	return out
}

func promptMessage(d form.Descriptor) string {
	label := d.Label
	if label == "" {
		label = d.Name
	}
	if d.Required {
		return fmt.Sprintf("%s (required)", label)
	}
	return label
}

func stringValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func boolValue(value any) bool {
	if b, ok := value.(bool); ok {
		return b
	}
	return false
}
