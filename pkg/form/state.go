package form

// State holds current field values and current per-field error messages.
// Values are strings for text fields and booleans for checkboxes; an absent
// key reads as the zero value. Mutation happens only through these methods;
// no locking because a mounted form has a single logical writer.
type State struct {
	values map[string]any
	errors map[string]string
}

// NewState creates an empty store for one mounted form.
func NewState() *State {
	return &State{
		values: make(map[string]any),
		errors: make(map[string]string),
	}
}

// SetValue replaces the value for name, leaving other entries unchanged. No
// validation runs as a side effect; validation is deferred to submission.
func (s *State) SetValue(name string, value any) {
	if name == "" {
		return
	}
	s.values[name] = value
}

// Value returns the raw value for name and whether it was ever set.
func (s *State) Value(name string) (any, bool) {
	value, ok := s.values[name]
	return value, ok
}

// StringValue returns the text value for name, defaulting to "".
func (s *State) StringValue(name string) string {
	if value, ok := s.values[name].(string); ok {
		return value
	}
	return ""
}

// BoolValue returns the boolean value for name, defaulting to false.
func (s *State) BoolValue(name string) bool {
	if value, ok := s.values[name].(bool); ok {
		return value
	}
	return false
}

// Values returns a copy of the current value mapping, suitable for use as a
// submission payload.
func (s *State) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for name, value := range s.values {
		out[name] = value
	}
	return out
}

// SetErrors replaces the error mapping wholesale. Stale errors from a
// previous submit attempt are discarded, never merged.
func (s *State) SetErrors(errs map[string]string) {
	next := make(map[string]string, len(errs))
	for name, message := range errs {
		next[name] = message
	}
	s.errors = next
}

// Errors returns a copy of the current error mapping.
func (s *State) Errors() map[string]string {
	out := make(map[string]string, len(s.errors))
	for name, message := range s.errors {
		out[name] = message
	}
	return out
}

// ErrorFor returns the message for name; absence means the field currently
// has no error.
func (s *State) ErrorFor(name string) (string, bool) {
	message, ok := s.errors[name]
	return message, ok
}

// Clear empties values and errors atomically. Used after a successful
// submission.
func (s *State) Clear() {
	s.values = make(map[string]any)
	s.errors = make(map[string]string)
}
