// Package form owns the live state of a mounted form: current field values,
// current per-field error messages, and the controller that serializes
// field-change events and submit attempts for one form instance. State is
// never process-global; construct one Controller per mounted form so multiple
// forms can coexist (for example, in tests).
package form
