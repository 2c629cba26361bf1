package form

import (
	"github.com/goliatone/go-formflow/pkg/blueprint"
	"github.com/goliatone/go-formflow/pkg/validate"
)

// Evaluate runs the validation traversal against the current state and
// returns the full error mapping for this attempt. Only elements reachable
// through blueprint.Fields participate; block-kind containers are rendered
// but never validated. The walk is read-only and idempotent: calling it twice
// with unchanged state yields identical results.
//
// For each visited element the validator rules run first; when the element is
// also required and its value is empty (or false for checkboxes), the
// required message overwrites any rule failure.
func Evaluate(bp blueprint.Blueprint, state *State) map[string]string {
	errs := make(map[string]string)
	for _, el := range bp.Fields() {
		if el.Boolean() {
			if el.Required && !state.BoolValue(el.Name) {
				errs[el.Name] = validate.RequiredMessage(el)
			}
			continue
		}

		value := state.StringValue(el.Name)
		if len(el.Validator) > 0 {
			if message, ok := validate.Field(el, value); !ok {
				errs[el.Name] = message
			}
		}
		if el.Required && value == "" {
			errs[el.Name] = validate.RequiredMessage(el)
		}
	}
	return errs
}
