// Package validate evaluates an element's declared rule set against a
// candidate value. Rules run in declaration order and the first failure wins;
// the engine never accumulates multiple messages for one field.
package validate

import (
	"fmt"
	"unicode/utf8"

	"github.com/goliatone/go-formflow/pkg/blueprint"
)

// Field evaluates the element's validator rules against value and returns the
// first failure message. ok is true when every rule passes. Boolean fields
// never travel through this path; their only constraint is the required flag.
//
// Rule types outside the known set are skipped so older engines tolerate
// newer blueprints. Pure function: no side effects, no state.
func Field(element blueprint.Element, value string) (message string, ok bool) {
	label := element.DisplayLabel()

	for _, rule := range element.Validator {
		switch rule.Type {
		case blueprint.RuleTypeLength:
			if msg, failed := checkLength(label, rule, value); failed {
				return msg, false
			}
		case blueprint.RuleTypePattern:
			if pattern := rule.Pattern(); pattern != nil && !pattern.MatchString(value) {
				return fmt.Sprintf("Invalid format for %s field", label), false
			}
		}
	}
	return "", true
}

// RequiredMessage is the message recorded when a required field is empty. The
// required check runs after the validator sweep and overwrites any rule
// failure for the same field.
func RequiredMessage(element blueprint.Element) string {
	return fmt.Sprintf("%s is required", element.DisplayLabel())
}

func checkLength(label string, rule blueprint.Rule, value string) (string, bool) {
	length := utf8.RuneCountInString(value)
	switch rule.Operator {
	case blueprint.OperatorGT:
		if length <= rule.Value {
			return fmt.Sprintf("%s field must be longer than %d characters", label, rule.Value), true
		}
	case blueprint.OperatorGTE:
		if length < rule.Value {
			return fmt.Sprintf("%s field must be at least %d characters long", label, rule.Value), true
		}
	}
	return "", false
}
