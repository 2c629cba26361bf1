// Package openapi derives form blueprints from OpenAPI operations so teams
// with existing API specs can bootstrap a blueprint instead of authoring one
// by hand. Only the request-body shapes a form can represent are mapped:
// string and boolean properties become fields, everything else is skipped.
package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formflow/pkg/blueprint"
)

// FromDocument parses an OpenAPI document and converts the identified
// operation's request body into a Blueprint. The result goes through
// blueprint.Parse so pattern rules are compiled and configuration errors
// surface immediately.
func FromDocument(ctx context.Context, raw []byte, operationID string) (blueprint.Blueprint, error) {
	if len(raw) == 0 {
		return blueprint.Blueprint{}, errors.New("openapi: document payload is empty")
	}
	if operationID == "" {
		return blueprint.Blueprint{}, errors.New("openapi: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return blueprint.Blueprint{}, fmt.Errorf("openapi: load document: %w", err)
	}

	op := findOperation(spec, operationID)
	if op == nil {
		return blueprint.Blueprint{}, fmt.Errorf("openapi: operation %q not found", operationID)
	}

	schema := requestSchema(op)
	if schema == nil {
		return blueprint.Blueprint{}, fmt.Errorf("openapi: operation %q has no request body schema", operationID)
	}

	bp := buildBlueprint(op, schema)

	// Round-trip through Parse so pattern rules compile and structural
	// invariants hold exactly as they would for a hand-authored document.
	encoded, err := json.Marshal(bp)
	if err != nil {
		return blueprint.Blueprint{}, fmt.Errorf("openapi: encode blueprint: %w", err)
	}
	return blueprint.Parse(encoded)
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func buildBlueprint(op *openapi3.Operation, schema *openapi3.Schema) blueprint.Blueprint {
	var blocks []blueprint.Block

	if intro := introElements(op); len(intro) > 0 {
		blocks = append(blocks, blueprint.Block{
			Kind:     blueprint.BlockKindBlock,
			Elements: intro,
		})
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	for _, name := range sortedPropertyNames(schema) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		el, ok := elementFromProperty(name, ref.Value, required[name])
		if !ok {
			continue
		}
		blocks = append(blocks, singleColumnRow(el))
	}

	blocks = append(blocks, singleColumnRow(blueprint.Element{
		Kind:  blueprint.ElementKindSubmit,
		Name:  "submit",
		Label: submitLabel(op),
	}))

	return blueprint.Blueprint{Blocks: blocks}
}

func introElements(op *openapi3.Operation) []blueprint.Element {
	var out []blueprint.Element
	if summary := strings.TrimSpace(op.Summary); summary != "" {
		out = append(out, blueprint.Element{Kind: blueprint.ElementKindHeading, Text: summary})
	}
	if description := strings.TrimSpace(op.Description); description != "" {
		out = append(out, blueprint.Element{Kind: blueprint.ElementKindParagraph, Text: description})
	}
	return out
}

func sortedPropertyNames(schema *openapi3.Schema) []string {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func elementFromProperty(name string, prop *openapi3.Schema, required bool) (blueprint.Element, bool) {
	el := blueprint.Element{
		Name:     name,
		Label:    labelFromProperty(name, prop),
		Required: required,
	}

	switch {
	case typeIs(prop, "boolean"):
		el.Kind = blueprint.ElementKindCheckbox
	case typeIs(prop, "string"):
		el.Kind = blueprint.ElementKindInput
		if prop.Format == "password" {
			el.Kind = blueprint.ElementKindPassword
		}
		el.Validator = rulesFromProperty(prop)
	default:
		// Numbers, arrays, and objects have no blueprint field kind.
		return blueprint.Element{}, false
	}
	return el, true
}

func rulesFromProperty(prop *openapi3.Schema) []blueprint.Rule {
	var rules []blueprint.Rule
	if prop.MinLength != 0 {
		rules = append(rules, blueprint.Rule{
			Type:     blueprint.RuleTypeLength,
			Operator: blueprint.OperatorGTE,
			Value:    int(prop.MinLength),
		})
	}
	if prop.Pattern != "" {
		rules = append(rules, blueprint.Rule{
			Type:   blueprint.RuleTypePattern,
			Regexp: prop.Pattern,
		})
	}
	return rules
}

func labelFromProperty(name string, prop *openapi3.Schema) string {
	if title := strings.TrimSpace(prop.Title); title != "" {
		return title
	}
	return labelFromName(name)
}

// labelFromName turns snake_case or camelCase state keys into title-cased
// labels ("firstName" → "First Name").
func labelFromName(name string) string {
	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case r >= 'A' && r <= 'Z':
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func submitLabel(op *openapi3.Operation) string {
	if summary := strings.TrimSpace(op.Summary); summary != "" {
		return summary
	}
	return "Submit"
}

func typeIs(prop *openapi3.Schema, want string) bool {
	return prop.Type != nil && prop.Type.Is(want)
}

func singleColumnRow(el blueprint.Element) blueprint.Block {
	return blueprint.Block{
		Kind: blueprint.BlockKindRow,
		Columns: []blueprint.Column{
			{Size: 1, Elements: []blueprint.Element{el}},
		},
	}
}
