package blueprint

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ErrConfiguration marks blueprint authoring mistakes (malformed regular
// expressions, unknown kinds, missing state keys). These surface at parse
// time rather than during validation so schema bugs fail loudly.
var ErrConfiguration = errors.New("blueprint: invalid configuration")

// Parse decodes a blueprint document from JSON or YAML, validates its
// structure, and compiles every pattern rule. The returned Blueprint is safe
// to share; callers must treat it as read-only.
func Parse(raw []byte) (Blueprint, error) {
	bp, err := Decode(raw)
	if err != nil {
		return Blueprint{}, err
	}
	if err := compile(&bp); err != nil {
		return Blueprint{}, err
	}
	return bp, nil
}

// Decode unmarshals a document without running the structural checks or
// compiling pattern rules. Lint-style tooling uses it to inspect documents
// that Parse rejects; everything else should go through Parse.
func Decode(raw []byte) (Blueprint, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Blueprint{}, errors.New("blueprint: document is empty")
	}

	data := trimmed
	if !json.Valid(trimmed) {
		converted, err := yamlToJSON(trimmed)
		if err != nil {
			return Blueprint{}, fmt.Errorf("blueprint: decode document: %w", err)
		}
		data = converted
	}

	var bp Blueprint
	if err := json.Unmarshal(data, &bp); err != nil {
		return Blueprint{}, fmt.Errorf("blueprint: decode document: %w", err)
	}
	return bp, nil
}

// MustParse panics when the document cannot be parsed. Useful for fixtures.
func MustParse(raw []byte) Blueprint {
	bp, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return bp
}

// ParseDocument decodes the payload carried by a loaded Document.
func ParseDocument(doc Document) (Blueprint, error) {
	return Parse(doc.Raw())
}

func compile(bp *Blueprint) error {
	for bi := range bp.Blocks {
		block := &bp.Blocks[bi]
		switch block.Kind {
		case BlockKindBlock:
			if err := compileElements(block.Elements); err != nil {
				return err
			}
		case BlockKindRow:
			for ci := range block.Columns {
				if err := compileElements(block.Columns[ci].Elements); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("%w: unknown block kind %q", ErrConfiguration, block.Kind)
		}
	}
	return nil
}

func compileElements(elements []Element) error {
	for ei := range elements {
		el := &elements[ei]
		switch el.Kind {
		case ElementKindHeading, ElementKindParagraph, ElementKindInput,
			ElementKindPassword, ElementKindCheckbox, ElementKindSubmit:
		default:
			return fmt.Errorf("%w: unknown element kind %q", ErrConfiguration, el.Kind)
		}

		if el.Stateful() && el.Name == "" {
			return fmt.Errorf("%w: %s element requires a name", ErrConfiguration, el.Kind)
		}

		for ri := range el.Validator {
			rule := &el.Validator[ri]
			if rule.Type != RuleTypePattern {
				continue
			}
			compiled, err := regexp.Compile(rule.Regexp)
			if err != nil {
				return fmt.Errorf("%w: compile pattern %q for field %q: %v",
					ErrConfiguration, rule.Regexp, el.Name, err)
			}
			rule.compiled = compiled
		}
	}
	return nil
}

func yamlToJSON(raw []byte) ([]byte, error) {
	var decoded any
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	normalized, err := normalizeYAML(decoded)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

// normalizeYAML rewrites yaml.v3's map[string]any/map[any]any trees into
// JSON-compatible values.
func normalizeYAML(value any) (any, error) {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			converted, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			name, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("blueprint: non-string key %v", key)
			}
			converted, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[name] = converted
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			converted, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	default:
		return typed, nil
	}
}
