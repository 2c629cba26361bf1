package blueprint

import "regexp"

// BlockKind discriminates the two top-level container variants.
type BlockKind string

const (
	// BlockKindBlock is a flat element list. Its elements are rendered but do
	// not participate in validation or submission (see Blueprint.Fields).
	BlockKindBlock BlockKind = "block"
	// BlockKindRow lays elements out in weighted columns.
	BlockKindRow BlockKind = "row"
)

// ElementKind discriminates the renderable element variants.
type ElementKind string

const (
	ElementKindHeading   ElementKind = "heading"
	ElementKindParagraph ElementKind = "paragraph"
	ElementKindInput     ElementKind = "input"
	ElementKindPassword  ElementKind = "password"
	ElementKindCheckbox  ElementKind = "checkbox"
	ElementKindSubmit    ElementKind = "submit"
)

// Rule type and operator discriminators. Rule types outside this set are
// preserved during parsing and skipped by the validator so newer schema
// authors do not break older engines.
const (
	RuleTypeLength  = "length"
	RuleTypePattern = "pattern"

	OperatorGT  = "gt"
	OperatorGTE = "gte"
)

// Rule is a single validation constraint attached to an element. Length rules
// bound the value's character count via Operator/Value; pattern rules carry a
// regular expression that is compiled when the blueprint is parsed.
type Rule struct {
	Type     string `json:"type"`
	Operator string `json:"operator,omitempty"`
	Value    int    `json:"value,omitempty"`
	Regexp   string `json:"regexp,omitempty"`

	compiled *regexp.Regexp
}

// Pattern returns the compiled expression for pattern rules, nil otherwise.
func (r Rule) Pattern() *regexp.Regexp {
	return r.compiled
}

// Element is a single renderable unit. Heading and paragraph elements carry
// display text only; input, password, and checkbox elements own a slot in the
// form state keyed by Name; submit elements trigger the submission pipeline.
type Element struct {
	Kind      ElementKind `json:"kind"`
	Text      string      `json:"text,omitempty"`
	Name      string      `json:"name,omitempty"`
	Label     string      `json:"label,omitempty"`
	Required  bool        `json:"required,omitempty"`
	Validator []Rule      `json:"validator,omitempty"`
}

// Stateful reports whether the element owns a value in the form state.
func (e Element) Stateful() bool {
	switch e.Kind {
	case ElementKindInput, ElementKindPassword, ElementKindCheckbox:
		return true
	default:
		return false
	}
}

// Boolean reports whether the element's value is a boolean rather than text.
func (e Element) Boolean() bool {
	return e.Kind == ElementKindCheckbox
}

// DisplayLabel returns the label shown to users, falling back to the state
// key or display text when no label was authored.
func (e Element) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	if e.Name != "" {
		return e.Name
	}
	return e.Text
}

// Column is a weighted cell inside a row block. Size is a relative flex
// weight; renderers decide how to translate it into actual widths.
type Column struct {
	Size     int       `json:"size"`
	Elements []Element `json:"elements"`
}

// Block is a top-level grouping unit: either a flat element list
// (kind "block") or a column grid (kind "row").
type Block struct {
	Kind     BlockKind `json:"kind"`
	Elements []Element `json:"elements,omitempty"`
	Columns  []Column  `json:"columns,omitempty"`
}

// Blueprint is the root document describing a form.
type Blueprint struct {
	Blocks []Block `json:"blueprint"`
}
