package form

import "github.com/goliatone/go-formflow/pkg/blueprint"

// Descriptor is the render-boundary projection of one element: everything a
// presentation layer needs to draw a widget without reaching into the
// blueprint or the state store. The engine never dictates styling.
type Descriptor struct {
	Kind       blueprint.ElementKind `json:"kind"`
	Label      string                `json:"label,omitempty"`
	Text       string                `json:"text,omitempty"`
	Name       string                `json:"name,omitempty"`
	Value      any                   `json:"value,omitempty"`
	Error      string                `json:"error,omitempty"`
	Required   bool                  `json:"required,omitempty"`
	ColumnSize int                   `json:"column_size,omitempty"`
}

// Descriptors projects every renderable element in document order, walking
// block-kind and row-kind containers alike. Stateful descriptors carry the
// current value and error for their field; display-only kinds carry text.
func Descriptors(bp blueprint.Blueprint, state *State) []Descriptor {
	var out []Descriptor
	for _, block := range bp.Blocks {
		switch block.Kind {
		case blueprint.BlockKindBlock:
			for _, el := range block.Elements {
				out = append(out, describe(el, 0, state))
			}
		case blueprint.BlockKindRow:
			for _, column := range block.Columns {
				for _, el := range column.Elements {
					out = append(out, describe(el, column.Size, state))
				}
			}
		}
	}
	return out
}

func describe(el blueprint.Element, columnSize int, state *State) Descriptor {
	d := Descriptor{
		Kind:       el.Kind,
		Label:      el.Label,
		Text:       el.Text,
		Name:       el.Name,
		Required:   el.Required,
		ColumnSize: columnSize,
	}
	if !el.Stateful() || state == nil {
		return d
	}

	if el.Boolean() {
		d.Value = state.BoolValue(el.Name)
	} else {
		d.Value = state.StringValue(el.Name)
	}
	if message, ok := state.ErrorFor(el.Name); ok {
		d.Error = message
	}
	return d
}
