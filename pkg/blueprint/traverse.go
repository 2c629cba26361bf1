package blueprint

// Fields returns, in document order, the stateful elements that participate
// in validation and submission: row blocks' columns are walked in order, then
// elements within each column. Elements inside block-kind containers are
// rendered but never validated or submitted; that asymmetry is part of the
// documented contract (see Blueprint.Elements for the render-side walk).
func (b Blueprint) Fields() []Element {
	var out []Element
	for _, block := range b.Blocks {
		if block.Kind != BlockKindRow {
			continue
		}
		for _, column := range block.Columns {
			for _, el := range column.Elements {
				if el.Stateful() {
					out = append(out, el)
				}
			}
		}
	}
	return out
}

// Elements returns every renderable element in document order, walking both
// block-kind and row-kind containers. Renderers use this walk; the
// validation/submission pipeline uses Fields.
func (b Blueprint) Elements() []Element {
	var out []Element
	for _, block := range b.Blocks {
		switch block.Kind {
		case BlockKindBlock:
			out = append(out, block.Elements...)
		case BlockKindRow:
			for _, column := range block.Columns {
				out = append(out, column.Elements...)
			}
		}
	}
	return out
}

// Field looks up a stateful element by its state key. Only elements reachable
// through the validation traversal are considered.
func (b Blueprint) Field(name string) (Element, bool) {
	for _, el := range b.Fields() {
		if el.Name == name {
			return el, true
		}
	}
	return Element{}, false
}
