package blueprint_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/blueprint"
)

// mixedDocument places a stateful element inside a block-kind container to
// pin the traversal contract: the element renders but never validates.
const mixedDocument = `{
  "blueprint": [
    {
      "kind": "block",
      "elements": [
        {"kind": "heading", "text": "Profile"},
        {"kind": "input", "name": "nickname", "label": "Nickname", "required": true}
      ]
    },
    {
      "kind": "row",
      "columns": [
        {"size": 1, "elements": [
          {"kind": "input", "name": "email", "label": "Email"},
          {"kind": "paragraph", "text": "We never share this."}
        ]},
        {"size": 1, "elements": [
          {"kind": "checkbox", "name": "updates", "label": "Get updates"}
        ]}
      ]
    }
  ]
}`

func TestFieldsSkipsBlockContainers(t *testing.T) {
	bp := blueprint.MustParse([]byte(mixedDocument))

	var names []string
	for _, field := range bp.Fields() {
		names = append(names, field.Name)
	}

	// nickname lives in a block-kind container and must not appear.
	want := []string{"email", "updates"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldsSkipsDisplayElements(t *testing.T) {
	bp := blueprint.MustParse([]byte(mixedDocument))
	for _, field := range bp.Fields() {
		if !field.Stateful() {
			t.Errorf("non-stateful element %q in validation traversal", field.Kind)
		}
	}
}

func TestElementsWalksAllContainers(t *testing.T) {
	bp := blueprint.MustParse([]byte(mixedDocument))

	elements := bp.Elements()
	if got, want := len(elements), 5; got != want {
		t.Fatalf("elements = %d, want %d", got, want)
	}
	if got, want := elements[0].Kind, blueprint.ElementKindHeading; got != want {
		t.Errorf("first element kind = %q, want %q", got, want)
	}
	if got, want := elements[1].Name, "nickname"; got != want {
		t.Errorf("block container element missing from render walk: got %q, want %q", got, want)
	}
}

func TestFieldLookup(t *testing.T) {
	bp := blueprint.MustParse([]byte(mixedDocument))

	if field, ok := bp.Field("email"); !ok || field.Label != "Email" {
		t.Errorf("Field(email) = %+v, %v", field, ok)
	}
	// Lookup follows the validation traversal, so block-contained elements
	// are invisible to it.
	if _, ok := bp.Field("nickname"); ok {
		t.Error("Field(nickname) found an element outside the validation traversal")
	}
	if _, ok := bp.Field("missing"); ok {
		t.Error("Field(missing) reported a hit")
	}
}

func TestDisplayLabelFallbacks(t *testing.T) {
	cases := []struct {
		name    string
		element blueprint.Element
		want    string
	}{
		{"label wins", blueprint.Element{Label: "Email", Name: "email"}, "Email"},
		{"name fallback", blueprint.Element{Name: "email"}, "email"},
		{"text fallback", blueprint.Element{Text: "Welcome"}, "Welcome"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.element.DisplayLabel(); got != tc.want {
				t.Errorf("DisplayLabel() = %q, want %q", got, tc.want)
			}
		})
	}
}
