// Package validation checks blueprint documents for authoring mistakes and
// reports them as structured issues. It is the machine-readable face of the
// parse-time configuration checks: editors and CI pipelines get field-level
// locations instead of a single opaque error string.
package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/goliatone/go-formflow/pkg/blueprint"
)

// Issue is one authoring problem with enough location metadata to highlight
// the offending element.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures a lint pass over one document.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Lint parses raw and collects every authoring problem it can find. Unlike
// blueprint.Parse, which stops at the first configuration error, Lint keeps
// walking so authors see all problems in one pass. A document that fails to
// decode at all yields a single issue.
func Lint(raw []byte) Result {
	bp, err := blueprint.Parse(raw)
	if err == nil {
		return Result{Valid: true, Issues: lintWarnings(bp)}
	}
	if !errors.Is(err, blueprint.ErrConfiguration) {
		return Result{Issues: []Issue{{Message: err.Error()}}}
	}

	// The document decodes but carries configuration errors. Re-decode
	// without compiling so the walk can enumerate every problem.
	loose, decodeErr := blueprint.Decode(raw)
	if decodeErr != nil {
		return Result{Issues: []Issue{{Message: decodeErr.Error()}}}
	}

	issues := lintStructure(loose)
	if len(issues) == 0 {
		issues = []Issue{{Message: err.Error()}}
	}
	return Result{Issues: issues}
}

func lintStructure(bp blueprint.Blueprint) []Issue {
	var issues []Issue
	for bi, block := range bp.Blocks {
		blockPath := fmt.Sprintf("/blueprint/%d", bi)
		switch block.Kind {
		case blueprint.BlockKindBlock:
			issues = append(issues, lintElements(blockPath+"/elements", block.Elements)...)
		case blueprint.BlockKindRow:
			for ci, column := range block.Columns {
				path := fmt.Sprintf("%s/columns/%d/elements", blockPath, ci)
				issues = append(issues, lintElements(path, column.Elements)...)
			}
		default:
			issues = append(issues, Issue{
				Path:    blockPath,
				Message: fmt.Sprintf("unknown block kind %q", block.Kind),
			})
		}
	}
	return issues
}

func lintElements(basePath string, elements []blueprint.Element) []Issue {
	var issues []Issue
	for ei, el := range elements {
		path := fmt.Sprintf("%s/%d", basePath, ei)

		switch el.Kind {
		case blueprint.ElementKindHeading, blueprint.ElementKindParagraph,
			blueprint.ElementKindInput, blueprint.ElementKindPassword,
			blueprint.ElementKindCheckbox, blueprint.ElementKindSubmit:
		default:
			issues = append(issues, Issue{
				Path:    path,
				Message: fmt.Sprintf("unknown element kind %q", el.Kind),
			})
			continue
		}

		if el.Stateful() && el.Name == "" {
			issues = append(issues, Issue{
				Path:    path,
				Message: fmt.Sprintf("%s element requires a name", el.Kind),
			})
		}

		for ri, rule := range el.Validator {
			if rule.Type != blueprint.RuleTypePattern {
				continue
			}
			if _, err := regexp.Compile(rule.Regexp); err != nil {
				issues = append(issues, Issue{
					Path:    fmt.Sprintf("%s/validator/%d", path, ri),
					Field:   el.Name,
					Message: fmt.Sprintf("malformed pattern %q: %v", rule.Regexp, err),
				})
			}
		}
	}
	return issues
}

// lintWarnings flags constructs that parse cleanly but usually indicate a
// mistake: stateful elements inside block-kind containers render without ever
// validating, and a form without a submit element can never be sent.
func lintWarnings(bp blueprint.Blueprint) []Issue {
	var issues []Issue

	hasSubmit := false
	for _, el := range bp.Elements() {
		if el.Kind == blueprint.ElementKindSubmit {
			hasSubmit = true
		}
	}
	if !hasSubmit && len(bp.Blocks) > 0 {
		issues = append(issues, Issue{
			Message: "document has no submit element; the form cannot be sent",
		})
	}

	for bi, block := range bp.Blocks {
		if block.Kind != blueprint.BlockKindBlock {
			continue
		}
		for ei, el := range block.Elements {
			if !el.Stateful() {
				continue
			}
			issues = append(issues, Issue{
				Path:    fmt.Sprintf("/blueprint/%d/elements/%d", bi, ei),
				Field:   el.Name,
				Message: fmt.Sprintf("field %q sits in a block container and will render but never validate or submit", el.Name),
			})
		}
	}
	return issues
}
