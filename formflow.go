// Package formflow ties the blueprint, rendering, and submission layers
// together behind a couple of convenience constructors. Most applications only
// need New plus the pkg/orchestrator Request type; the sub-packages stay
// importable for callers that want finer control.
package formflow

import (
	internalloader "github.com/goliatone/go-formflow/internal/blueprint/loader"
	"github.com/goliatone/go-formflow/pkg/blueprint"
	"github.com/goliatone/go-formflow/pkg/orchestrator"
)

// NewLoader constructs a blueprint loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...blueprint.LoaderOption) blueprint.Loader {
	cfg := blueprint.NewLoaderOptions(options...)
	return internalloader.New(cfg)
}

// New constructs an orchestrator with the default loader and the vanilla HTML
// renderer registered.
func New(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Parse parses a blueprint document from raw JSON or YAML bytes.
func Parse(raw []byte) (blueprint.Blueprint, error) {
	return blueprint.Parse(raw)
}
