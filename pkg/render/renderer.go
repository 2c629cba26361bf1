// Package render defines the boundary between the form engine and concrete
// presentation layers. Renderers receive a parsed blueprint plus per-request
// state and produce bytes; the engine never dictates pixel styling.
package render

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/blueprint"
)

// Renderer converts a blueprint into a byte representation (HTML, terminal
// transcript, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, bp blueprint.Blueprint, options RenderOptions) ([]byte, error)
}
