// Package template declares the engine seam HTML renderers rely on, so
// template engines can be swapped without touching renderer logic.
package template

import "io"

// TemplateRenderer renders named templates against arbitrary data.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
