// Package vanilla renders a blueprint into dependency-free HTML using the
// embedded template bundle. Display text authored in blueprints is sanitized
// before it reaches the template so schema documents cannot inject script.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formflow/pkg/blueprint"
	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/render"
	rendertemplate "github.com/goliatone/go-formflow/pkg/render/template"
	gotemplate "github.com/goliatone/go-formflow/pkg/render/template/gotemplate"
)

// Option customises the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer emits static HTML for a blueprint.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render projects the blueprint through form.Descriptors, seeding values and
// errors from the request options, and executes the form template.
func (r *Renderer) Render(ctx context.Context, bp blueprint.Blueprint, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	state := form.NewState()
	for name, value := range options.Values {
		state.SetValue(name, value)
	}
	state.SetErrors(options.Errors)

	descriptors := form.Descriptors(bp, state)
	for i := range descriptors {
		descriptors[i].Text = sanitizeDisplayText(descriptors[i].Text)
	}

	data := map[string]any{
		"endpoint":    options.Endpoint,
		"descriptors": descriptors,
	}
	if options.Theme != nil {
		data["css_vars"] = options.Theme.CSSVars
		data["theme"] = options.Theme.Theme
		data["variant"] = options.Theme.Variant
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
