// Package orchestrator coordinates the full pipeline from blueprint document
// to rendered output or a mounted interactive form. It applies sensible
// defaults while remaining open to dependency injection.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	internalloader "github.com/goliatone/go-formflow/internal/blueprint/loader"
	"github.com/goliatone/go-formflow/pkg/blueprint"
	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/vanilla"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom blueprint loader.
func WithLoader(loader blueprint.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithLoaderOptions configures the built-in loader (ignored when WithLoader
// supplies a custom one).
func WithLoaderOptions(options ...blueprint.LoaderOption) Option {
	return func(o *Orchestrator) {
		o.loaderOptions = append(o.loaderOptions, options...)
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSubmitter injects the transport used by controllers minted via Session.
func WithSubmitter(submitter form.Submitter) Option {
	return func(o *Orchestrator) {
		o.submitter = submitter
	}
}

// WithObserver attaches a submit observer to controllers minted via Session.
func WithObserver(observer form.Observer) Option {
	return func(o *Orchestrator) {
		o.observer = observer
	}
}

// WithThemeSelector passes a go-theme selector so theme/variant choices are
// resolved ahead of rendering. defaultTheme/defaultVariant apply when a
// request does not pin them.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.defaultTheme = defaultTheme
		o.defaultVariant = defaultVariant
	}
}

// Orchestrator wires the loader, parser, renderer registry, and controller
// factory behind one constructor call.
type Orchestrator struct {
	loader          blueprint.Loader
	loaderOptions   []blueprint.LoaderOption
	registry        *render.Registry
	defaultRenderer string
	submitter       form.Submitter
	observer        form.Observer
	themeSelector   theme.ThemeSelector
	defaultTheme    string
	defaultVariant  string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a form from a blueprint.
type Request struct {
	// Source identifies where the blueprint lives. Optional when Document is
	// supplied.
	Source blueprint.Source

	// Document allows callers to bypass the loader when they already have a
	// fetched payload.
	Document *blueprint.Document

	// Renderer names the renderer to use. Empty falls back to the configured
	// default renderer.
	Renderer string

	// RenderOptions carries per-request instructions such as prefilled
	// values or server-side errors. An empty Endpoint is derived from URL
	// sources.
	RenderOptions render.RenderOptions

	// ThemeName / ThemeVariant pin a theme selection for this request.
	ThemeName    string
	ThemeVariant string
}

// Generate executes the loader → parser → renderer sequence and returns the
// rendered bytes (HTML for the default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	bp, err := blueprint.ParseDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse blueprint: %w", err)
	}

	opts := req.RenderOptions
	if opts.Endpoint == "" {
		opts.Endpoint = endpointFromDocument(doc)
	}
	if opts.Theme == nil {
		themeConfig, err := o.resolveTheme(req)
		if err != nil {
			return nil, err
		}
		opts.Theme = themeConfig
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, bp, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Session loads and parses the blueprint, then mounts a form controller whose
// submission endpoint defaults to the blueprint's own URL.
func (o *Orchestrator) Session(ctx context.Context, src blueprint.Source, endpoint string) (*form.Controller, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	doc, err := o.resolveDocument(ctx, Request{Source: src})
	if err != nil {
		return nil, err
	}

	bp, err := blueprint.ParseDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse blueprint: %w", err)
	}

	if endpoint == "" {
		endpoint = endpointFromDocument(doc)
	}
	if endpoint == "" {
		return nil, errors.New("orchestrator: submission endpoint is required for non-URL sources")
	}

	var controllerOptions []form.Option
	if o.submitter != nil {
		controllerOptions = append(controllerOptions, form.WithSubmitter(o.submitter))
	}
	if o.observer != nil {
		controllerOptions = append(controllerOptions, form.WithObserver(o.observer))
	}
	return form.NewController(bp, endpoint, controllerOptions...), nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (blueprint.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return blueprint.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return blueprint.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) resolveTheme(req Request) (*render.ThemeConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}

	name := req.ThemeName
	if name == "" {
		name = o.defaultTheme
	}
	variant := req.ThemeVariant
	if variant == "" {
		variant = o.defaultVariant
	}
	if name == "" {
		return nil, nil
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, nil
	}

	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variantSpec, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variantSpec.Tokens {
			tokens[key] = value
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &render.ThemeConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
		Tokens:  tokens,
		CSSVars: cssVars,
	}, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalloader.New(blueprint.NewLoaderOptions(o.loaderOptions...))
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

func endpointFromDocument(doc blueprint.Document) string {
	if src := doc.Source(); src != nil && src.Kind() == blueprint.SourceKindURL {
		return src.Location()
	}
	return ""
}
