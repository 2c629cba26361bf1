package render

// ThemeConfig carries resolved go-theme data renderers can apply: token
// values and the derived CSS custom properties. Nil means unthemed output.
type ThemeConfig struct {
	Theme   string
	Variant string
	Tokens  map[string]string
	CSSVars map[string]string
}

// RenderOptions describe per-request data that renderers use to customise
// output without mutating the blueprint.
type RenderOptions struct {
	// Endpoint is the submission target the rendered form should POST to,
	// typically the URL the blueprint was fetched from.
	Endpoint string

	// Values pre-populates rendered controls keyed by field name (strings for
	// text fields, booleans for checkboxes).
	Values map[string]any

	// Errors surfaces validation feedback keyed by field name, one message
	// per field.
	Errors map[string]string

	// Theme carries resolved theme tokens when the orchestrator was
	// configured with a theme selector.
	Theme *ThemeConfig
}
