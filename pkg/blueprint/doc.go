// Package blueprint defines the typed representation of a form blueprint
// document: ordered blocks of rows and columns holding renderable elements,
// plus the per-field validation rules attached to them. Blueprints are parsed
// once, validated eagerly (including regular-expression compilation), and are
// immutable afterwards.
package blueprint
