// Package template defines the engine seam fragment assembly renders through.
// Implementations live in subpackages; gotemplate wraps pongo2.
package template
