// Package openapi imports form definitions from OpenAPI 3 documents. Every
// operation with a request body becomes one formdef.Definition whose fields
// mirror the body's object properties.
package openapi
