// Package lookup searches named option lists and serves the matches as JSON
// for autocomplete inputs and datalists.
//
// The handler answers GET and HEAD requests. The q parameter filters by a
// case-insensitive substring of the label or value, with prefix matches
// ranked first, and limit caps the result count.
package lookup
