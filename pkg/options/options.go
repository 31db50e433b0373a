// Package options models the ordered option lists selects, radios and
// checkbox groups render, and loads them from database rows.
package options

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Option is a single value/label pair.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Row is a database row keyed by column name.
type Row map[string]string

// Rows is an ordered result set.
type Rows []Row

// Options maps rows onto options using the given columns. An empty
// labelField reuses the value column.
func (r Rows) Options(valueField, labelField string) []Option {
	if labelField == "" {
		labelField = valueField
	}
	out := make([]Option, 0, len(r))
	for _, row := range r {
		out = append(out, Option{Value: row[valueField], Label: row[labelField]})
	}
	return out
}

// FromValues builds options whose label equals their value.
func FromValues(values ...string) []Option {
	out := make([]Option, 0, len(values))
	for _, value := range values {
		out = append(out, Option{Value: value, Label: value})
	}
	return out
}

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Query runs query and returns every row with NULLs mapped to "".
func Query(ctx context.Context, q Querier, query string, args ...any) (Rows, error) {
	if q == nil {
		return nil, fmt.Errorf("options: querier is nil")
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("options: query is empty")
	}
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("options: query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("options: columns: %w", err)
	}

	var out Rows
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("options: scan: %w", err)
		}
		row := make(Row, len(columns))
		for i, column := range columns {
			row[column] = cells[i].String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("options: iterate: %w", err)
	}
	return out, nil
}
