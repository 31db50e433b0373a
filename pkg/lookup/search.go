package lookup

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formhtml/pkg/options"
)

// Search filters list by query. Source order is kept within the prefix and
// substring groups.
func Search(list []options.Option, query string, limit int, opts Options) []options.Option {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode != EmptySearchTop {
			return nil
		}
		if len(list) > limit {
			list = list[:limit]
		}
		return append([]options.Option{}, list...)
	}

	q := strings.ToLower(query)
	matches := make([]match, 0, 16)
	for _, opt := range list {
		label := strings.ToLower(opt.Label)
		value := strings.ToLower(opt.Value)
		if !strings.Contains(label, q) && !strings.Contains(value, q) {
			continue
		}
		matches = append(matches, match{
			option:   opt,
			isPrefix: strings.HasPrefix(label, q) || strings.HasPrefix(value, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]options.Option, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.option)
	}
	return out
}

type match struct {
	option   options.Option
	isPrefix bool
}
