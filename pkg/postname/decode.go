package postname

import (
	"net/url"
	"slices"
)

// Decode groups submitted values by post-array prefix. Each prefix maps to a
// nested tree keyed by segment; list segments ([]) collect every submitted
// value in order. Keys that are not post names are grouped under "".
//
// A segment submitted both as a leaf and as a branch (X[a] and X[a][b]) keeps
// both: the branch map holds the leaf value under the "" key.
func Decode(values url.Values) map[string]map[string]any {
	out := make(map[string]map[string]any)
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		submitted := values[key]
		prefix, segments, err := Parse(key)
		if err != nil {
			prefix, segments = "", []string{key}
		}
		group, ok := out[prefix]
		if !ok {
			group = make(map[string]any)
			out[prefix] = group
		}
		insert(group, segments, submitted)
	}
	return out
}

func insert(node map[string]any, segments []string, values []string) {
	head := segments[0]
	if branch, ok := node[head].(map[string]any); ok && leafSegments(segments) {
		insert(branch, append([]string{""}, segments[1:]...), values)
		return
	}
	if len(segments) == 1 {
		node[head] = lastValue(values)
		return
	}
	if len(segments) == 2 && segments[1] == "" {
		existing, _ := node[head].([]string)
		node[head] = append(existing, values...)
		return
	}
	child, ok := node[head].(map[string]any)
	if !ok {
		child = make(map[string]any)
		if leaf, exists := node[head]; exists {
			child[""] = leaf
		}
		node[head] = child
	}
	insert(child, segments[1:], values)
}

// leafSegments reports whether segments end at head: a scalar or a list.
func leafSegments(segments []string) bool {
	return len(segments) == 1 || (len(segments) == 2 && segments[1] == "")
}

func lastValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}
