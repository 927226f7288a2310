package transform

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

const stringPreviewLimit = 50

// SummarizeJSON renders a structural outline of a JSON document: a tree of
// objects, arrays, and values, followed by aggregate statistics. Large
// documents summarize to output proportional to their structure, not their
// string payloads.
func SummarizeJSON(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", errors.New("empty JSON input")
	}
	// gjson tolerates malformed documents; validate strictly first so the
	// error carries the parser's diagnostic.
	var probe any
	if err := json.Unmarshal([]byte(trimmed), &probe); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	root := gjson.Parse(trimmed)

	var sb strings.Builder
	sb.WriteString("JSON Structure Summary:\n")
	sb.WriteString("======================\n\n")
	writeSummary(&sb, "root", root, 0)

	stats := jsonStats{}
	collectStats(root, &stats, 0)
	sb.WriteString("\n\nStatistics:\n")
	sb.WriteString("-----------\n")
	fmt.Fprintf(&sb, "Total objects: %d\n", stats.objects)
	fmt.Fprintf(&sb, "Total arrays: %d\n", stats.arrays)
	fmt.Fprintf(&sb, "Total primitive values: %d\n", stats.primitives)
	fmt.Fprintf(&sb, "Maximum depth: %d\n", stats.maxDepth)
	fmt.Fprintf(&sb, "Total keys: %d\n", stats.totalKeys)

	return sb.String(), nil
}

func writeSummary(sb *strings.Builder, key string, v gjson.Result, depth int) {
	indent := strings.Repeat("  ", depth)

	switch {
	case v.IsObject():
		keys := 0
		v.ForEach(func(_, _ gjson.Result) bool { keys++; return true })
		if depth == 0 {
			fmt.Fprintf(sb, "%s📁 %s (Object with %d keys)\n", indent, key, keys)
		} else {
			fmt.Fprintf(sb, "%s📁 %s: Object (%d keys)\n", indent, key, keys)
		}
		v.ForEach(func(k, child gjson.Result) bool {
			writeSummary(sb, k.String(), child, depth+1)
			return true
		})

	case v.IsArray():
		items := v.Array()
		fmt.Fprintf(sb, "%s📋 %s: Array (%d items)\n", indent, key, len(items))
		if len(items) == 0 {
			return
		}

		firstType := valueTypeName(items[0])
		mixed := typeNames(items)
		if len(mixed) == 1 {
			fmt.Fprintf(sb, "%s   └─ All items are: %s\n", indent, firstType)
		} else {
			fmt.Fprintf(sb, "%s   └─ Mixed types: %s\n", indent, strings.Join(mixed, ", "))
		}

		if items[0].IsObject() {
			fmt.Fprintf(sb, "%s   └─ First item structure:\n", indent)
			writeSummary(sb, "item", items[0], depth+2)
		}

	case v.Type == gjson.String:
		s := v.String()
		fmt.Fprintf(sb, "%s📝 %s: String (%d chars) - %q\n",
			indent, key, utf8.RuneCountInString(s), stringPreview(s))

	case v.Type == gjson.Number:
		fmt.Fprintf(sb, "%s🔢 %s: Number - %s\n", indent, key, v.Raw)

	case v.Type == gjson.True || v.Type == gjson.False:
		fmt.Fprintf(sb, "%s✅ %s: Boolean - %s\n", indent, key, v.Raw)

	default:
		fmt.Fprintf(sb, "%s❌ %s: null\n", indent, key)
	}
}

func stringPreview(s string) string {
	if utf8.RuneCountInString(s) <= stringPreviewLimit {
		return s
	}
	runes := []rune(s)
	return string(runes[:stringPreviewLimit-3]) + "..."
}

// typeNames returns the distinct item type names in first-seen order, so
// the mixed-types line is deterministic.
func typeNames(items []gjson.Result) []string {
	seen := make(map[string]bool)
	names := make([]string, 0, 2)
	for _, item := range items {
		name := valueTypeName(item)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func valueTypeName(v gjson.Result) string {
	switch {
	case v.IsObject():
		return "Object"
	case v.IsArray():
		return "Array"
	case v.Type == gjson.String:
		return "String"
	case v.Type == gjson.Number:
		return "Number"
	case v.Type == gjson.True || v.Type == gjson.False:
		return "Boolean"
	default:
		return "null"
	}
}

type jsonStats struct {
	objects    int
	arrays     int
	primitives int
	maxDepth   int
	totalKeys  int
}

func collectStats(v gjson.Result, stats *jsonStats, depth int) {
	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}

	switch {
	case v.IsObject():
		stats.objects++
		v.ForEach(func(_, child gjson.Result) bool {
			stats.totalKeys++
			collectStats(child, stats, depth+1)
			return true
		})
	case v.IsArray():
		stats.arrays++
		v.ForEach(func(_, child gjson.Result) bool {
			collectStats(child, stats, depth+1)
			return true
		})
	default:
		stats.primitives++
	}
}
