package export

import (
	"regexp"
	"strconv"
	"strings"
)

// indentStep is the YAML indentation unit.
const indentStep = "  "

// bareScalarPattern matches strings that are safe to emit unquoted.
var bareScalarPattern = regexp.MustCompile(`^[\w.\-/]+$`)

// numericPattern matches decimal integer and float literals.
var numericPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// RenderYAML renders a map document as YAML text.
//
// This is not a general-purpose YAML writer: it supports exactly the shapes
// the exporter produces (nested maps, lists of maps, lists of scalars,
// scalars). Anchors, flow collections and multi-line scalars are out of
// scope and must be pre-flattened by the caller. Map fields are emitted in
// declaration order.
func RenderYAML(doc Document) string {
	var b strings.Builder
	writeMap(&b, doc, 0)
	return b.String()
}

// writeMap emits every field of a map document at the given indent level.
func writeMap(b *strings.Builder, doc Document, indent int) {
	prefix := strings.Repeat(indentStep, indent)
	for _, field := range doc.Fields {
		switch field.Value.Kind {
		case KindMap:
			if len(field.Value.Fields) == 0 {
				b.WriteString(prefix + field.Key + ": {}\n")
				continue
			}
			b.WriteString(prefix + field.Key + ":\n")
			writeMap(b, field.Value, indent+1)
		case KindList:
			writeList(b, field.Key, field.Value, indent)
		default:
			b.WriteString(prefix + field.Key + ": " + formatValue(field.Value.Scalar) + "\n")
		}
	}
}

// writeList emits a keyed block sequence at the given indent level.
func writeList(b *strings.Builder, key string, doc Document, indent int) {
	prefix := strings.Repeat(indentStep, indent)
	if len(doc.Items) == 0 {
		b.WriteString(prefix + key + ": []\n")
		return
	}

	b.WriteString(prefix + key + ":\n")
	itemPrefix := strings.Repeat(indentStep, indent+1)
	for _, item := range doc.Items {
		if item.Kind != KindMap {
			b.WriteString(itemPrefix + "- " + formatValue(item.Scalar) + "\n")
			continue
		}
		for i, field := range item.Fields {
			lead := itemPrefix + indentStep
			if i == 0 {
				lead = itemPrefix + "- "
			}
			b.WriteString(lead + field.Key + ": " + formatValue(field.Value.Scalar) + "\n")
		}
	}
}

// formatValue renders one scalar as YAML text.
//
// Booleans are bare, nil and the empty string render as "", numeric strings
// and strings of word characters, dots, dashes and slashes stay unquoted,
// and everything else is double-quoted with backslash escaping.
func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return `""`
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case string:
		if value == "" {
			return `""`
		}
		if numericPattern.MatchString(value) || bareScalarPattern.MatchString(value) {
			return value
		}
		return quoteString(value)
	default:
		return quoteString(stringify(value))
	}
}

// quoteString wraps a string in double quotes, escaping quotes and backslashes.
func quoteString(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
