// Package keyword implements the line-oriented keyword rule mini-language
// used by the crawler's frequency_words.txt file.
//
// Each non-empty line is one rule: a plain monitored term, a required term
// ("+term"), a filter term ("!term"), or a per-group result cap ("@N").
// Blank lines separate rule groups; each group is one independent
// monitoring topic.
package keyword

import (
	"strconv"
	"strings"
)

// Rule types in the grammar.
const (
	// TypeNormal is a plain monitored term.
	TypeNormal = "normal"
	// TypeRequired is a term that must co-occur within its group.
	TypeRequired = "required"
	// TypeFilter is a term that excludes matching headlines.
	TypeFilter = "filter"
	// TypeLimit caps the number of results for its group.
	TypeLimit = "limit"
)

// Rule is one decoded keyword rule.
type Rule struct {
	Word       string // Keyword text; empty for limit rules.
	Type       string // One of the Type constants.
	Group      int    // Group number, assigned in first-seen order starting at 0.
	SortOrder  int    // Position within the group, starting at 0.
	LimitValue int    // Result cap; meaningful only when Type is TypeLimit.
}

// Parse decodes keyword rule text into an ordered rule list.
//
// It is total over any input: unknown leading characters yield normal rules,
// a non-numeric "@" remainder yields a limit of 0, and lines that are empty
// after trimming only separate groups. Consecutive blank lines collapse into
// a single group boundary. The returned group count is the number of groups
// touched, which is at least 1 even for empty input.
func Parse(text string) (rules []Rule, groupCount int) {
	currentGroup := 0
	sortOrder := 0
	previousBlank := true

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if !previousBlank {
				currentGroup++
				sortOrder = 0
			}
			previousBlank = true
			continue
		}
		previousBlank = false

		rule := classify(trimmed)
		if rule.Word == "" && rule.Type != TypeLimit {
			continue
		}
		rule.Group = currentGroup
		rule.SortOrder = sortOrder
		sortOrder++
		rules = append(rules, rule)
	}

	return rules, currentGroup + 1
}

// classify maps one trimmed non-empty line to a rule without position fields.
func classify(line string) Rule {
	switch line[0] {
	case '+':
		return Rule{Word: strings.TrimSpace(line[1:]), Type: TypeRequired}
	case '!':
		return Rule{Word: strings.TrimSpace(line[1:]), Type: TypeFilter}
	case '@':
		limit, errParse := strconv.Atoi(strings.TrimSpace(line[1:]))
		if errParse != nil {
			limit = 0
		}
		return Rule{Type: TypeLimit, LimitValue: limit}
	default:
		return Rule{Word: line, Type: TypeNormal}
	}
}

// Format encodes rules back into keyword rule text, the inverse of Parse.
//
// Rules must already be ordered by (group, sort order). A blank line is
// emitted whenever the group number changes between consecutive rules.
// An empty rule list yields the empty string.
func Format(rules []Rule) string {
	if len(rules) == 0 {
		return ""
	}

	lines := make([]string, 0, len(rules))
	for i, rule := range rules {
		if i > 0 && rule.Group != rules[i-1].Group {
			lines = append(lines, "")
		}
		lines = append(lines, formatRule(rule))
	}
	return strings.Join(lines, "\n")
}

// formatRule renders one rule as its text line.
func formatRule(rule Rule) string {
	switch rule.Type {
	case TypeRequired:
		return "+" + rule.Word
	case TypeFilter:
		return "!" + rule.Word
	case TypeLimit:
		return "@" + strconv.Itoa(rule.LimitValue)
	default:
		return rule.Word
	}
}
