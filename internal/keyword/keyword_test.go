package keyword

import (
	"reflect"
	"testing"
)

func TestParseClassifiesLineTypes(t *testing.T) {
	rules, groups := Parse("华为\n+发布\n!广告\n@5")
	if groups != 1 {
		t.Fatalf("expected 1 group, got %d", groups)
	}
	want := []Rule{
		{Word: "华为", Type: TypeNormal, Group: 0, SortOrder: 0},
		{Word: "发布", Type: TypeRequired, Group: 0, SortOrder: 1},
		{Word: "广告", Type: TypeFilter, Group: 0, SortOrder: 2},
		{Type: TypeLimit, Group: 0, SortOrder: 3, LimitValue: 5},
	}
	if !reflect.DeepEqual(rules, want) {
		t.Fatalf("unexpected rules: %+v", rules)
	}
}

func TestParseGroupSeparation(t *testing.T) {
	rules, groups := Parse("a\n\nb")
	if groups != 2 {
		t.Fatalf("expected 2 groups, got %d", groups)
	}
	if len(rules) != 2 || rules[0].Group != 0 || rules[1].Group != 1 {
		t.Fatalf("unexpected rules: %+v", rules)
	}
	if rules[1].SortOrder != 0 {
		t.Fatalf("expected sort order reset at group boundary, got %d", rules[1].SortOrder)
	}
}

func TestParseCollapsesConsecutiveBlankLines(t *testing.T) {
	rules, groups := Parse("a\n\n\nb")
	if groups != 2 {
		t.Fatalf("expected double blank line to still yield 2 groups, got %d", groups)
	}
	if len(rules) != 2 || rules[1].Group != 1 {
		t.Fatalf("unexpected rules: %+v", rules)
	}
}

func TestParseIgnoresLeadingAndTrailingBlankLines(t *testing.T) {
	rules, groups := Parse("\n\na\n\n")
	if groups != 2 {
		t.Fatalf("expected 2 groups touched, got %d", groups)
	}
	if len(rules) != 1 || rules[0].Group != 0 {
		t.Fatalf("unexpected rules: %+v", rules)
	}
}

func TestParseLimitRows(t *testing.T) {
	rules, _ := Parse("@7")
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if rules[0].Type != TypeLimit || rules[0].Word != "" || rules[0].LimitValue != 7 {
		t.Fatalf("unexpected rule: %+v", rules[0])
	}

	rules, _ = Parse("@abc")
	if len(rules) != 1 || rules[0].LimitValue != 0 {
		t.Fatalf("expected non-numeric limit to parse to 0, got %+v", rules)
	}

	rules, _ = Parse("@")
	if len(rules) != 1 || rules[0].LimitValue != 0 {
		t.Fatalf("expected bare @ to parse to limit 0, got %+v", rules)
	}
}

func TestParseDropsEmptyMarkerLines(t *testing.T) {
	rules, _ := Parse("+\n!\nreal")
	if len(rules) != 1 || rules[0].Word != "real" {
		t.Fatalf("expected empty +/! lines to be dropped, got %+v", rules)
	}
}

func TestParseTrimsWhitespace(t *testing.T) {
	rules, _ := Parse("  term  \n\t+ required\t")
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if rules[0].Word != "term" || rules[1].Word != "required" {
		t.Fatalf("unexpected words: %q %q", rules[0].Word, rules[1].Word)
	}
}

func TestFormatEmptyInput(t *testing.T) {
	if out := Format(nil); out != "" {
		t.Fatalf("expected empty string, got %q", out)
	}
}

func TestFormatInsertsGroupSeparators(t *testing.T) {
	text := Format([]Rule{
		{Word: "a", Type: TypeNormal, Group: 0, SortOrder: 0},
		{Type: TypeLimit, Group: 0, SortOrder: 1, LimitValue: 0},
		{Word: "b", Type: TypeRequired, Group: 1, SortOrder: 0},
	})
	if text != "a\n@0\n\n+b" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestRoundTrip(t *testing.T) {
	rules := []Rule{
		{Word: "AI", Type: TypeNormal, Group: 0, SortOrder: 0},
		{Word: "大模型", Type: TypeRequired, Group: 0, SortOrder: 1},
		{Word: "招聘", Type: TypeFilter, Group: 0, SortOrder: 2},
		{Type: TypeLimit, Group: 0, SortOrder: 3, LimitValue: 10},
		{Word: "新能源", Type: TypeNormal, Group: 1, SortOrder: 0},
		{Type: TypeLimit, Group: 1, SortOrder: 1, LimitValue: 0},
		{Word: "比亚迪", Type: TypeNormal, Group: 2, SortOrder: 0},
	}

	parsed, groups := Parse(Format(rules))
	if groups != 3 {
		t.Fatalf("expected 3 groups, got %d", groups)
	}
	if !reflect.DeepEqual(parsed, rules) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", parsed, rules)
	}
}

func TestFormatIdempotentThroughParse(t *testing.T) {
	rules := []Rule{
		{Word: "x", Type: TypeNormal, Group: 0, SortOrder: 0},
		{Word: "y", Type: TypeFilter, Group: 1, SortOrder: 0},
	}
	once := Format(rules)
	parsed, _ := Parse(once)
	if twice := Format(parsed); twice != once {
		t.Fatalf("format not idempotent:\n once %q\ntwice %q", once, twice)
	}
}
