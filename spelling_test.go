package sketch5

import (
	"strings"
	"testing"
)

func TestSuggestions(t *testing.T) {
	words := []string{"background", "fill", "stroke", "rect", "circle", "line"}
	tests := []struct {
		word string
		want string
	}{
		{"backgrund", `"background"`},
		{"fil", `"fill"`},
		{"strok", `"stroke"`},
		{"rcet", `"rect"`},
		{"zzzzzzz", ""},
	}
	for _, tt := range tests {
		if got := suggestions(tt.word, words); got != tt.want {
			t.Errorf("suggestions(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestSuggestionsListsSeveral(t *testing.T) {
	got := suggestions("lin", []string{"line", "link", "lint", "tan"})
	if got != `"line", "link", or "lint"` {
		t.Errorf("suggestions = %q", got)
	}
	got = suggestions("lin", []string{"line", "link"})
	if got != `"line" or "link"` {
		t.Errorf("suggestions = %q", got)
	}
}

func TestSuggestionsTwoEditsOnlyForShortWords(t *testing.T) {
	if got := suggestions("crcle", []string{"circles"}); got != `"circles"` {
		t.Errorf("two-edit suggestion = %q", got)
	}
	long := "abcdefghijkl"
	if got := suggestions(long, []string{"abcdefghijXYl"}); got != "" {
		t.Errorf("long word should not get two-edit suggestions, got %q", got)
	}
}

func TestUnknownNameMsg(t *testing.T) {
	msg := unknownNameMsg("engine function", "elipse", []string{"ellipse"})
	if msg != `no engine function named "elipse". Did you mean "ellipse"?` {
		t.Errorf("msg = %q", msg)
	}
	msg = unknownNameMsg("engine function", "_private", []string{"private"})
	if strings.Contains(msg, "Did you mean") {
		t.Errorf("underscore names get no suggestions: %q", msg)
	}
}
