package column

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestWidthTo(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		offset int
		ts     int
		want   int
	}{
		{"empty", "", 0, 8, 0},
		{"spaces", "    x", 4, 8, 4},
		{"tab", "\tx", 1, 8, 8},
		{"tab after text", "ab\tx", 3, 8, 8},
		{"tab stop 4", "a\t\tx", 3, 4, 8},
		{"past end", "abc", 10, 8, 3},
		{"wide rune", "世界x", len("世界"), 8, 4},
		{"control", "\x01x", 1, 8, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WidthTo(tt.line, tt.offset, tt.ts)
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestLeadingWhitespace(t *testing.T) {
	w, n := LeadingWhitespace(" \t  foo", 8)
	if w != 10 || n != 4 {
		t.Errorf("expected (10, 4), got (%d, %d)", w, n)
	}

	w, n = LeadingWhitespace("   ", 8)
	if w != 3 || n != 3 {
		t.Errorf("expected (3, 3), got (%d, %d)", w, n)
	}
}

func TestOffsetAt(t *testing.T) {
	line := "\tfoo"
	if got := OffsetAt(line, 0, 8); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := OffsetAt(line, 5, 8); got != 0 {
		t.Errorf("expected offset of covering tab 0, got %d", got)
	}
	if got := OffsetAt(line, 9, 8); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := OffsetAt(line, 100, 8); got != len(line) {
		t.Errorf("expected %d, got %d", len(line), got)
	}
}

func TestZeroTabStopFallsBack(t *testing.T) {
	if got := IndentOf("\tx", 0); got != DefaultTabStop {
		t.Errorf("expected %d, got %d", DefaultTabStop, got)
	}
}

// A run of tabs and spaces and the equivalent run of spaces measure the same.
func TestTabSpaceEquivalence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ts := rapid.IntRange(1, 16).Draw(rt, "ts")
		tabs := rapid.IntRange(0, 5).Draw(rt, "tabs")
		spaces := rapid.IntRange(0, 20).Draw(rt, "spaces")

		mixed := strings.Repeat("\t", tabs) + strings.Repeat(" ", spaces) + "x"
		width := tabs*ts + spaces
		flat := strings.Repeat(" ", width) + "x"

		if IndentOf(mixed, ts) != IndentOf(flat, ts) {
			rt.Fatalf("indent mismatch: %d vs %d", IndentOf(mixed, ts), IndentOf(flat, ts))
		}
		if WidthTo(mixed, len(mixed)-1, ts) != width {
			rt.Fatalf("expected width %d, got %d", width, WidthTo(mixed, len(mixed)-1, ts))
		}
	})
}
