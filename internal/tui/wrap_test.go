package tui

import (
	"strings"
	"testing"
)

func plainRunes(text string) []styledRune {
	runes := []rune(text)
	out := make([]styledRune, 0, len(runes))
	for _, r := range runes {
		out = append(out, styledRune{
			s:         string(r),
			width:     1,
			isSpace:   r == ' ',
			isNewline: r == '\n',
		})
	}
	return out
}

func TestFindWords(t *testing.T) {
	words := findWords([]rune("if x {\n\treturn\n}"))
	want := []wordRange{
		{start: 0, end: 2},
		{start: 3, end: 4},
		{start: 5, end: 6},
		{start: 7, end: 14},
		{start: 15, end: 16},
	}
	if len(words) != len(want) {
		t.Fatalf("findWords returned %d words, want %d: %v", len(words), len(want), words)
	}
	for i, w := range want {
		if words[i] != w {
			t.Fatalf("word %d = %v, want %v", i, words[i], w)
		}
	}
}

func TestWordForCursor(t *testing.T) {
	words := findWords([]rune("foo bar baz"))
	tests := []struct {
		cursor int
		want   wordRange
	}{
		{cursor: 0, want: wordRange{start: 0, end: 3}},
		{cursor: 3, want: wordRange{start: 4, end: 7}},
		{cursor: 5, want: wordRange{start: 4, end: 7}},
		{cursor: 100, want: wordRange{start: 8, end: 11}},
	}
	for _, tt := range tests {
		got := wordForCursor(words, tt.cursor)
		if got == nil || *got != tt.want {
			t.Fatalf("wordForCursor(%d) = %v, want %v", tt.cursor, got, tt.want)
		}
	}
	if w := wordForCursor(nil, 0); w != nil {
		t.Fatalf("wordForCursor with no words = %v, want nil", w)
	}
}

func TestWrapStyledRunesHardBreaks(t *testing.T) {
	got := wrapStyledRunes(plainRunes("ab\ncd"), 80)
	want := "ab\ncd"
	if got != want {
		t.Fatalf("wrapStyledRunes = %q, want %q", got, want)
	}
}

func TestWrapStyledRunesSoftWrapAtSpace(t *testing.T) {
	got := wrapStyledRunes(plainRunes("hello world again"), 11)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "hello world" || lines[1] != "again" {
		t.Fatalf("unexpected wrap: %q", lines)
	}
}

func TestWrapStyledRunesLongToken(t *testing.T) {
	got := wrapStyledRunes(plainRunes("abcdefgh"), 3)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), got)
	}
	for _, line := range lines {
		if len(line) > 3 {
			t.Fatalf("line %q exceeds width 3", line)
		}
	}
}

func TestWrapStyledRunesZeroWidth(t *testing.T) {
	got := wrapStyledRunes(plainRunes("a b"), 0)
	if got != "a b" {
		t.Fatalf("wrapStyledRunes with zero width = %q, want %q", got, "a b")
	}
}

func TestBuildStyledRunesNewlineMarker(t *testing.T) {
	runes := buildStyledRunes([]rune("a\nb"), []rune("a"), 1)
	if len(runes) != 3 {
		t.Fatalf("expected 3 styled runes, got %d", len(runes))
	}
	if !runes[1].isNewline {
		t.Fatalf("expected rune 1 to be a newline")
	}
	if !strings.Contains(runes[1].s, "↵") {
		t.Fatalf("newline rune should render the return marker, got %q", runes[1].s)
	}
}

func TestBuildStyledRunesMistypedSpace(t *testing.T) {
	runes := buildStyledRunes([]rune("a b"), []rune("axb"), 3)
	if !strings.Contains(runes[1].s, "•") {
		t.Fatalf("mistyped space should render a bullet, got %q", runes[1].s)
	}
}
