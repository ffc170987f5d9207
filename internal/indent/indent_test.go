package indent

import "testing"

func TestLineStart(t *testing.T) {
	src := "a\n  b\n\tc"
	cases := []struct {
		offset int
		want   int
	}{
		{-1, 0},
		{0, 0},
		{1, 0},
		{2, 2},
		{4, 2},
		{7, 6},
		{99, 6},
	}
	for _, tc := range cases {
		if got := LineStart(src, tc.offset); got != tc.want {
			t.Fatalf("offset %d: expected %d, got %d", tc.offset, tc.want, got)
		}
	}
}

func TestOf(t *testing.T) {
	if got := Of("  $inline('foo|indent')", 2); got != "  " {
		t.Fatalf("expected two spaces, got %q", got)
	}
	if got := Of("x\n\t \t$inline.start('a')", 5); got != "\t \t" {
		t.Fatalf("expected mixed tabs, got %q", got)
	}
	if got := Of("__$inline('foo|indent')", 2); got != "" {
		t.Fatalf("expected no indent, got %q", got)
	}
	if got := Of("", 0); got != "" {
		t.Fatalf("expected no indent for empty source, got %q", got)
	}
}

func TestApply(t *testing.T) {
	if got := Apply("foo\nbar", "  ", false); got != "foo\n  bar" {
		t.Fatalf("unexpected single-line indent: %q", got)
	}
	if got := Apply("foo\nbar", "  ", true); got != "  foo\n  bar" {
		t.Fatalf("unexpected block indent: %q", got)
	}
	if got := Apply("foo\nbar", "", true); got != "foo\nbar" {
		t.Fatalf("expected unchanged content, got %q", got)
	}
}
