package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRender_LineNumbers(t *testing.T) {
	text := strings.Repeat("x\n", 10) + "y"
	m := New(Config{Text: text, ShowLineNums: true})
	m = m.SetSize(20, 20)

	got := viewLines(m)
	if len(got) != 11 {
		t.Fatalf("rows = %d, want 11", len(got))
	}
	if got[0] != " 1 x" || got[10] != "11 y" {
		t.Fatalf("gutter rows = %q / %q", got[0], got[10])
	}
	if w := m.gutterWidth(); w != 3 {
		t.Fatalf("gutter width = %d, want 3", w)
	}
}

func TestRender_LineNumbersOnlyOnFirstVisualLine(t *testing.T) {
	m := New(Config{Text: "aaaa bbbb", Wrap: true, WrapWidth: 5, ShowLineNums: true})
	m = m.SetSize(20, 5)

	got := viewLines(m)
	if len(got) != 2 || got[0] != "1 aaaa" || got[1] != "  bbbb" {
		t.Fatalf("view = %q", got)
	}
}

func TestRender_MarkupHidesMarkersOffCursorLine(t *testing.T) {
	m := New(Config{Text: "# Title\nsome **bold** text", Markup: true})
	m = m.SetSize(40, 5)

	// The cursor starts on the heading, which is shown as source.
	got := viewLines(m)
	if got[0] != "# Title" {
		t.Fatalf("cursor line should be raw, got %q", got[0])
	}
	if got[1] != "some bold text" {
		t.Fatalf("markers should be hidden, got %q", got[1])
	}

	m = send(m, keyMsg(tea.KeyDown))
	for range 6 {
		m = send(m, keyMsg(tea.KeyRight))
	}
	got = viewLines(m)
	if got[0] != "Title" {
		t.Fatalf("heading markers should hide once the cursor leaves, got %q", got[0])
	}
	if got[1] != "some **bold** text" {
		t.Fatalf("construct under the cursor should be raw, got %q", got[1])
	}
}

func TestRender_MarkupOffShowsSource(t *testing.T) {
	m := New(Config{Text: "a\n**b**"})
	m = m.SetSize(20, 5)

	if got := viewLines(m); got[1] != "**b**" {
		t.Fatalf("view = %q", got)
	}
}

func TestGutterDigits(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 9: 1, 10: 2, 99: 2, 100: 3}
	for in, want := range cases {
		if got := gutterDigits(in); got != want {
			t.Fatalf("gutterDigits(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestSetMarkupAtRuntime(t *testing.T) {
	m := New(Config{Text: "a\n**b**"})
	m = m.SetSize(20, 5)

	m = m.SetMarkup(true)
	if got := viewLines(m); got[1] != "b" {
		t.Fatalf("markup on: %q", got)
	}
	m = m.SetMarkup(false)
	if got := viewLines(m); got[1] != "**b**" {
		t.Fatalf("markup off: %q", got)
	}
}

func TestRender_KeepsClustersTogether(t *testing.T) {
	m := New(Config{Text: "xe\u0301y"})
	m = m.SetSize(20, 3)

	m.Buffer().SetCursorPosition(1)
	m = send(m, struct{}{})
	if got := viewLines(m); got[0] != "xe\u0301y" {
		t.Fatalf("view = %q", got)
	}
}
