package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func viewLines(m Model) []string {
	out := strings.Split(ansi.Strip(m.View()), "\n")
	for i := range out {
		out[i] = strings.TrimRight(out[i], " ")
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestNew_DefaultsAndRender(t *testing.T) {
	m := New(Config{Text: "hello\nworld"})
	m = m.SetSize(20, 5)

	if !m.Focused() {
		t.Fatalf("new model should be focused")
	}
	if len(m.cfg.KeyMap.Left.Keys()) == 0 {
		t.Fatalf("default keymap was not applied")
	}
	got := viewLines(m)
	want := []string{"hello", "world"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("view = %q, want %q", got, want)
	}
}

func TestUpdate_TypingInsertsAndNotifies(t *testing.T) {
	var events []ChangeEvent
	m := New(Config{Text: "ac", OnChange: func(ev ChangeEvent) { events = append(events, ev) }})
	m = m.SetSize(20, 5)

	m.Buffer().SetCursorPosition(1)
	m = send(m, runes("b"))

	if got := m.Buffer().Content(); got != "abc" {
		t.Fatalf("content = %q, want %q", got, "abc")
	}
	if len(events) == 0 {
		t.Fatalf("expected a change event")
	}
	last := events[len(events)-1]
	if last.Text != "abc" || last.Cursor != 2 || last.Line != 0 || last.Column != 2 {
		t.Fatalf("event = %+v", last)
	}
	if got := viewLines(m); got[0] != "abc" {
		t.Fatalf("view not refreshed: %q", got)
	}
}

func TestUpdate_NoChangeNoEvent(t *testing.T) {
	calls := 0
	m := New(Config{Text: "x", OnChange: func(ChangeEvent) { calls++ }})
	m = m.SetSize(10, 3)

	m = send(m, keyMsg(tea.KeyLeft))
	if calls != 0 {
		t.Fatalf("moving left at offset 0 fired %d events", calls)
	}
}

func TestUpdate_UndoGroupsTyping(t *testing.T) {
	m := New(Config{})
	m = m.SetSize(20, 5)

	m = send(m, runes("a"), runes("b"), runes("c"))
	if got := m.Buffer().Content(); got != "abc" {
		t.Fatalf("content = %q", got)
	}
	m = send(m, keyMsg(tea.KeyCtrlZ))
	if got := m.Buffer().Content(); got != "" {
		t.Fatalf("after undo content = %q, want empty", got)
	}
	m = send(m, keyMsg(tea.KeyCtrlY))
	if got := m.Buffer().Content(); got != "abc" {
		t.Fatalf("after redo content = %q", got)
	}
}

func TestUpdate_EnterBackspaceDelete(t *testing.T) {
	m := New(Config{Text: "ab"})
	m = m.SetSize(20, 5)

	m.Buffer().SetCursorPosition(1)
	m = send(m, keyMsg(tea.KeyEnter))
	if got := m.Buffer().Content(); got != "a\nb" {
		t.Fatalf("after enter = %q", got)
	}
	if got := viewLines(m); len(got) != 2 {
		t.Fatalf("view rows = %q, want 2", got)
	}

	m = send(m, keyMsg(tea.KeyBackspace))
	if got := m.Buffer().Content(); got != "ab" {
		t.Fatalf("after backspace = %q", got)
	}
	m = send(m, keyMsg(tea.KeyDelete))
	if got := m.Buffer().Content(); got != "a" {
		t.Fatalf("after delete = %q", got)
	}
}

func TestUpdate_ReadOnlyBlocksEdits(t *testing.T) {
	clip := &MemClipboard{}
	m := New(Config{Text: "abc", ReadOnly: true, Clipboard: clip})
	m = m.SetSize(20, 5)

	m = send(m, runes("x"), keyMsg(tea.KeyBackspace), keyMsg(tea.KeyEnter))
	if got := m.Buffer().Content(); got != "abc" {
		t.Fatalf("read-only content changed to %q", got)
	}

	m = send(m, keyMsg(tea.KeyShiftRight), keyMsg(tea.KeyShiftRight), keyMsg(tea.KeyCtrlX))
	if got := m.Buffer().Content(); got != "abc" {
		t.Fatalf("read-only cut changed content to %q", got)
	}
	if got, _ := clip.ReadText(); got != "ab" {
		t.Fatalf("read-only cut should copy, clipboard = %q", got)
	}
}

func TestUpdate_ClipboardRoundTrip(t *testing.T) {
	clip := &MemClipboard{}
	m := New(Config{Text: "hello world", Clipboard: clip})
	m = m.SetSize(30, 5)

	m = send(m, keyMsg(tea.KeyShiftRight), keyMsg(tea.KeyShiftRight), keyMsg(tea.KeyShiftRight), keyMsg(tea.KeyShiftRight), keyMsg(tea.KeyShiftRight))
	m = send(m, keyMsg(tea.KeyCtrlX))
	if got := m.Buffer().Content(); got != " world" {
		t.Fatalf("after cut = %q", got)
	}
	m = send(m, keyMsg(tea.KeyCtrlE), keyMsg(tea.KeyCtrlV))
	if got := m.Buffer().Content(); got != " worldhello" {
		t.Fatalf("after paste = %q", got)
	}

	_ = clip.WriteText("a\r\nb")
	m = send(m, keyMsg(tea.KeyCtrlV))
	if got := m.Buffer().Content(); got != " worldhelloa\nb" {
		t.Fatalf("paste should normalize newlines, got %q", got)
	}
}

func TestUpdate_PasteMsgInsertsLiterally(t *testing.T) {
	m := New(Config{})
	m = m.SetSize(20, 5)

	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q\r\nw"), Paste: true})
	if got := m.Buffer().Content(); got != "q\nw" {
		t.Fatalf("content = %q", got)
	}
}

func TestUpdate_SelectAllAndTab(t *testing.T) {
	m := New(Config{Text: "one\ntwo"})
	m = m.SetSize(20, 5)

	m = send(m, keyMsg(tea.KeyCtrlL))
	start, end, ok := m.Buffer().SelectionRange()
	if !ok || start != 0 || end != 7 {
		t.Fatalf("selection = (%d,%d,%v)", start, end, ok)
	}

	m = send(m, keyMsg(tea.KeyTab))
	if got := m.Buffer().Content(); got != "\t" {
		t.Fatalf("tab should replace the selection, got %q", got)
	}
	if got := viewLines(m); len(got) != 1 || got[0] != "" {
		t.Fatalf("tab should render as blank cells, got %q", got)
	}
}

func TestBlurHidesCursorAndIgnoresKeys(t *testing.T) {
	m := New(Config{Text: "abc"})
	m = m.SetSize(20, 5).Blur()

	m = send(m, runes("x"))
	if got := m.Buffer().Content(); got != "abc" {
		t.Fatalf("blurred model accepted input: %q", got)
	}
	m = m.Focus()
	if !m.Focused() {
		t.Fatalf("focus did not stick")
	}
}

func TestWindowSizeMsg(t *testing.T) {
	m := New(Config{Text: "abc"})
	m = send(m, tea.WindowSizeMsg{Width: 12, Height: 4})
	if st := m.ViewportState(); st.VisibleRows != 4 {
		t.Fatalf("visible rows = %d, want 4", st.VisibleRows)
	}
}
