package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/scribe"
	"github.com/iw2rmb/scribe/editor"
	"github.com/iw2rmb/scribe/internal/config"
)

func update(t *testing.T, a app, msg tea.Msg) (app, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	out, ok := m.(app)
	require.True(t, ok)
	return out, cmd
}

func TestApp_TypingUpdatesStatus(t *testing.T) {
	a := newApp("note.md", "", config.Default(), nil, &editor.MemClipboard{})
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 60, Height: 10})

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	assert.Equal(t, "hi", a.editor.Buffer().Content())

	status := ansi.Strip(a.status())
	assert.Contains(t, status, "note.md")
	assert.Contains(t, status, "Ln 1, Col 3")
	assert.Contains(t, status, " B)")
	assert.Contains(t, ansi.Strip(a.View()), "hi")
}

func TestApp_ScratchName(t *testing.T) {
	a := newApp("", "x", config.Default(), nil, &editor.MemClipboard{})
	assert.Contains(t, ansi.Strip(a.status()), "[scratch]")
}

func TestApp_Quit(t *testing.T) {
	a := newApp("", "", config.Default(), nil, &editor.MemClipboard{})
	_, cmd := update(t, a, tea.KeyMsg{Type: tea.KeyCtrlQ})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_EditorFillsAllButFooter(t *testing.T) {
	a := newApp("", strings.Repeat("x\n", 20), config.Default(), nil, &editor.MemClipboard{})
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 80, Height: 12})
	assert.Equal(t, 11, a.editor.ViewportState().VisibleRows)

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyF1})
	require.True(t, a.help.ShowAll)
	assert.Less(t, a.editor.ViewportState().VisibleRows, 11)
	assert.Contains(t, ansi.Strip(a.View()), "undo")
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	text, err := readFile(filepath.Join(dir, "missing.md"))
	require.NoError(t, err)
	assert.Empty(t, text)

	p := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(p, []byte("# a\n"), 0o644))
	text, err = readFile(p)
	require.NoError(t, err)
	assert.Equal(t, "# a\n", text)
}

func TestRootCmd_Version(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "scribe "+scribe.VersionTag()+"\n", out.String())
}

func TestRootCmd_RejectsExtraArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"a", "b"})
	assert.Error(t, cmd.Execute())
}

func TestApp_Program(t *testing.T) {
	a := newApp("", "", config.Default(), nil, &editor.MemClipboard{})
	tm := teatest.NewTestModel(t, a, teatest.WithInitialTermSize(60, 10))

	tm.Type("hello")
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("hello"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlQ})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(app)
	require.True(t, ok)
	assert.Equal(t, "hello", final.editor.Buffer().Content())
}
