package main

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/iw2rmb/scribe/editor"
	"github.com/iw2rmb/scribe/internal/config"
	"github.com/iw2rmb/scribe/internal/logger"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type appKeys struct {
	Help key.Binding
	Quit key.Binding
}

var keys = appKeys{
	Help: key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "keys")),
	Quit: key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
}

// app is the scribe program: the editor plus a status line. Content is
// never written back to disk.
type app struct {
	path   string
	editor editor.Model
	help   help.Model
	log    *logger.Logger

	width  int
	height int
}

func newApp(path, text string, cfg *config.Config, log *logger.Logger, clip editor.Clipboard) app {
	var sl *slog.Logger
	if log != nil {
		sl = log.Logger
	}
	return app{
		path:   path,
		editor: editor.New(editorConfig(text, cfg, sl, clip)),
		help:   help.New(),
		log:    log,
	}
}

func (a app) Init() tea.Cmd { return nil }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		a.resize()
		return a, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			a.resize()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

// resize gives the editor every row the status line and help leave.
func (a *app) resize() {
	a.editor = a.editor.SetSize(a.width, a.height-lipgloss.Height(a.footer()))
}

func (a app) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, a.editor.View(), a.footer())
}

func (a app) footer() string {
	if a.help.ShowAll {
		return a.status() + "\n" + a.help.View(a.editor.KeyMap())
	}
	return a.status()
}

func (a app) status() string {
	buf := a.editor.Buffer()
	line, col := buf.LineColumn()

	name := a.path
	if name == "" {
		name = "[scratch]"
	}
	stats := buf.HistoryStats()
	out := statusStyle.Render(fmt.Sprintf("%s  Ln %d, Col %d  undo %d (%s)",
		name, line+1, col+1, stats.UndoCount, humanize.Bytes(uint64(stats.MemoryUsage))))

	if a.log != nil {
		if warn, errs := a.log.Counts(); warn+errs > 0 {
			out += warnStyle.Render(fmt.Sprintf("  %d warnings", warn+errs))
		}
	}
	return out + "  " + a.help.ShortHelpView([]key.Binding{keys.Help, keys.Quit})
}
