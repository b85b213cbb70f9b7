package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/scribe/editor"
	"github.com/iw2rmb/scribe/internal/config"
	"github.com/iw2rmb/scribe/internal/logger"
)

func run(path string, f flags) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	if f.debug {
		cfg.Log.Level = "debug"
		cfg.Log.Diagnostics = true
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Options{Level: level, Path: cfg.Log.Path})
	if err != nil {
		return err
	}
	defer log.Close()

	text, err := readFile(path)
	if err != nil {
		return err
	}
	log.Info("starting", slog.String("file", path), slog.Int("bytes", len(text)))

	m := newApp(path, text, cfg, log, newClipboard(log.Logger))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Error("program exited", slog.Any("error", err))
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

// readFile returns the file content, or "" for a file that does not exist
// yet.
func readFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

func editorConfig(text string, cfg *config.Config, log *slog.Logger, clip editor.Clipboard) editor.Config {
	return editor.Config{
		Text:         text,
		Wrap:         cfg.Wrap.Enabled,
		WrapWidth:    cfg.Wrap.Width,
		TabWidth:     cfg.Editor.TabWidth,
		Markup:       cfg.Editor.Markup,
		ShowLineNums: cfg.Editor.LineNumbers,
		Style:        editor.DefaultStyle(),
		Clipboard:    clip,
		History:      cfg.HistoryOptions(),
		Diagnostics:  cfg.Log.Diagnostics,
		Logger:       log,
		PageSize:     cfg.Editor.PageSize,
	}
}
