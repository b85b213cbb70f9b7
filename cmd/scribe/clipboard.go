package main

import (
	"log/slog"

	"golang.design/x/clipboard"

	"github.com/iw2rmb/scribe/editor"
)

// systemClipboard is the OS clipboard.
type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) {
	return string(clipboard.Read(clipboard.FmtText)), nil
}

func (systemClipboard) WriteText(s string) error {
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}

// newClipboard returns the OS clipboard, or an in-process one when the
// platform has none (no display server, cgo disabled).
func newClipboard(log *slog.Logger) editor.Clipboard {
	if err := clipboard.Init(); err != nil {
		log.Warn("system clipboard unavailable", slog.Any("error", err))
		return &editor.MemClipboard{}
	}
	return systemClipboard{}
}
