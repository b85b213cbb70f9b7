package editor

import (
	"log/slog"

	"github.com/iw2rmb/scribe/buffer"
)

// Config configures the editor Model. Zero values select defaults.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Wrap enables soft wrapping at WrapWidth cells, or at the content width
	// when WrapWidth is zero or wider than the viewport.
	Wrap      bool
	WrapWidth int
	TabWidth  int

	// Markup renders markdown styling, showing raw source for the construct
	// under the cursor.
	Markup bool

	ShowLineNums bool
	KeyMap       KeyMap
	Style        Style
	ScrollPolicy ScrollPolicy
	ReadOnly     bool
	Clipboard    Clipboard

	// Forwarded to buffer.Options.
	History     buffer.HistoryOptions
	Diagnostics bool
	Logger      *slog.Logger

	// PageSize is the number of lines PageUp/PageDown move. Zero uses the
	// visible height.
	PageSize int

	// OnChange is called after every update that changed content, cursor or
	// selection.
	OnChange func(ChangeEvent)
}

func (c Config) tabWidth() int {
	if c.TabWidth <= 0 {
		return 4
	}
	return c.TabWidth
}

// ScrollPolicy decides whether the viewport may scroll without the cursor.
type ScrollPolicy int

const (
	// ScrollAllowManual lets the mouse wheel scroll the viewport freely.
	ScrollAllowManual ScrollPolicy = iota
	// ScrollFollowCursorOnly ignores wheel scrolling; the viewport only moves
	// to keep the cursor visible.
	ScrollFollowCursorOnly
)
