package layout

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rivo/uniseg"
)

// Measurer reports the rendered width of text in a font.
type Measurer interface {
	Measure(text string, font Font) float64
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string, font Font) float64

func (f MeasureFunc) Measure(text string, font Font) float64 { return f(text, font) }

// CellMeasurer measures in terminal cells. Font is ignored. Tabs advance to
// the next multiple of TabWidth counted from the start of text.
type CellMeasurer struct {
	TabWidth int
}

func (m CellMeasurer) Measure(text string, _ Font) float64 {
	tabWidth := m.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}

	cells := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cells += clusterCellWidth(g.Str(), cells, tabWidth)
	}
	return float64(cells)
}

func clusterCellWidth(cluster string, col, tabWidth int) int {
	if cluster == "\t" {
		return tabWidth - col%tabWidth
	}
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = uniseg.StringWidth(cluster)
	}
	if w < 0 {
		w = 0
	}
	return w
}

// ScaledMeasurer scales Base's widths by the font size relative to BaseSize,
// so a heading at twice the base size is twice as wide.
type ScaledMeasurer struct {
	Base     Measurer
	BaseSize float64
}

func (m ScaledMeasurer) Measure(text string, font Font) float64 {
	w := m.Base.Measure(text, font)
	base := m.BaseSize
	if base <= 0 {
		base = DefaultFontSize
	}
	return w * font.size() / base
}

const (
	DefaultMeasureExpiration = 10 * time.Minute
	DefaultMeasureCleanup    = 30 * time.Minute
)

// CachedMeasurer memoizes another Measurer. Entries expire after the
// configured duration so a long session does not keep every string it has
// ever measured.
type CachedMeasurer struct {
	base  Measurer
	cache *gocache.Cache
}

func NewCachedMeasurer(base Measurer, expiration, cleanup time.Duration) *CachedMeasurer {
	if expiration <= 0 {
		expiration = DefaultMeasureExpiration
	}
	if cleanup <= 0 {
		cleanup = DefaultMeasureCleanup
	}
	return &CachedMeasurer{
		base:  base,
		cache: gocache.New(expiration, cleanup),
	}
}

func (m *CachedMeasurer) Measure(text string, font Font) float64 {
	key := measureKey(text, font)
	if v, ok := m.cache.Get(key); ok {
		if w, ok := v.(float64); ok {
			return w
		}
	}
	w := m.base.Measure(text, font)
	m.cache.Set(key, w, gocache.DefaultExpiration)
	return w
}

// Len returns the number of cached measurements, expired ones included until
// the next cleanup.
func (m *CachedMeasurer) Len() int { return m.cache.ItemCount() }

func (m *CachedMeasurer) Flush() { m.cache.Flush() }

func measureKey(text string, font Font) string {
	return fmt.Sprintf("%g|%t|%t|%t|%s", font.Size, font.Bold, font.Italic, font.Code, text)
}
