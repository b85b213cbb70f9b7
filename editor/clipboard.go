package editor

// Clipboard provides editor-level clipboard integration.
//
// Errors must not crash the UI; failures are ignored.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// MemClipboard keeps clipboard contents in process memory.
type MemClipboard struct {
	text string
}

func (c *MemClipboard) ReadText() (string, error) { return c.text, nil }

func (c *MemClipboard) WriteText(s string) error {
	c.text = s
	return nil
}
