// Package editor provides a Bubble Tea text editor component over the scribe
// core.
//
// The component owns input handling, the viewport and terminal rendering.
// Editing state lives in a buffer.Buffer, soft wrapping in a layout.Manager
// and cursor navigation in a motion.Service; the model only translates
// between keys, mouse events and those packages.
package editor
