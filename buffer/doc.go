// Package buffer implements the editing core's document model.
//
// Positions are character (rune) offsets into the document, never storage
// bytes. Points are 0-based (Row, Column) pairs in characters. Every position
// argument is clamped into document bounds; nothing in this package returns an
// error for out-of-range input.
package buffer
