package buffer

import (
	"fmt"
	"unicode/utf8"
)

// CommandKind tags the closed set of invertible edit operations.
type CommandKind uint8

const (
	CommandInsert CommandKind = iota
	CommandDelete
	CommandReplace
)

func (k CommandKind) String() string {
	switch k {
	case CommandInsert:
		return "insert"
	case CommandDelete:
		return "delete"
	case CommandReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// commandOverhead approximates the fixed cost of one recorded command.
const commandOverhead = 64

// Command is one recorded edit.
//
//   - Insert: Text inserted at Start (End == Start).
//   - Delete: Removed taken from [Start, End).
//   - Replace: Removed in [Start, End) replaced by Text.
type Command struct {
	Kind    CommandKind
	Start   int
	End     int
	Text    string
	Removed string
}

func InsertCommand(pos int, text string) Command {
	return Command{Kind: CommandInsert, Start: pos, End: pos, Text: text}
}

func DeleteCommand(start, end int, removed string) Command {
	return Command{Kind: CommandDelete, Start: start, End: end, Removed: removed}
}

func ReplaceCommand(start, end int, oldText, newText string) Command {
	return Command{Kind: CommandReplace, Start: start, End: end, Text: newText, Removed: oldText}
}

// Apply transforms the before-state into the after-state.
func (c Command) Apply(t *Text) {
	switch c.Kind {
	case CommandInsert:
		t.Insert(c.Start, c.Text)
	case CommandDelete:
		t.Remove(c.Start, c.End)
	case CommandReplace:
		t.Remove(c.Start, c.End)
		t.Insert(c.Start, c.Text)
	}
}

// Revert transforms the after-state back into the before-state.
func (c Command) Revert(t *Text) { c.Inverse().Apply(t) }

func (c Command) Inverse() Command {
	switch c.Kind {
	case CommandInsert:
		return DeleteCommand(c.Start, c.Start+utf8.RuneCountInString(c.Text), c.Text)
	case CommandDelete:
		return InsertCommand(c.Start, c.Removed)
	case CommandReplace:
		return ReplaceCommand(c.Start, c.Start+utf8.RuneCountInString(c.Text), c.Text, c.Removed)
	default:
		return c
	}
}

// CursorAfter is where the caret rests once the command has been applied.
func (c Command) CursorAfter() int {
	switch c.Kind {
	case CommandInsert, CommandReplace:
		return c.Start + utf8.RuneCountInString(c.Text)
	default:
		return c.Start
	}
}

// MemorySize estimates the bytes retained by the command.
func (c Command) MemorySize() int {
	return commandOverhead + len(c.Text) + len(c.Removed)
}

func (c Command) Description() string {
	switch c.Kind {
	case CommandInsert:
		return fmt.Sprintf("insert %d chars at %d", utf8.RuneCountInString(c.Text), c.Start)
	case CommandDelete:
		return fmt.Sprintf("delete [%d, %d)", c.Start, c.End)
	case CommandReplace:
		return fmt.Sprintf("replace [%d, %d)", c.Start, c.End)
	default:
		return "unknown"
	}
}
