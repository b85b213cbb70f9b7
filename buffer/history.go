package buffer

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultMaxTransactions    = 1000
	DefaultMaxMemoryBytes     = 10 << 20
	DefaultTransactionTimeout = 500 * time.Millisecond

	transactionOverhead = 128
)

// HistoryOptions bounds the undo history. Zero values select the defaults.
type HistoryOptions struct {
	MaxTransactions int
	MaxMemoryBytes  int

	// Timeout is the grouping window: commands added within Timeout of the
	// open transaction's creation join it.
	Timeout time.Duration

	// Clock defaults to time.Now.
	Clock func() time.Time
}

func (o HistoryOptions) normalized() HistoryOptions {
	if o.MaxTransactions <= 0 {
		o.MaxTransactions = DefaultMaxTransactions
	}
	if o.MaxMemoryBytes <= 0 {
		o.MaxMemoryBytes = DefaultMaxMemoryBytes
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTransactionTimeout
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Transaction is a group of commands undone and redone as one unit.
type Transaction struct {
	ID          uuid.UUID
	Description string
	Created     time.Time
	Commands    []Command
}

func (tx *Transaction) MemorySize() int {
	if tx == nil {
		return 0
	}
	n := transactionOverhead + len(tx.Description)
	for _, c := range tx.Commands {
		n += c.MemorySize()
	}
	return n
}

// HistoryStats is a snapshot of history occupancy.
type HistoryStats struct {
	UndoCount      int
	RedoCount      int
	Pending        int // commands in the open transaction
	MemoryUsage    int
	MaxHistorySize int
	MaxMemoryBytes int
}

// History keeps bounded undo and redo stacks of transactions plus at most one
// open transaction. Eviction drops the oldest transactions first.
type History struct {
	opt HistoryOptions

	undo    []*Transaction
	redo    []*Transaction
	current *Transaction

	stackBytes int // undo + redo
}

func NewHistory(opt HistoryOptions) *History {
	return &History{opt: opt.normalized()}
}

// WithLimits returns a history bounded by maxTransactions and maxMemoryBytes
// with the default grouping window.
func WithLimits(maxTransactions, maxMemoryBytes int) *History {
	return NewHistory(HistoryOptions{
		MaxTransactions: maxTransactions,
		MaxMemoryBytes:  maxMemoryBytes,
	})
}

func (h *History) Options() HistoryOptions { return h.opt }

// AddCommand records cmd in the open transaction. An open transaction older
// than the grouping window is finished first, so cmd starts a new one.
func (h *History) AddCommand(cmd Command) {
	now := h.opt.Clock()
	if h.current != nil && now.Sub(h.current.Created) > h.opt.Timeout {
		h.FinishTransaction()
	}
	if h.current == nil {
		h.current = &Transaction{
			ID:          uuid.New(),
			Description: cmd.Description(),
			Created:     now,
		}
	}
	h.current.Commands = append(h.current.Commands, cmd)
}

// FinishTransaction commits the open transaction. New edits invalidate the
// redo stack.
func (h *History) FinishTransaction() {
	tx := h.current
	h.current = nil
	if tx == nil || len(tx.Commands) == 0 {
		return
	}

	h.undo = append(h.undo, tx)
	h.stackBytes += tx.MemorySize()
	h.clearRedo()
	h.enforceLimits()
}

func (h *History) clearRedo() {
	for _, tx := range h.redo {
		h.stackBytes -= tx.MemorySize()
	}
	h.redo = nil
}

func (h *History) memoryUsage() int {
	return h.stackBytes + h.current.MemorySize()
}

func (h *History) enforceLimits() {
	for len(h.undo) > 0 && (len(h.undo) > h.opt.MaxTransactions || h.memoryUsage() > h.opt.MaxMemoryBytes) {
		h.stackBytes -= h.undo[0].MemorySize()
		h.undo[0] = nil
		h.undo = h.undo[1:]
	}
	for len(h.redo) > 0 && h.memoryUsage() > h.opt.MaxMemoryBytes {
		h.stackBytes -= h.redo[0].MemorySize()
		h.redo[0] = nil
		h.redo = h.redo[1:]
	}
}

// Undo reverts the most recent transaction on t. It returns the new content
// and the caret offset, or ok=false when there was nothing to undo.
func (h *History) Undo(t *Text) (content string, cursor int, ok bool) {
	h.FinishTransaction()
	if len(h.undo) == 0 {
		return "", 0, false
	}

	i := len(h.undo) - 1
	tx := h.undo[i]
	h.undo[i] = nil
	h.undo = h.undo[:i]

	for j := len(tx.Commands) - 1; j >= 0; j-- {
		tx.Commands[j].Revert(t)
	}
	h.redo = append(h.redo, tx)
	return t.String(), tx.Commands[0].Inverse().CursorAfter(), true
}

// Redo reapplies the most recently undone transaction in original order.
func (h *History) Redo(t *Text) (content string, cursor int, ok bool) {
	h.FinishTransaction()
	if len(h.redo) == 0 {
		return "", 0, false
	}

	i := len(h.redo) - 1
	tx := h.redo[i]
	h.redo[i] = nil
	h.redo = h.redo[:i]

	for _, c := range tx.Commands {
		c.Apply(t)
	}
	h.undo = append(h.undo, tx)
	h.enforceLimits()
	return t.String(), tx.Commands[len(tx.Commands)-1].CursorAfter(), true
}

func (h *History) CanUndo() bool {
	return len(h.undo) > 0 || (h.current != nil && len(h.current.Commands) > 0)
}

func (h *History) CanRedo() bool { return len(h.redo) > 0 }

func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.current = nil
	h.stackBytes = 0
}

func (h *History) Stats() HistoryStats {
	pending := 0
	if h.current != nil {
		pending = len(h.current.Commands)
	}
	return HistoryStats{
		UndoCount:      len(h.undo),
		RedoCount:      len(h.redo),
		Pending:        pending,
		MemoryUsage:    h.memoryUsage(),
		MaxHistorySize: h.opt.MaxTransactions,
		MaxMemoryBytes: h.opt.MaxMemoryBytes,
	}
}
