// Package history keeps a linear undo/redo log of boards.
package history

import (
	"github.com/domino14/freecell/board"
)

// Snapshot is a compact copy of a board: pile kinds and cards, in pile
// order.
type Snapshot []board.PileData

func Take(b *board.Board) Snapshot {
	return Snapshot(b.Piles())
}

// Board rebuilds the board the snapshot was taken from.
func (s Snapshot) Board() *board.Board {
	return board.FromPiles(s)
}

// Manager is a log of snapshots with a cursor. Recording a board after an
// undo discards every snapshot past the cursor.
type Manager struct {
	snapshots []Snapshot
	cursor    int
}

// NewManager starts a log whose first entry is initial.
func NewManager(initial *board.Board) *Manager {
	return &Manager{snapshots: []Snapshot{Take(initial)}}
}

// Record appends b after the cursor and moves the cursor onto it.
func (m *Manager) Record(b *board.Board) {
	m.snapshots = append(m.snapshots[:m.cursor+1], Take(b))
	m.cursor++
}

// Undo steps the cursor back and returns the board there. At the start of
// the log it returns the current board and changes nothing.
func (m *Manager) Undo() *board.Board {
	if m.cursor > 0 {
		m.cursor--
	}
	return m.Current()
}

// Redo steps forward again after an Undo. The second return value is false
// if there is nothing to redo.
func (m *Manager) Redo() (*board.Board, bool) {
	if m.cursor+1 >= len(m.snapshots) {
		return m.Current(), false
	}
	m.cursor++
	return m.Current(), true
}

func (m *Manager) Current() *board.Board {
	return m.snapshots[m.cursor].Board()
}

// Reset clears the log and starts over from b.
func (m *Manager) Reset(b *board.Board) {
	m.snapshots = []Snapshot{Take(b)}
	m.cursor = 0
}

func (m *Manager) Len() int { return len(m.snapshots) }

func (m *Manager) Cursor() int { return m.cursor }

func (m *Manager) CanUndo() bool { return m.cursor > 0 }

func (m *Manager) CanRedo() bool { return m.cursor+1 < len(m.snapshots) }
