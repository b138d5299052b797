package session

import "github.com/google/uuid"

// Cursor is a (row, col) position on the rendered chart grid.
type Cursor struct {
	Row int
	Col int
}

// State is one editing snapshot for a (source identity, variable name) pair.
// States are immutable: every successful command installs a brand-new State
// under the same key, never a mutation of the stored one. The buffer content
// is the single source of truth; datasets are always derived from it on
// demand and never cached across commands.
type State struct {
	// Revision identifies this snapshot in logs and diagnostics. A new
	// revision is minted on every replacement.
	Revision string

	SourceID      string
	VariableName  string
	BufferContent string
	Cursor        Cursor
}

func newState(sourceID, variableName, bufferContent string) *State {
	return &State{
		Revision:      uuid.New().String(),
		SourceID:      sourceID,
		VariableName:  variableName,
		BufferContent: bufferContent,
	}
}

// WithBuffer returns a copy of the state carrying new buffer content and a
// fresh revision.
func (s *State) WithBuffer(bufferContent string) *State {
	next := *s
	next.Revision = uuid.New().String()
	next.BufferContent = bufferContent

	return &next
}

// WithCursor returns a copy of the state carrying a new cursor position and a
// fresh revision.
func (s *State) WithCursor(cursor Cursor) *State {
	next := *s
	next.Revision = uuid.New().String()
	next.Cursor = cursor

	return &next
}
