package session

import "github.com/candlepad/candlepad/internal/engine"

// Command is an editor command applied through the store.
type Command interface {
	isCommand()
}

// AdjustCandle moves one field of one candle by a single step in the given
// direction. Larger moves are repeated invocations.
type AdjustCandle struct {
	Index     int
	Field     engine.Field
	Direction int
}

// MoveCursor repositions the editing cursor. It is a pure state transition
// with no dataset or buffer I/O.
type MoveCursor struct {
	Row int
	Col int
}

func (AdjustCandle) isCommand() {}

func (MoveCursor) isCommand() {}
