// Package engine applies bounded point-adjustments to individual candles
// while keeping High/Low consistent with Open/Close.
package engine

import (
	"math"
	"strings"

	"github.com/candlepad/candlepad/internal/dataset"
	"github.com/candlepad/candlepad/pkg/errors"
)

// Field identifies the candle value targeted by an adjustment.
type Field string

const (
	FieldOpen  Field = "open"
	FieldHigh  Field = "high"
	FieldLow   Field = "low"
	FieldClose Field = "close"
)

// Step is the fixed price delta applied per adjustment. Callers invoke
// Adjust repeatedly for larger moves.
const Step = 1.0

// ParseField converts a host-supplied field name into a Field.
func ParseField(name string) (Field, error) {
	switch Field(strings.ToLower(name)) {
	case FieldOpen:
		return FieldOpen, nil
	case FieldHigh:
		return FieldHigh, nil
	case FieldLow:
		return FieldLow, nil
	case FieldClose:
		return FieldClose, nil
	}

	return "", errors.Newf(errors.ErrCodeInvalidField, "invalid value type: %s", name)
}

// Adjust moves one field of one candle by direction*Step and re-derives the
// OHLC validity invariants for that candle:
//
//   - Open/Close edits extend High/Low outward when they push through the
//     current boundary. The range only ever widens; it is never shrunk.
//   - High edits are clamped so High never drops below max(Open, Close, Low).
//   - Low edits are clamped so Low never rises above min(Open, Close, High).
//
// Saturation is silent: a clamped edit succeeds and the clamp is visible only
// in the resulting values. All rows other than index are returned untouched.
// On validation failure the original dataset is returned unchanged alongside
// the error.
func Adjust(d *dataset.Dataset, index int, field Field, direction int) (*dataset.Dataset, error) {
	if index < 0 || index >= d.Len() {
		return d, errors.Newf(errors.ErrCodeIndexOutOfRange, "candle index %d out of range", index)
	}

	if field != FieldOpen && field != FieldHigh && field != FieldLow && field != FieldClose {
		return d, errors.Newf(errors.ErrCodeInvalidField, "invalid value type: %s", field)
	}

	if direction != 1 && direction != -1 {
		return d, errors.Newf(errors.ErrCodeInvalidDirection, "invalid direction: %d", direction)
	}

	out := d.Clone()
	row := &out.Rows[index]

	delta := Step * float64(direction)

	switch field {
	case FieldOpen, FieldClose:
		if field == FieldOpen {
			row.Open += delta
		} else {
			row.Close += delta
		}

		row.High = math.Max(row.High, math.Max(row.Open, row.Close))
		row.Low = math.Min(row.Low, math.Min(row.Open, row.Close))

	case FieldHigh:
		floor := math.Max(math.Max(row.Open, row.Close), row.Low)
		row.High = math.Max(row.High+delta, floor)

	case FieldLow:
		ceiling := math.Min(math.Min(row.Open, row.Close), row.High)
		row.Low = math.Min(row.Low+delta, ceiling)
	}

	return out, nil
}
