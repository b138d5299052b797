// Package dataset defines the tabular OHLCV value type shared by the chart
// renderer, the constraint engine, and the buffer codec.
package dataset

import "slices"

// Column names as they appear in buffer source and in the interchange format.
const (
	ColumnOpen   = "Open"
	ColumnHigh   = "High"
	ColumnLow    = "Low"
	ColumnClose  = "Close"
	ColumnVolume = "Volume"
)

// RequiredColumns are the columns every dataset must define.
var RequiredColumns = []string{ColumnOpen, ColumnHigh, ColumnLow, ColumnClose}

// DefaultColumns is the canonical column order used when a dataset is built
// programmatically rather than parsed from source.
var DefaultColumns = []string{ColumnOpen, ColumnHigh, ColumnLow, ColumnClose, ColumnVolume}

// Row is a single candlestick bar.
//
// The engine-maintained invariant is High >= max(Open, Close) and
// Low <= min(Open, Close). A row may be received in a violating state; only
// rows produced by the constraint engine are guaranteed valid.
type Row struct {
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Value returns the named column of the row. The second return value is false
// for unknown column names.
func (r Row) Value(column string) (float64, bool) {
	switch column {
	case ColumnOpen:
		return r.Open, true
	case ColumnHigh:
		return r.High, true
	case ColumnLow:
		return r.Low, true
	case ColumnClose:
		return r.Close, true
	case ColumnVolume:
		return r.Volume, true
	}

	return 0, false
}

// Set assigns the named column of the row. Unknown column names are ignored
// and reported via the return value.
func (r *Row) Set(column string, value float64) bool {
	switch column {
	case ColumnOpen:
		r.Open = value
	case ColumnHigh:
		r.High = value
	case ColumnLow:
		r.Low = value
	case ColumnClose:
		r.Close = value
	case ColumnVolume:
		r.Volume = value
	default:
		return false
	}

	return true
}

// Dataset is an ordered sequence of rows. Insertion order is chart
// left-to-right order and the row index is the stable identifier for the
// lifetime of one edit.
//
// Columns records the column order the dataset was defined with so that
// serializing back to source preserves it.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// New returns an empty dataset with the canonical column order.
func New() *Dataset {
	return &Dataset{Columns: slices.Clone(DefaultColumns)}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}

	return len(d.Rows)
}

// HasColumn reports whether the dataset defines the named column.
func (d *Dataset) HasColumn(column string) bool {
	return slices.Contains(d.Columns, column)
}

// MissingColumns returns the required OHLC columns the dataset does not
// define, in canonical order.
func (d *Dataset) MissingColumns() []string {
	var missing []string

	for _, col := range RequiredColumns {
		if !d.HasColumn(col) {
			missing = append(missing, col)
		}
	}

	return missing
}

// Clone returns a deep copy of the dataset. Callers that hand a dataset
// across a mutation boundary must clone first; the codec and the constraint
// engine both rely on this.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}

	return &Dataset{
		Columns: slices.Clone(d.Columns),
		Rows:    slices.Clone(d.Rows),
	}
}

// Equal reports exact equality of column order and every row value.
func (d *Dataset) Equal(other *Dataset) bool {
	if d == nil || other == nil {
		return d.Len() == 0 && other.Len() == 0
	}

	return slices.Equal(d.Columns, other.Columns) && slices.Equal(d.Rows, other.Rows)
}
