package codec

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/candlepad/candlepad/internal/dataset"
)

// dataFrameValue is the Starlark value produced by the DataFrame constructor.
// It wraps the parsed dataset so Parse can recognize dataset-typed bindings.
type dataFrameValue struct {
	ds *dataset.Dataset
}

func (v *dataFrameValue) String() string {
	return fmt.Sprintf("<DataFrame %d rows>", v.ds.Len())
}

func (v *dataFrameValue) Type() string          { return "DataFrame" }
func (v *dataFrameValue) Freeze()               {}
func (v *dataFrameValue) Truth() starlark.Bool  { return starlark.Bool(v.ds.Len() > 0) }
func (v *dataFrameValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: DataFrame") }

// newDataFrame implements the DataFrame table constructor. It accepts a dict
// of column name to value list:
//
//	df = pd.DataFrame({'Open': [100, 105], 'High': [108, 112], ...})
//
// The five OHLCV columns must hold numbers; any other column is accepted and
// ignored so buffers may carry date or label columns alongside the prices.
func newDataFrame(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var data *starlark.Dict
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &data); err != nil {
		return nil, err
	}

	ds := &dataset.Dataset{}

	length := -1

	columns := make(map[string][]float64)

	for _, item := range data.Items() {
		name, ok := starlark.AsString(item[0])
		if !ok {
			return nil, fmt.Errorf("%s: column names must be strings, got %s", b.Name(), item[0].Type())
		}

		known := false

		for _, col := range dataset.DefaultColumns {
			if name == col {
				known = true

				break
			}
		}

		values, err := listToFloats(name, item[1], known)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}

		if !known {
			continue
		}

		if length == -1 {
			length = len(values)
		} else if len(values) != length {
			return nil, fmt.Errorf("%s: column %s has %d values, want %d", b.Name(), name, len(values), length)
		}

		ds.Columns = append(ds.Columns, name)
		columns[name] = values
	}

	if length > 0 {
		ds.Rows = make([]dataset.Row, length)
		for _, col := range ds.Columns {
			for i, v := range columns[col] {
				ds.Rows[i].Set(col, v)
			}
		}
	}

	return &dataFrameValue{ds: ds}, nil
}

// listToFloats converts a Starlark sequence into float64 values. For unknown
// (ignored) columns the element values are not type-checked, only iterated.
func listToFloats(column string, v starlark.Value, numeric bool) ([]float64, error) {
	iter := starlark.Iterate(v)
	if iter == nil {
		return nil, fmt.Errorf("column %s: value is not iterable", column)
	}
	defer iter.Done()

	var values []float64

	var elem starlark.Value
	for iter.Next(&elem) {
		if !numeric {
			continue
		}

		f, ok := starlark.AsFloat(elem)
		if !ok {
			return nil, fmt.Errorf("column %s: %s is not a number", column, elem.String())
		}

		values = append(values, f)
	}

	return values, nil
}
