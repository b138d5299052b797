package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// The interchange format is a column-major JSON document:
//
//	{"Open":[100,105],"High":[108,112],"Low":[98,103],"Close":[105,110],"Volume":[1000,1200]}
//
// It is the boundary encoding consumed and produced by the command dispatch
// layer and must round-trip through a Dataset with full float64 fidelity.

// MarshalInterchange encodes the dataset as a column-major JSON document.
// Columns are written in the dataset's own column order.
func MarshalInterchange(d *Dataset) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("nil dataset")
	}

	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, col := range d.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}

		name, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}

		buf.Write(name)
		buf.WriteString(":[")

		for j, row := range d.Rows {
			if j > 0 {
				buf.WriteByte(',')
			}

			v, _ := row.Value(col)
			buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}

		buf.WriteByte(']')
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalInterchange decodes a column-major JSON document into a Dataset.
// Unknown columns are ignored; known columns must all have the same length.
func UnmarshalInterchange(data []byte) (*Dataset, error) {
	var doc map[string][]float64
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode interchange document: %w", err)
	}

	d := &Dataset{}

	length := -1

	for _, col := range DefaultColumns {
		values, ok := doc[col]
		if !ok {
			continue
		}

		if length == -1 {
			length = len(values)
		} else if len(values) != length {
			return nil, fmt.Errorf("column %s has %d values, want %d", col, len(values), length)
		}

		d.Columns = append(d.Columns, col)
	}

	if length <= 0 {
		return d, nil
	}

	d.Rows = make([]Row, length)
	for _, col := range d.Columns {
		for i, v := range doc[col] {
			d.Rows[i].Set(col, v)
		}
	}

	return d, nil
}
