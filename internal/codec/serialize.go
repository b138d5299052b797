package codec

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/candlepad/candlepad/internal/dataset"
)

// Serialize renders a dataset back into table-constructor source:
//
//	prices = pd.DataFrame({
//	    'Open': [100, 105],
//	    'High': [108, 112.5],
//	})
//
// Integral values render without a decimal point; fractional values render
// with exactly one decimal digit. Column order is the dataset's own.
func Serialize(d *dataset.Dataset, variableName string) string {
	lines := []string{variableName + " = pd.DataFrame({"}

	for i, col := range d.Columns {
		values := make([]string, d.Len())
		for j, row := range d.Rows {
			v, _ := row.Value(col)
			values[j] = formatValue(v)
		}

		comma := ","
		if i == len(d.Columns)-1 {
			comma = ""
		}

		lines = append(lines, fmt.Sprintf("    '%s': [%s]%s", col, strings.Join(values, ", "), comma))
	}

	lines = append(lines, "})")

	return strings.Join(lines, "\n")
}

// Replace splices a re-serialized dataset definition into buffer text. The
// existing definition span is replaced in place; when the variable has no
// definition the fragment is appended at the end of the buffer after a blank
// line.
func Replace(bufferText, variableName string, d *dataset.Dataset) string {
	code := Serialize(d, variableName)

	start, end, ok := FindDefinition(bufferText, variableName)
	if !ok {
		return bufferText + "\n\n" + code
	}

	lines := strings.Split(bufferText, "\n")

	var out []string
	out = append(out, lines[:start]...)
	out = append(out, strings.Split(code, "\n")...)
	out = append(out, lines[end+1:]...)

	return strings.Join(out, "\n")
}

// formatValue renders a float for source output: bare integer when the value
// is integral, otherwise exactly one decimal digit.
func formatValue(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.IsInteger() {
		return d.String()
	}

	return d.Round(1).StringFixed(1)
}
