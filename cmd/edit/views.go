package main

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"github.com/candlepad/candlepad/internal/dataset"
)

// NewCandleTable creates the table listing every candle's OHLCV values.
func NewCandleTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Open", Width: 10},
		{Title: "High", Width: 10},
		{Title: "Low", Width: 10},
		{Title: "Close", Width: 10},
		{Title: "Volume", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(7),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true)
	s.Selected = s.Selected.Bold(true)
	t.SetStyles(s)

	return t
}

// UpdateCandleTable refreshes the table rows from the dataset and moves the
// table cursor to the selected candle.
func UpdateCandleTable(t table.Model, d *dataset.Dataset, selected int) table.Model {
	rows := make([]table.Row, d.Len())
	for i, r := range d.Rows {
		rows[i] = table.Row{
			strconv.Itoa(i),
			FormatPrice(r.Open),
			FormatPrice(r.High),
			FormatPrice(r.Low),
			FormatPrice(r.Close),
			FormatPrice(r.Volume),
		}
	}

	t.SetRows(rows)
	t.SetCursor(selected)

	return t
}
