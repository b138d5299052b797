// Package chart renders a tabular OHLCV dataset as a deterministic ASCII
// candlestick grid.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/candlepad/candlepad/internal/dataset"
	"github.com/candlepad/candlepad/pkg/errors"
)

// Default rendering parameters. Each candle occupies a 3-column slot with the
// wick/body drawn in the center column and the flanking columns left blank.
const (
	DefaultHeight = 10
	CandleWidth   = 3

	BullishGlyph = '^'
	BearishGlyph = 'v'
	WickGlyph    = '|'
	EmptyGlyph   = ' '
)

// Soft-failure messages. These are returned as chart output, not as errors,
// so the host can display them in place of a chart.
const (
	MsgNoData         = "No data to render."
	MsgFlatPriceRange = "Price range is flat, cannot render meaningful chart."
)

// Renderer draws datasets onto a fixed-height character grid. The zero value
// is not usable; use NewRenderer.
type Renderer struct {
	Height  int
	Bullish rune
	Bearish rune
	Wick    rune
}

// NewRenderer returns a renderer with the default height and glyphs.
func NewRenderer() *Renderer {
	return &Renderer{
		Height:  DefaultHeight,
		Bullish: BullishGlyph,
		Bearish: BearishGlyph,
		Wick:    WickGlyph,
	}
}

// Render draws the dataset as an ASCII candlestick chart.
//
// Identical datasets produce byte-identical output. Empty datasets, datasets
// missing OHLC columns, and flat price ranges fail softly with a
// human-readable message instead of a chart.
func (r *Renderer) Render(d *dataset.Dataset) string {
	if d.Len() == 0 {
		return MsgNoData
	}

	if missing := d.MissingColumns(); len(missing) > 0 {
		return fmt.Sprintf("Missing required columns: %v", missing)
	}

	minPrice, maxPrice := priceRange(d)
	if maxPrice == minPrice {
		return MsgFlatPriceRange
	}

	width := d.Len() * CandleWidth

	grid := make([][]rune, r.Height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = EmptyGlyph
		}
	}

	for i, row := range d.Rows {
		col := i*CandleWidth + 1

		// Wick first so the body overwrites it where they overlap.
		r.drawSpan(grid, col, r.rowFor(row.High, minPrice, maxPrice), r.rowFor(row.Low, minPrice, maxPrice), r.Wick)

		body := r.Bullish
		if row.Close < row.Open {
			body = r.Bearish
		}

		r.drawSpan(grid, col, r.rowFor(row.Open, minPrice, maxPrice), r.rowFor(row.Close, minPrice, maxPrice), body)
	}

	lines := make([]string, r.Height)
	for i, row := range grid {
		lines[i] = string(row)
	}

	return strings.Join(lines, "\n")
}

// PriceAt maps a chart grid row back to the price it represents, the inverse
// of the price-to-row mapping used by Render. Row 0 is the top of the chart.
func (r *Renderer) PriceAt(d *dataset.Dataset, row int) (float64, error) {
	if d.Len() == 0 {
		return 0, errors.New(errors.ErrCodeEmptyDataset, MsgNoData)
	}

	minPrice, maxPrice := priceRange(d)
	if maxPrice == minPrice {
		return 0, errors.New(errors.ErrCodeFlatPriceRange, MsgFlatPriceRange)
	}

	if row < 0 {
		row = 0
	}

	if row > r.Height-1 {
		row = r.Height - 1
	}

	return maxPrice - float64(row)/float64(r.Height-1)*(maxPrice-minPrice), nil
}

// RowFor returns the grid row for a price within the dataset's range.
// Exposed for cursor positioning in interactive clients.
func (r *Renderer) RowFor(d *dataset.Dataset, price float64) (int, error) {
	if d.Len() == 0 {
		return 0, errors.New(errors.ErrCodeEmptyDataset, MsgNoData)
	}

	minPrice, maxPrice := priceRange(d)
	if maxPrice == minPrice {
		return 0, errors.New(errors.ErrCodeFlatPriceRange, MsgFlatPriceRange)
	}

	return r.rowFor(price, minPrice, maxPrice), nil
}

// rowFor maps a price to a grid row. The mapping is affine and monotonically
// decreasing: row 0 is the highest price, Height-1 the lowest.
func (r *Renderer) rowFor(price, minPrice, maxPrice float64) int {
	norm := (price - minPrice) / (maxPrice - minPrice)

	row := int(math.Round((1 - norm) * float64(r.Height-1)))
	if row < 0 {
		row = 0
	}

	if row > r.Height-1 {
		row = r.Height - 1
	}

	return row
}

func (r *Renderer) drawSpan(grid [][]rune, col, a, b int, glyph rune) {
	top, bottom := a, b
	if top > bottom {
		top, bottom = bottom, top
	}

	for row := top; row <= bottom; row++ {
		grid[row][col] = glyph
	}
}

// priceRange returns min(all lows) and max(all highs).
func priceRange(d *dataset.Dataset) (minPrice, maxPrice float64) {
	minPrice = math.MaxFloat64
	maxPrice = -math.MaxFloat64

	for _, row := range d.Rows {
		if row.Low < minPrice {
			minPrice = row.Low
		}

		if row.High > maxPrice {
			maxPrice = row.High
		}
	}

	return minPrice, maxPrice
}
