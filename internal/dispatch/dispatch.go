// Package dispatch is the string boundary between the engine and its host.
// Every operation takes primitive arguments and returns a plain string; any
// internal failure is converted to an "Error: <message>" line so nothing
// structured ever crosses the boundary.
package dispatch

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/candlepad/candlepad/internal/chart"
	"github.com/candlepad/candlepad/internal/codec"
	"github.com/candlepad/candlepad/internal/dataset"
	"github.com/candlepad/candlepad/internal/engine"
	"github.com/candlepad/candlepad/internal/logger"
	"github.com/candlepad/candlepad/internal/session"
	"github.com/candlepad/candlepad/internal/version"
	"github.com/candlepad/candlepad/pkg/errors"
)

// Dispatcher exposes the engine's operations to the host.
type Dispatcher struct {
	store     *session.Store
	renderer  *chart.Renderer
	evaluator *codec.Evaluator
	logger    *logger.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRenderer overrides the chart renderer.
func WithRenderer(r *chart.Renderer) Option {
	return func(d *Dispatcher) {
		d.renderer = r
	}
}

// WithEvaluator overrides the buffer evaluator.
func WithEvaluator(e *codec.Evaluator) Option {
	return func(d *Dispatcher) {
		d.evaluator = e
	}
}

// NewDispatcher creates a dispatcher over the given session store.
func NewDispatcher(store *session.Store, log *logger.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:     store,
		renderer:  chart.NewRenderer(),
		evaluator: codec.NewEvaluator(),
		logger:    log,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// RenderSample renders the built-in sample dataset.
func (d *Dispatcher) RenderSample() string {
	return d.guard("render-sample", func() (string, error) {
		return d.renderer.Render(dataset.SampleDataset()), nil
	})
}

// RenderDataset renders a dataset supplied in the column-major interchange
// format.
func (d *Dispatcher) RenderDataset(payload string) string {
	return d.guard("render-dataset", func() (string, error) {
		ds, err := dataset.UnmarshalInterchange([]byte(payload))
		if err != nil {
			return "", err
		}

		return d.renderer.Render(ds), nil
	})
}

// DatasetSlice returns one candle's values from an interchange payload as a
// single formatted line.
func (d *Dispatcher) DatasetSlice(payload string, index int) string {
	return d.guard("dataset-slice", func() (string, error) {
		ds, err := dataset.UnmarshalInterchange([]byte(payload))
		if err != nil {
			return "", err
		}

		if index < 0 || index >= ds.Len() {
			return "", errors.Newf(errors.ErrCodeIndexOutOfRange, "candle index %d out of range [0, %d)", index, ds.Len())
		}

		row := ds.Rows[index]
		out := "Candle " + strconv.Itoa(index) + ":"
		for _, col := range ds.Columns {
			v, _ := row.Value(col)
			out += " " + col + "=" + strconv.FormatFloat(v, 'g', -1, 64)
		}

		return out, nil
	})
}

// AdjustCandle applies one unit adjustment through the session store and
// returns the re-rendered chart for the updated buffer.
func (d *Dispatcher) AdjustCandle(sourceID, variableName string, index int, fieldName string, direction int) string {
	return d.guard("adjust-candle", func() (string, error) {
		field, err := engine.ParseField(fieldName)
		if err != nil {
			return "", err
		}

		key := session.Key{SourceID: sourceID, VariableName: variableName}

		state, err := d.store.Apply(key, session.AdjustCandle{Index: index, Field: field, Direction: direction})
		if err != nil {
			return "", err
		}

		result := d.evaluator.Parse(state.BufferContent, variableName)
		if !result.Success() {
			return "", result.Err
		}

		return d.renderer.Render(result.Dataset.TakeOr(nil)), nil
	})
}

// PriceAtRow maps a chart grid row back to the price it represents for the
// dataset in an interchange payload. The candle index selects the cursor's
// candle and is validated, but the price depends only on the row and the
// dataset's price range.
func (d *Dispatcher) PriceAtRow(payload string, index, row int) string {
	return d.guard("price-at-row", func() (string, error) {
		ds, err := dataset.UnmarshalInterchange([]byte(payload))
		if err != nil {
			return "", err
		}

		if index < 0 || index >= ds.Len() {
			return "", errors.Newf(errors.ErrCodeIndexOutOfRange, "candle index %d out of range [0, %d)", index, ds.Len())
		}

		price, err := d.renderer.PriceAt(ds, row)
		if err != nil {
			return "", err
		}

		return strconv.FormatFloat(price, 'f', 2, 64), nil
	})
}

// Version reports the engine version.
func (d *Dispatcher) Version() string {
	return version.GetVersion()
}

// CheckCompatibility verifies a client version against the engine version.
func (d *Dispatcher) CheckCompatibility(clientVersion string) string {
	return d.guard("check-compatibility", func() (string, error) {
		if err := version.CheckCompatibility(version.GetVersion(), clientVersion); err != nil {
			return "", err
		}

		return "OK", nil
	})
}

// guard runs one operation and flattens every failure, including panics, into
// an "Error: <message>" string.
func (d *Dispatcher) guard(op string, fn func() (string, error)) string {
	out, err := func() (out string, err error) {
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("operation panicked", zap.String("operation", op), zap.Any("panic", r))
				err = errors.Newf(errors.ErrCodeUnknown, "internal failure in %s", op)
			}
		}()

		return fn()
	}()
	if err != nil {
		return "Error: " + err.Error()
	}

	return out
}
