// Package codec round-trips between buffer source text and the in-memory
// tabular dataset: it evaluates buffer text in a sandboxed Starlark context,
// locates dataset definitions in source, and serializes datasets back into
// the same table-constructor syntax.
package codec

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	starmath "go.starlark.net/lib/math"
	startime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"github.com/candlepad/candlepad/internal/dataset"
	"github.com/candlepad/candlepad/pkg/errors"
)

// DefaultMaxSteps bounds the Starlark execution budget per evaluation so a
// runaway buffer (e.g. an unbounded loop) cannot block a command forever.
const DefaultMaxSteps = 1_000_000

// ParseResult is the outcome of evaluating a buffer and extracting a dataset.
// Exactly one of Dataset and Err is set.
type ParseResult struct {
	Dataset optional.Option[*dataset.Dataset]
	Err     error
}

// Success reports whether the parse produced a dataset.
func (r ParseResult) Success() bool {
	return r.Err == nil
}

func success(d *dataset.Dataset) ParseResult {
	return ParseResult{Dataset: optional.Some(d)}
}

func failure(err error) ParseResult {
	return ParseResult{Dataset: optional.None[*dataset.Dataset](), Err: err}
}

// Evaluator evaluates buffer text in an isolated Starlark context that
// exposes only data-construction primitives: the DataFrame table
// constructor, date/time helpers, math, and basic random helpers. Buffers
// cannot load modules, touch the filesystem, or spawn processes, and any
// print output is captured and discarded.
type Evaluator struct {
	// MaxSteps is the Starlark execution-step budget per evaluation.
	// Zero means unbounded.
	MaxSteps uint64
}

// NewEvaluator returns an evaluator with the default execution budget.
func NewEvaluator() *Evaluator {
	return &Evaluator{MaxSteps: DefaultMaxSteps}
}

// Parse evaluates bufferText and extracts the named dataset variable.
//
// When evaluation fails because a datetime shortcut (now/today) was invoked
// on the datetime module itself rather than its class, the evaluation is
// retried exactly once with an extended datetime context that exposes those
// shortcuts at module scope; a second failure surfaces as a datetime usage
// error. On success the returned dataset is a defensive copy: mutating it
// never affects the evaluation context's own bindings.
func (e *Evaluator) Parse(bufferText, variableName string) ParseResult {
	bindings, err := e.exec(bufferText, false)
	if err != nil {
		if !isDatetimeShortcutError(err) {
			return failure(errors.Wrapf(errors.ErrCodeEvaluationFailed, err, "error parsing buffer"))
		}

		bindings, err = e.exec(bufferText, true)
		if err != nil {
			return failure(errors.Wrapf(errors.ErrCodeDatetimeUsage, err,
				"datetime usage error: use 'datetime.datetime.now()' instead of 'datetime.now()'"))
		}
	}

	value, ok := bindings[variableName]
	if !ok {
		return failure(errors.Newf(errors.ErrCodeVariableNotFound,
			"variable '%s' not found. %s", variableName, describeBindings(bindings)))
	}

	frame, ok := value.(*dataFrameValue)
	if !ok {
		return failure(errors.Newf(errors.ErrCodeNotADataset,
			"variable '%s' is not a dataset (got %s)", variableName, value.Type()))
	}

	if missing := frame.ds.MissingColumns(); len(missing) > 0 {
		return failure(errors.Newf(errors.ErrCodeMissingColumns,
			"dataset missing required columns: %v", missing))
	}

	return success(frame.ds.Clone())
}

// exec runs the buffer in a fresh thread with a fresh predeclared
// environment. Starlark resolves top-level bindings into a single module
// namespace, so the returned dict covers both "local" and "global" lookups.
func (e *Evaluator) exec(src string, extendedDatetime bool) (starlark.StringDict, error) {
	thread := &starlark.Thread{
		Name: "buffer",
		// Capture and discard anything the buffer prints.
		Print: func(_ *starlark.Thread, _ string) {},
	}

	if e.MaxSteps > 0 {
		thread.SetMaxExecutionSteps(e.MaxSteps)
	}

	opts := &syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}

	return starlark.ExecFileOptions(opts, thread, "<buffer>", src, e.predeclared(extendedDatetime))
}

// predeclared builds the evaluation environment. Only data-construction
// primitives are exposed.
func (e *Evaluator) predeclared(extendedDatetime bool) starlark.StringDict {
	dataFrame := starlark.NewBuiltin("DataFrame", newDataFrame)

	pd := &starlarkstruct.Module{
		Name:    "pd",
		Members: starlark.StringDict{"DataFrame": dataFrame},
	}

	return starlark.StringDict{
		"pd":        pd,
		"pandas":    pd,
		"DataFrame": dataFrame,
		"datetime":  datetimeModule(extendedDatetime),
		"math":      starmath.Module,
		"random":    randomModule(),
	}
}

// datetimeModule mimics the shape of a module whose datetime class carries
// the now/today/utcnow shortcuts. With extended=true the shortcuts are also
// exposed at module scope, which is what the one-shot retry relies on.
func datetimeModule(extended bool) *starlarkstruct.Module {
	class := &starlarkstruct.Module{
		Name: "datetime",
		Members: starlark.StringDict{
			"now":    starlark.NewBuiltin("now", dtNow),
			"today":  starlark.NewBuiltin("today", dtToday),
			"utcnow": starlark.NewBuiltin("utcnow", dtUTCNow),
		},
	}

	members := starlark.StringDict{"datetime": class}

	if extended {
		for name, member := range class.Members {
			members[name] = member
		}
	}

	return &starlarkstruct.Module{Name: "datetime", Members: members}
}

func dtNow(_ *starlark.Thread, _ *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
	return startime.Time(time.Now()), nil
}

func dtToday(_ *starlark.Thread, _ *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
	return startime.Time(time.Now().Truncate(24 * time.Hour)), nil
}

func dtUTCNow(_ *starlark.Thread, _ *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
	return startime.Time(time.Now().UTC()), nil
}

// randomModule exposes basic numeric random helpers.
func randomModule() *starlarkstruct.Module {
	return &starlarkstruct.Module{
		Name: "random",
		Members: starlark.StringDict{
			"random": starlark.NewBuiltin("random", func(_ *starlark.Thread, _ *starlark.Builtin, _ starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
				return starlark.Float(rand.Float64()), nil
			}),
			"randint": starlark.NewBuiltin("randint", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var lo, hi int
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &lo, &hi); err != nil {
					return nil, err
				}
				if hi < lo {
					return nil, fmt.Errorf("%s: empty range [%d, %d]", b.Name(), lo, hi)
				}

				return starlark.MakeInt(lo + rand.Intn(hi-lo+1)), nil
			}),
			"uniform": starlark.NewBuiltin("uniform", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var lo, hi float64
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &lo, &hi); err != nil {
					return nil, err
				}

				return starlark.Float(lo + rand.Float64()*(hi-lo)), nil
			}),
		},
	}
}

// isDatetimeShortcutError reports whether an evaluation error is an
// attribute-style failure for the now/today shortcuts on a module value.
func isDatetimeShortcutError(err error) bool {
	msg := err.Error()
	if !strings.Contains(msg, "field or method") {
		return false
	}

	return strings.Contains(msg, ".now") || strings.Contains(msg, ".today")
}

// describeBindings summarizes the other top-level bindings for the
// VariableNotFound diagnostic, listing dataset-typed bindings first when any
// exist.
func describeBindings(bindings starlark.StringDict) string {
	var frames, others []string

	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if strings.HasPrefix(name, "_") {
			continue
		}

		value := bindings[name]
		entry := fmt.Sprintf("%s(%s)", name, value.Type())

		if _, ok := value.(*dataFrameValue); ok {
			frames = append(frames, entry)
		} else {
			others = append(others, entry)
		}
	}

	switch {
	case len(frames) > 0:
		return "Available datasets: " + strings.Join(frames, ", ")
	case len(others) > 0:
		return "No datasets containing OHLC data found. Available variables: " + strings.Join(others, ", ")
	default:
		return "No datasets containing OHLC data found"
	}
}
