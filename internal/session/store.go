// Package session holds per-document editing state and orchestrates the
// codec, constraint engine, and buffer provider for each command.
package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/candlepad/candlepad/internal/buffer"
	"github.com/candlepad/candlepad/internal/codec"
	"github.com/candlepad/candlepad/internal/engine"
	"github.com/candlepad/candlepad/internal/logger"
	"github.com/candlepad/candlepad/pkg/errors"
)

// DefaultCapacity bounds the number of live sessions before least-recently
// used entries are evicted. Evicted sessions are recreated from the buffer on
// next access, so eviction loses only the cursor position.
const DefaultCapacity = 64

// Key identifies one editing session.
type Key struct {
	SourceID     string
	VariableName string
}

type entry struct {
	state      *State
	lastAccess time.Time
}

// Store is the process-wide session registry. Commands for the same key must
// not run concurrently; the internal lock only protects the registry map
// against concurrent access from different keys.
type Store struct {
	mu        sync.Mutex
	provider  buffer.Provider
	evaluator *codec.Evaluator
	logger    *logger.Logger
	capacity  int
	now       func() time.Time
	entries   map[Key]*entry
}

// Option configures a Store.
type Option func(*Store)

// WithCapacity overrides the LRU capacity.
func WithCapacity(n int) Option {
	return func(s *Store) {
		s.capacity = n
	}
}

// WithClock injects the time source used for LRU bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithEvaluator overrides the buffer evaluator.
func WithEvaluator(e *codec.Evaluator) Option {
	return func(s *Store) {
		s.evaluator = e
	}
}

// NewStore creates a session store backed by the given buffer provider.
func NewStore(provider buffer.Provider, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		provider:  provider,
		evaluator: codec.NewEvaluator(),
		logger:    log,
		capacity:  DefaultCapacity,
		now:       time.Now,
		entries:   make(map[Key]*entry),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Resolve returns the session state for the pair, creating it from the
// current buffer text with a cursor at (0, 0) when absent.
func (s *Store) Resolve(sourceID, variableName string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.resolveLocked(Key{SourceID: sourceID, VariableName: variableName})
}

// Apply runs one command against the keyed session. On success the returned
// state has already been installed under the key; on failure the stored state
// and the buffer are left exactly as they were.
func (s *Store) Apply(key Key, command Command) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.resolveLocked(key)
	if err != nil {
		return nil, err
	}

	switch cmd := command.(type) {
	case MoveCursor:
		next := state.WithCursor(Cursor{Row: cmd.Row, Col: cmd.Col})
		s.install(key, next)

		return next, nil
	case AdjustCandle:
		return s.applyAdjust(key, state, cmd)
	default:
		return state, errors.Newf(errors.ErrCodeUnknownCommand, "unknown command %T", command)
	}
}

func (s *Store) resolveLocked(key Key) (*State, error) {
	if e, ok := s.entries[key]; ok {
		e.lastAccess = s.now()

		return e.state, nil
	}

	text, ok := s.provider.GetText(key.SourceID)
	if !ok {
		return nil, errors.Newf(errors.ErrCodeBufferUnavailable, "buffer '%s' is not available", key.SourceID)
	}

	state := newState(key.SourceID, key.VariableName, text)
	s.install(key, state)
	s.logger.Debug("session created",
		zap.String("source", key.SourceID),
		zap.String("variable", key.VariableName),
		zap.String("revision", state.Revision))

	return state, nil
}

func (s *Store) applyAdjust(key Key, state *State, cmd AdjustCandle) (*State, error) {
	// The buffer is the source of truth; re-read it so host-side edits made
	// since the last command are picked up.
	text, ok := s.provider.GetText(key.SourceID)
	if !ok {
		return state, errors.Newf(errors.ErrCodeBufferUnavailable, "buffer '%s' is not available", key.SourceID)
	}

	result := s.evaluator.Parse(text, key.VariableName)
	if !result.Success() {
		return state, result.Err
	}

	adjusted, err := engine.Adjust(result.Dataset.TakeOr(nil), cmd.Index, cmd.Field, cmd.Direction)
	if err != nil {
		return state, err
	}

	updated := codec.Replace(text, key.VariableName, adjusted)
	if err := s.provider.SetText(key.SourceID, updated); err != nil {
		return state, errors.Wrap(errors.ErrCodeBufferUnavailable, "could not write buffer", err)
	}

	next := state.WithBuffer(updated)
	s.install(key, next)
	s.logger.Debug("candle adjusted",
		zap.String("source", key.SourceID),
		zap.String("variable", key.VariableName),
		zap.Int("index", cmd.Index),
		zap.String("field", string(cmd.Field)),
		zap.Int("direction", cmd.Direction),
		zap.String("revision", next.Revision))

	return next, nil
}

func (s *Store) install(key Key, state *State) {
	if _, ok := s.entries[key]; !ok && len(s.entries) >= s.capacity {
		s.evictOldest()
	}

	s.entries[key] = &entry{state: state, lastAccess: s.now()}
}

func (s *Store) evictOldest() {
	var (
		oldestKey Key
		oldest    time.Time
		found     bool
	)

	for key, e := range s.entries {
		if !found || e.lastAccess.Before(oldest) {
			oldestKey = key
			oldest = e.lastAccess
			found = true
		}
	}

	if !found {
		return
	}

	delete(s.entries, oldestKey)
	s.logger.Debug("session evicted",
		zap.String("source", oldestKey.SourceID),
		zap.String("variable", oldestKey.VariableName))
}
