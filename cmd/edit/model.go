package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/candlepad/candlepad/internal/buffer"
	"github.com/candlepad/candlepad/internal/chart"
	"github.com/candlepad/candlepad/internal/codec"
	"github.com/candlepad/candlepad/internal/dataset"
	"github.com/candlepad/candlepad/internal/engine"
	"github.com/candlepad/candlepad/internal/logger"
	"github.com/candlepad/candlepad/internal/session"
)

// fieldOrder is the tab cycle through a candle's editable fields.
var fieldOrder = []engine.Field{engine.FieldOpen, engine.FieldHigh, engine.FieldLow, engine.FieldClose}

// Model is the main Bubble Tea model for the candle editor.
type Model struct {
	path     string
	variable string

	provider  *buffer.MemoryProvider
	store     *session.Store
	evaluator *codec.Evaluator
	renderer  *chart.Renderer

	dataset     *dataset.Dataset
	chart       string
	candle      int
	field       int
	candleTable table.Model

	status string
	err    error
	width  int
	height int
}

// NewModel loads the buffer file into an in-memory provider and builds the
// editor model around a session store.
func NewModel(path, variable string) (Model, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return Model{}, fmt.Errorf("read buffer file: %w", err)
	}

	provider := buffer.NewMemoryProvider()
	if err := provider.SetText(path, string(text)); err != nil {
		return Model{}, err
	}

	// The TUI owns the terminal, so the store logs into the void.
	m := Model{
		path:        path,
		variable:    variable,
		provider:    provider,
		store:       session.NewStore(provider, logger.NewNopLogger()),
		evaluator:   codec.NewEvaluator(),
		renderer:    chart.NewRenderer(),
		candleTable: NewCandleTable(),
	}
	m.refresh()

	return m, nil
}

func (m *Model) key() session.Key {
	return session.Key{SourceID: m.path, VariableName: m.variable}
}

// refresh re-derives the dataset, chart, and table from the current buffer
// text.
func (m *Model) refresh() {
	text, ok := m.provider.GetText(m.path)
	if !ok {
		m.err = fmt.Errorf("buffer '%s' is not available", m.path)

		return
	}

	result := m.evaluator.Parse(text, m.variable)
	if !result.Success() {
		m.err = result.Err

		return
	}

	m.err = nil
	m.dataset = result.Dataset.TakeOr(nil)
	m.chart = m.renderer.Render(m.dataset)

	if m.candle >= m.dataset.Len() {
		m.candle = m.dataset.Len() - 1
	}

	if m.candle < 0 {
		m.candle = 0
	}

	m.candleTable = UpdateCandleTable(m.candleTable, m.dataset, m.candle)
}

func (m *Model) adjust(direction int) {
	_, err := m.store.Apply(m.key(), session.AdjustCandle{
		Index:     m.candle,
		Field:     fieldOrder[m.field],
		Direction: direction,
	})
	if err != nil {
		m.err = err

		return
	}

	m.status = ""
	m.refresh()
}

func (m *Model) moveCandle(delta int) {
	if m.dataset == nil {
		return
	}

	next := m.candle + delta
	if next < 0 || next >= m.dataset.Len() {
		return
	}

	m.candle = next
	m.candleTable = UpdateCandleTable(m.candleTable, m.dataset, m.candle)

	// Keep the session cursor on the candle's center column.
	_, _ = m.store.Apply(m.key(), session.MoveCursor{Row: 0, Col: m.candle*chart.CandleWidth + 1})
}

// save writes the current buffer text back to the file it was loaded from.
func (m *Model) save() tea.Cmd {
	text, ok := m.provider.GetText(m.path)
	if !ok {
		return func() tea.Msg { return SaveErrorMsg{Err: fmt.Errorf("buffer '%s' is not available", m.path)} }
	}

	path := m.path

	return func() tea.Msg {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return SaveErrorMsg{Err: err}
		}

		return SavedMsg{Path: path}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			m.adjust(1)
			return m, nil
		case "down", "j":
			m.adjust(-1)
			return m, nil
		case "left", "h":
			m.moveCandle(-1)
			return m, nil
		case "right", "l":
			m.moveCandle(1)
			return m, nil
		case "tab":
			m.field = (m.field + 1) % len(fieldOrder)
			return m, nil
		case "s":
			return m, m.save()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.candleTable.SetWidth(msg.Width)

		return m, nil

	case SavedMsg:
		m.status = fmt.Sprintf("Saved %s", msg.Path)

		return m, nil

	case SaveErrorMsg:
		m.err = msg.Err

		return m, nil
	}

	var cmd tea.Cmd
	m.candleTable, cmd = m.candleTable.Update(msg)

	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render(fmt.Sprintf("Candlepad - %s (%s)", m.path, m.variable)))
	s.WriteString("\n\n")

	if m.err != nil {
		s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n\n")
	}

	if m.chart != "" {
		s.WriteString(m.chart)
		s.WriteString("\n\n")
	}

	if m.dataset != nil {
		s.WriteString(fmt.Sprintf("Candle %d, editing %s\n", m.candle, FieldStyle.Render(string(fieldOrder[m.field]))))
		s.WriteString(m.candleTable.View())
		s.WriteString("\n")
	}

	if m.status != "" {
		s.WriteString(m.status)
		s.WriteString("\n")
	}

	s.WriteString(HelpStyle.Render("←/→: candle | ↑/↓: adjust | Tab: field | s: save | q: quit"))

	return s.String()
}
