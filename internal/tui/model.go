package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/finseva/finseva/internal/compare"
	"github.com/finseva/finseva/internal/domain"
	"github.com/finseva/finseva/internal/intake"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Form inputs in RegimeForm.Fields() order
	fields []domain.FormField
	inputs []textinput.Model
	focus  int

	comparator *compare.RegimeComparator
	report     *compare.Report

	// Validation or comparison error; compare is disabled while set
	err error
}

// NewModel creates a new application model
func NewModel(comparator *compare.RegimeComparator) Model {
	if comparator == nil {
		comparator = compare.NewRegimeComparator(nil)
	}

	fields := domain.RegimeForm{}.Fields()
	inputs := make([]textinput.Model, len(fields))
	for i, field := range fields {
		ti := textinput.New()
		ti.Placeholder = "0"
		ti.CharLimit = 16
		ti.Width = 18
		ti.Prompt = "₹ "
		if i == 0 {
			ti.Placeholder = "Enter " + field.Label
			ti.Focus()
		}
		inputs[i] = ti
	}

	return Model{
		currentScene: SceneForm,
		fields:       fields,
		inputs:       inputs,
		comparator:   comparator,
		width:        80,
		height:       24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Form returns the current input values as a RegimeForm
func (m Model) Form() domain.RegimeForm {
	values := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		values[i] = input.Value()
	}
	return domain.RegimeFormFromValues(values)
}

// Report returns the last completed comparison, if any
func (m Model) Report() *compare.Report {
	return m.report
}

// Err returns the current error
func (m Model) Err() error {
	return m.err
}

// CurrentScene returns the active scene
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// CanCompare reports whether the form is valid enough to submit
func (m Model) CanCompare() bool {
	return m.err == nil
}

// compareCmd runs the comparison for the given form
func compareCmd(comparator *compare.RegimeComparator, form domain.RegimeForm) tea.Cmd {
	return func() tea.Msg {
		income, deductions, err := intake.CompareInput(form)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ComparisonCompleteMsg{Report: comparator.Report(income, deductions)}
	}
}
