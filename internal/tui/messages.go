package tui

import "github.com/finseva/finseva/internal/compare"

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResults
	SceneHelp
)

// String returns the scene name
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Compare"
	case SceneResults:
		return "Results"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// ComparisonCompleteMsg signals a regime comparison has finished
type ComparisonCompleteMsg struct {
	Report *compare.Report
}

// ErrorMsg reports a comparison that could not run and keeps the form open
type ErrorMsg struct {
	Err error
}
