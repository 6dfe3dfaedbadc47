package tui

import "github.com/finseva/finseva/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles with components
var (
	ColorPrimary = tuistyles.ColorPrimary
	ColorMuted   = tuistyles.ColorMuted

	AppStyle            = tuistyles.AppStyle
	TitleStyle          = tuistyles.TitleStyle
	SubtitleStyle       = tuistyles.SubtitleStyle
	StatusBarStyle      = tuistyles.StatusBarStyle
	StatusKeyStyle      = tuistyles.StatusKeyStyle
	BorderStyle         = tuistyles.BorderStyle
	LabelStyle          = tuistyles.LabelStyle
	FocusedLabelStyle   = tuistyles.FocusedLabelStyle
	WinnerStyle         = tuistyles.WinnerStyle
	ErrorStyle          = tuistyles.ErrorStyle
	TableHeaderStyle    = tuistyles.TableHeaderStyle
	TableCellStyle      = tuistyles.TableCellStyle
	TableHighlightStyle = tuistyles.TableHighlightStyle
)
