package tui

import (
	"github.com/expenso/itr/internal/tui/tuimsg"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResults
	SceneCompare
	SceneHistory
	SceneSlabs
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// Scene messages are defined in tuimsg and aliased here for the root model
type (
	ErrorMsg                  = tuimsg.ErrorMsg
	InputLoadedMsg            = tuimsg.InputLoadedMsg
	CalculateRequestedMsg     = tuimsg.CalculateRequestedMsg
	CalculationCompleteMsg    = tuimsg.CalculationCompleteMsg
	SaveRequestedMsg          = tuimsg.SaveRequestedMsg
	SaveCompleteMsg           = tuimsg.SaveCompleteMsg
	HistoryLoadedMsg          = tuimsg.HistoryLoadedMsg
	HistorySelectedMsg        = tuimsg.HistorySelectedMsg
	HistoryDeleteRequestedMsg = tuimsg.HistoryDeleteRequestedMsg
	SavedEstimateLoadedMsg    = tuimsg.SavedEstimateLoadedMsg
)

// historyDeletedMsg reports a finished delete so the list can be reloaded
type historyDeletedMsg struct {
	ID  string
	Err error
}
