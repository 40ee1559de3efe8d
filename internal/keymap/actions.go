// Package keymap defines key bindings and action dispatch for the dashboard.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Event log navigation
	ActionScrollUp   Action = "scroll_up"
	ActionScrollDown Action = "scroll_down"
	ActionJumpStart  Action = "jump_start"
	ActionJumpEnd    Action = "jump_end"
	ActionClear      Action = "clear" // c - forget the event log
)
