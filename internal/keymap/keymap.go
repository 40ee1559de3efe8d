package keymap

// Binding maps keys to an action and describes it for help generation.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "events"
}

// All contains all key bindings.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	// Event log
	{ActionScrollUp, []string{"k", "up"}, "Scroll up", "events"},
	{ActionScrollDown, []string{"j", "down"}, "Scroll down", "events"},
	{ActionJumpStart, []string{"g", "home"}, "Newest event", "events"},
	{ActionJumpEnd, []string{"G", "end"}, "Oldest event", "events"},
	{ActionClear, []string{"c"}, "Clear events", "events"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
