// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Configuration
	OpConfigLoad Op = "load configuration"

	// Storage operations
	OpStateOpen     Op = "open database"
	OpHistoryLoad   Op = "load scrobble history"
	OpCacheClear    Op = "clear media cache"
	OpCachePrune    Op = "prune media cache"
	OpJournalRecord Op = "record scrobble"

	// Player operations
	OpPlayerConnect Op = "connect to player"
	OpPlayerPoll    Op = "poll player"

	// Resolver operations
	OpResolve Op = "identify media"

	// Last.fm operations
	OpLastfmAuth       Op = "authenticate with Last.fm"
	OpLastfmUnlink     Op = "unlink Last.fm account"
	OpLastfmStatus     Op = "read Last.fm status"
	OpLastfmScrobble   Op = "scrobble to Last.fm"
	OpLastfmNowPlaying Op = "update Last.fm now playing"

	// Notifications
	OpNotify Op = "send notification"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Error is a failed operation. Its message is the user-facing Format text
// and it unwraps to the cause.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string { return Format(e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns err as an *Error for op, or nil if err is nil.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
