// Package notify shows desktop notifications for playback events.
package notify

import "time"

// AppName identifies scrobblr to the notification server.
const AppName = "Scrobblr"

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification is one desktop notification.
type Notification struct {
	Summary string
	Body    string
	Icon    string // image path or icon name
	// Timeout of zero lets the server decide; a negative one never expires.
	Timeout    time.Duration
	ReplacesID uint32 // 0 opens a new notification
	Urgency    Urgency
}

// Notifier shows and withdraws desktop notifications.
type Notifier interface {
	// Notify shows n and returns the ID the server assigned to it.
	Notify(n Notification) (uint32, error)
	// Dismiss withdraws a notification shown earlier.
	Dismiss(id uint32) error
}

// expireTimeout converts a timeout into the milliseconds sent on the bus.
func expireTimeout(d time.Duration) int32 {
	switch {
	case d == 0:
		return -1
	case d < 0:
		return 0
	default:
		return int32(min(d.Milliseconds(), int64(^uint32(0)>>1)))
	}
}

// noop is used when no notification server is reachable.
type noop struct{}

func (noop) Notify(Notification) (uint32, error) { return 0, nil }

func (noop) Dismiss(uint32) error { return nil }
