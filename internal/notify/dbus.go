//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	busName = "org.freedesktop.Notifications"
	busPath = dbus.ObjectPath("/org/freedesktop/Notifications")
)

type dbusNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus notification server. Without a session
// bus the returned notifier silently drops notifications.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return noop{}, nil //nolint:nilerr // notifications are optional
	}
	return &dbusNotifier{obj: conn.Object(busName, busPath)}, nil
}

func (d *dbusNotifier) Notify(n Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant("scrobblr"),
		"category":      dbus.MakeVariant("x-scrobblr.playback"),
	}

	var id uint32
	err := d.obj.Call(busName+".Notify", 0,
		AppName, n.ReplacesID, n.Icon, n.Summary, n.Body,
		[]string{}, hints, expireTimeout(n.Timeout),
	).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("notify: %w", err)
	}
	return id, nil
}

func (d *dbusNotifier) Dismiss(id uint32) error {
	if id == 0 {
		return nil
	}
	if err := d.obj.Call(busName+".CloseNotification", 0, id).Err; err != nil {
		return fmt.Errorf("dismiss notification %d: %w", id, err)
	}
	return nil
}
