// Package notify delivers user-visible error reports as desktop notifications.
package notify

import (
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

// Severity selects the notification urgency.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

// Notifier is the sink for operation failures that the user must see.
type Notifier interface {
	Notify(title, body string, severity Severity) error
}

const (
	notificationsService   = "org.freedesktop.Notifications"
	notificationsPath      = "/org/freedesktop/Notifications"
	notificationsInterface = "org.freedesktop.Notifications"

	urgencyNormal   = byte(1)
	urgencyCritical = byte(2)
)

// DBusNotifier sends notifications over the session bus using the
// org.freedesktop.Notifications interface. The Notify call is synchronous:
// it returns once the notification daemon has accepted the message.
type DBusNotifier struct {
	conn    *dbus.Conn
	appName string
}

// NewDBus connects to the session bus and returns a notifier.
func NewDBus(appName string) (*DBusNotifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &DBusNotifier{conn: conn, appName: appName}, nil
}

// Notify shows a desktop notification. Errors are mapped to critical urgency
// so notification daemons keep them on screen until dismissed.
func (n *DBusNotifier) Notify(title, body string, severity Severity) error {
	urgency := urgencyNormal
	expireMs := int32(10000)
	if severity == SeverityError {
		urgency = urgencyCritical
		expireMs = 0 // critical notifications stay until dismissed
	}

	obj := n.conn.Object(notificationsService, notificationsPath)
	call := obj.Call(notificationsInterface+".Notify", 0,
		n.appName,
		uint32(0), // not replacing a previous notification
		"",        // no icon
		title,
		body,
		[]string{},
		map[string]dbus.Variant{"urgency": dbus.MakeVariant(urgency)},
		expireMs,
	)
	if call.Err != nil {
		return fmt.Errorf("failed to send notification: %w", call.Err)
	}
	return nil
}

// Close releases the session bus connection.
func (n *DBusNotifier) Close() error {
	return n.conn.Close()
}

// Logging downgrades notifications to log lines. Used when the session bus is
// unavailable so the daemon can still run.
type Logging struct {
	Logger *slog.Logger
}

func (l Logging) Notify(title, body string, severity Severity) error {
	if severity == SeverityError {
		l.Logger.Error("notification", "title", title, "body", body)
	} else {
		l.Logger.Info("notification", "title", title, "body", body)
	}
	return nil
}

// Silent discards all notifications.
type Silent struct{}

func (Silent) Notify(string, string, Severity) error { return nil }
