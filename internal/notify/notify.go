package notify

import (
	"context"
	"fmt"

	"github.com/1broseidon/winpos/internal/logger"
	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = "/org/freedesktop/Notifications"
	notifyCall = busName + ".Notify"

	appName       = "winpos"
	expireTimeout = int32(5000)
)

// Notifier shows desktop notifications.
type Notifier interface {
	Notify(ctx context.Context, summary, body string) error
	Close() error
}

// Silent discards notifications.
type Silent struct{}

func (Silent) Notify(context.Context, string, string) error { return nil }
func (Silent) Close() error                                 { return nil }

// caller is the part of dbus.BusObject used to send notifications.
type caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// DBus sends notifications to the session notification daemon.
type DBus struct {
	conn *dbus.Conn
	obj  caller
}

// NewDBus connects to the session bus.
func NewDBus() (*DBus, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &DBus{
		conn: conn,
		obj:  conn.Object(busName, dbus.ObjectPath(objectPath)),
	}, nil
}

// New returns a D-Bus notifier, or Silent when the session bus is not
// reachable.
func New() Notifier {
	n, err := NewDBus()
	if err != nil {
		logger.Debugf("notifications disabled: %v", err)
		return Silent{}
	}
	return n
}

// Notify sends one notification and returns the id the daemon assigned.
func (n *DBus) Notify(ctx context.Context, summary, body string) error {
	_, err := n.send(ctx, summary, body)
	return err
}

func (n *DBus) send(ctx context.Context, summary, body string) (uint32, error) {
	call := n.obj.CallWithContext(ctx, notifyCall, 0,
		appName,
		uint32(0), // replaces_id
		"",        // app_icon
		summary,
		body,
		[]string{},
		map[string]dbus.Variant{"urgency": dbus.MakeVariant(byte(1))},
		expireTimeout,
	)
	if call.Err != nil {
		return 0, fmt.Errorf("notification failed: %w", call.Err)
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("unexpected notification reply: %w", err)
	}
	logger.Debugf("notification %d: %s", id, summary)
	return id, nil
}

// Close closes the bus connection.
func (n *DBus) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Close()
}
