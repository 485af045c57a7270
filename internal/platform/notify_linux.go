//go:build linux

package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	defaultTimeoutMS = 5000

	notificationsName  = "org.freedesktop.Notifications"
	notificationsPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	signalActionInvoke = notificationsName + ".ActionInvoked"
	signalClosed       = notificationsName + ".NotificationClosed"
)

// Notify sends a desktop notification using the Freedesktop.org notification spec.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	timeout := opts.TimeoutMS
	if timeout == 0 {
		timeout = defaultTimeoutMS
	}
	obj := conn.Object(notificationsName, notificationsPath)
	call := obj.Call(notificationsName+".Notify", 0,
		AppName, uint32(0), opts.IconPath, title, body, []string{}, notifyHints(opts), timeout)
	return call.Err
}

// Ask shows a notification with Allow and Don't Allow actions and waits for
// the user to pick one. Dismissing the notification counts as a refusal.
// ErrUnsupported is returned when the notification server has no actions.
func Ask(ctx context.Context, title, body string, opts Options) (bool, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	defer conn.Close()

	obj := conn.Object(notificationsName, notificationsPath)
	var caps []string
	if err := obj.CallWithContext(ctx, notificationsName+".GetCapabilities", 0).Store(&caps); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if !hasCapability(caps, "actions") {
		return false, ErrUnsupported
	}

	sigc := make(chan *dbus.Signal, 8)
	conn.Signal(sigc)
	defer conn.RemoveSignal(sigc)
	rule := fmt.Sprintf("type='signal',interface='%s',path='%s'", notificationsName, notificationsPath)
	if err := conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return false, fmt.Errorf("notification subscribe: %w", err)
	}
	defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)

	hints := notifyHints(opts)
	hints["category"] = dbus.MakeVariant("presence")
	hints["urgency"] = dbus.MakeVariant(byte(2))
	hints["resident"] = dbus.MakeVariant(true)
	var id uint32
	err = obj.CallWithContext(ctx, notificationsName+".Notify", 0,
		AppName, uint32(0), opts.IconPath, title, body, askActions, hints, int32(0)).Store(&id)
	if err != nil {
		return false, fmt.Errorf("notification ask: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			obj.Call(notificationsName+".CloseNotification", 0, id)
			return false, ctx.Err()
		case sig, ok := <-sigc:
			if !ok {
				return false, errors.New("notification ask: connection closed")
			}
			if allowed, done := askResponse(sig, id); done {
				if sig.Name == signalActionInvoke {
					obj.Call(notificationsName+".CloseNotification", 0, id)
				}
				return allowed, nil
			}
		}
	}
}

var askActions = []string{actionAllow, "Allow", actionDeny, "Don't Allow"}

// askResponse interprets a signal from the notification server for the
// notification id. done is false for signals about other notifications.
func askResponse(sig *dbus.Signal, id uint32) (allowed, done bool) {
	if sig == nil || sig.Path != notificationsPath || len(sig.Body) < 2 {
		return false, false
	}
	if got, ok := sig.Body[0].(uint32); !ok || got != id {
		return false, false
	}
	switch sig.Name {
	case signalActionInvoke:
		action, _ := sig.Body[1].(string)
		return action == actionAllow, true
	case signalClosed:
		return false, true
	}
	return false, false
}

func hasCapability(caps []string, want string) bool {
	for _, c := range caps {
		if c == want {
			return true
		}
	}
	return false
}

func notifyHints(opts Options) map[string]dbus.Variant {
	hints := map[string]dbus.Variant{
		"category": dbus.MakeVariant("transfer.complete"),
	}
	if opts.IconPath != "" {
		hints["image-path"] = dbus.MakeVariant(opts.IconPath)
	}
	return hints
}
