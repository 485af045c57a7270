//go:build linux

package platform

import (
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestNotifyHints(t *testing.T) {
	hints := notifyHints(Options{})
	if _, ok := hints["image-path"]; ok {
		t.Fatal("image-path should be omitted without an icon")
	}
	if got := hints["category"].Value().(string); got != "transfer.complete" {
		t.Fatalf("category = %q", got)
	}

	hints = notifyHints(Options{IconPath: "/tmp/a.png"})
	if got := hints["image-path"].Value().(string); got != "/tmp/a.png" {
		t.Fatalf("image-path = %q", got)
	}
}

func TestAskResponse(t *testing.T) {
	sig := func(name string, body ...interface{}) *dbus.Signal {
		return &dbus.Signal{Path: notificationsPath, Name: name, Body: body}
	}
	tests := []struct {
		name        string
		sig         *dbus.Signal
		wantAllowed bool
		wantDone    bool
	}{
		{"allow", sig(signalActionInvoke, uint32(7), actionAllow), true, true},
		{"deny", sig(signalActionInvoke, uint32(7), actionDeny), false, true},
		{"dismissed", sig(signalClosed, uint32(7), uint32(2)), false, true},
		{"other notification", sig(signalActionInvoke, uint32(8), actionAllow), false, false},
		{"other path", &dbus.Signal{Path: "/elsewhere", Name: signalActionInvoke, Body: []interface{}{uint32(7), actionAllow}}, false, false},
		{"short body", sig(signalClosed, uint32(7)), false, false},
		{"nil", nil, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, done := askResponse(tt.sig, 7)
			if allowed != tt.wantAllowed || done != tt.wantDone {
				t.Fatalf("askResponse = (%v, %v), want (%v, %v)", allowed, done, tt.wantAllowed, tt.wantDone)
			}
		})
	}
}

func TestHasCapability(t *testing.T) {
	if !hasCapability([]string{"body", "actions"}, "actions") {
		t.Fatal("actions not found")
	}
	if hasCapability([]string{"body"}, "actions") {
		t.Fatal("unexpected actions capability")
	}
}
