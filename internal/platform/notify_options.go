// Package platform talks to the host's notification service: plain
// notifications for finished exports and yes/no questions for library access.
package platform

import "errors"

// AppName identifies the application to the notification service.
const AppName = "StickerSmash"

const (
	actionAllow = "allow"
	actionDeny  = "deny"
)

// ErrUnsupported reports that the host cannot ask the user a question.
var ErrUnsupported = errors.New("platform: questions not supported")

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// TimeoutMS overrides how long the notification stays visible. Zero uses
	// the platform default.
	TimeoutMS int32
}
