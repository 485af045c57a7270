//go:build linux || freebsd || openbsd || netbsd || dragonfly

package picker

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/example/stickersmash/internal/mediastore"
)

var portalHandleToken = newPortalHandleToken

// Portal asks xdg-desktop-portal to show the desktop's file chooser.
type Portal struct {
	Title string
}

type portalFilterRule struct {
	Kind    uint32
	Pattern string
}

type portalFilter struct {
	Name  string
	Rules []portalFilterRule
}

var imageMIMETypes = []string{"image/png", "image/jpeg", "image/gif", "image/bmp", "image/tiff", "image/webp"}

// PickOne implements Picker.
func (p Portal) PickOne(ctx context.Context, opts Options) (Result, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return Result{}, fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "dbus close: %v\n", cerr)
		}
	}()

	token := portalHandleToken()
	handle := portalRequestPath(conn.Names()[0], token)
	sigc := make(chan *dbus.Signal, 4)
	conn.Signal(sigc)
	rule := fmt.Sprintf("type='signal',interface='org.freedesktop.portal.Request',member='Response',path='%s'", handle)
	if err := conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return Result{}, fmt.Errorf("portal file chooser subscribe: %w", err)
	}
	defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)

	title := p.Title
	if title == "" {
		title = "Choose a photo"
	}
	obj := conn.Object("org.freedesktop.portal.Desktop", "/org/freedesktop/portal/desktop")
	call := obj.CallWithContext(ctx, "org.freedesktop.portal.FileChooser.OpenFile", 0, "", title, portalOpenFileOptions(token))
	if call.Err != nil {
		return Result{}, fmt.Errorf("portal file chooser call: %w", call.Err)
	}
	var returned dbus.ObjectPath
	if err := call.Store(&returned); err != nil {
		return Result{}, fmt.Errorf("portal file chooser response: %w", err)
	}
	if returned != handle {
		// Older portals ignore handle_token and pick their own path.
		rule = fmt.Sprintf("type='signal',interface='org.freedesktop.portal.Request',member='Response',path='%s'", returned)
		if err := conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
			return Result{}, fmt.Errorf("portal file chooser subscribe: %w", err)
		}
		handle = returned
	}

	for {
		select {
		case <-ctx.Done():
			obj := conn.Object("org.freedesktop.portal.Desktop", handle)
			obj.Call("org.freedesktop.portal.Request.Close", 0)
			return Result{}, ctx.Err()
		case sig, ok := <-sigc:
			if !ok {
				return Result{}, fmt.Errorf("portal file chooser: connection closed")
			}
			if sig.Path != handle || sig.Name != "org.freedesktop.portal.Request.Response" {
				continue
			}
			uri, err := portalResponse(sig.Body)
			if err != nil {
				return Result{}, err
			}
			path, err := mediastore.PathFromURI(uri)
			if err != nil {
				return Result{}, err
			}
			return finish(path, opts)
		}
	}
}

func newPortalHandleToken() string {
	return fmt.Sprintf("stickersmash_%d", time.Now().UnixNano())
}

// portalRequestPath predicts the request object path for a handle token.
func portalRequestPath(sender, token string) dbus.ObjectPath {
	s := strings.ReplaceAll(strings.TrimPrefix(sender, ":"), ".", "_")
	return dbus.ObjectPath("/org/freedesktop/portal/desktop/request/" + s + "/" + token)
}

func portalOpenFileOptions(token string) map[string]dbus.Variant {
	rules := make([]portalFilterRule, 0, len(imageMIMETypes))
	for _, m := range imageMIMETypes {
		rules = append(rules, portalFilterRule{Kind: 1, Pattern: m})
	}
	filter := portalFilter{Name: "Images", Rules: rules}
	return map[string]dbus.Variant{
		"handle_token":   dbus.MakeVariant(token),
		"modal":          dbus.MakeVariant(true),
		"multiple":       dbus.MakeVariant(false),
		"filters":        dbus.MakeVariant([]portalFilter{filter}),
		"current_filter": dbus.MakeVariant(filter),
	}
}

// portalResponse extracts the chosen URI from a Request.Response body.
func portalResponse(body []interface{}) (string, error) {
	if len(body) < 2 {
		return "", fmt.Errorf("portal file chooser: malformed response")
	}
	code, ok := body[0].(uint32)
	if !ok {
		return "", fmt.Errorf("portal file chooser: malformed response code")
	}
	switch code {
	case 0:
	case 1:
		return "", ErrCancelled
	default:
		return "", fmt.Errorf("portal file chooser: request failed (code %d)", code)
	}
	res, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return "", fmt.Errorf("portal file chooser: malformed results")
	}
	v, ok := res["uris"]
	if !ok {
		return "", ErrCancelled
	}
	uris, ok := v.Value().([]string)
	if !ok || len(uris) == 0 {
		return "", ErrCancelled
	}
	return uris[0], nil
}
