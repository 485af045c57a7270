//go:build windows

package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

func psQuote(s string) string {
	escaped := strings.ReplaceAll(s, "'", "''")
	return "'" + escaped + "'"
}

const toastPrelude = `[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null; `

// Notify displays a toast using the exported image as its picture when one
// is given.
func Notify(title, body string, opts Options) error {
	tmpl := "ToastText02"
	image := ""
	if icon := strings.TrimSpace(opts.IconPath); icon != "" {
		tmpl = "ToastImageAndText02"
		image = fmt.Sprintf(`$template.GetElementsByTagName("image").Item(0).SetAttribute("src", %s); `, psQuote(icon))
	}
	script := toastPrelude +
		fmt.Sprintf(`$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::%s); `, tmpl) +
		`$texts = $template.GetElementsByTagName("text"); ` +
		fmt.Sprintf(`$texts.Item(0).AppendChild($template.CreateTextNode(%s)) > $null; `, psQuote(title)) +
		fmt.Sprintf(`$texts.Item(1).AppendChild($template.CreateTextNode(%s)) > $null; `, psQuote(body)) +
		image +
		fmt.Sprintf(`[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show([Windows.UI.Notifications.ToastNotification]::new($template));`, psQuote(AppName))
	return exec.Command("powershell.exe", "-NoProfile", "-Command", script).Run()
}

// Ask shows a Yes/No message box and reports whether Yes was chosen.
func Ask(ctx context.Context, title, body string, opts Options) (bool, error) {
	script := `Add-Type -AssemblyName System.Windows.Forms; ` +
		fmt.Sprintf(`[System.Windows.Forms.MessageBox]::Show(%s, %s, 'YesNo', 'Question').ToString()`, psQuote(body), psQuote(title))
	out, err := exec.CommandContext(ctx, "powershell.exe", "-NoProfile", "-Command", script).Output()
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return strings.TrimSpace(string(out)) == "Yes", nil
}
