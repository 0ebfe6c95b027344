package platform

import (
	"errors"
	"strings"
	"text/template"
)

// launchArgs start the desktop front end at login.
var launchArgs = []string{"gui"}

// launchEntry is what a login session needs to start the app.
type launchEntry struct {
	Name  string
	Label string
	Exec  string
	Args  []string
}

func newLaunchEntry(appName, execPath string) (launchEntry, error) {
	if strings.TrimSpace(appName) == "" {
		return launchEntry{}, errors.New("app name is empty")
	}
	execPath = strings.Trim(strings.TrimSpace(execPath), `"`)
	if execPath == "" {
		return launchEntry{}, errors.New("exec path is empty")
	}
	return launchEntry{
		Name:  appName,
		Label: "io.pomodoro." + appSlug(appName),
		Exec:  execPath,
		Args:  launchArgs,
	}, nil
}

// Command joins the executable and its arguments, quoting a path with spaces.
func (entry launchEntry) Command() string {
	parts := make([]string, 0, len(entry.Args)+1)
	if strings.ContainsAny(entry.Exec, " \t") {
		parts = append(parts, `"`+entry.Exec+`"`)
	} else {
		parts = append(parts, entry.Exec)
	}
	return strings.Join(append(parts, entry.Args...), " ")
}

func (entry launchEntry) render(tmpl *template.Template) ([]byte, error) {
	var out strings.Builder
	if err := tmpl.Execute(&out, entry); err != nil {
		return nil, err
	}
	return []byte(out.String()), nil
}

// XDG autostart entry.
var desktopEntryTemplate = template.Must(template.New("desktop").Parse(`[Desktop Entry]
Type=Application
Name={{.Name}}
Comment=Pomodoro focus timer
Exec={{.Command}}
Icon=alarm-symbolic
Categories=Utility;
X-GNOME-Autostart-enabled=true
Terminal=false
`))

// launchd agent property list.
var launchAgentTemplate = template.Must(template.New("plist").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>{{html .Label}}</string>
	<key>ProgramArguments</key>
	<array>
		<string>{{html .Exec}}</string>
{{- range .Args}}
		<string>{{html .}}</string>
{{- end}}
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>ProcessType</key>
	<string>Interactive</string>
</dict>
</plist>
`))
