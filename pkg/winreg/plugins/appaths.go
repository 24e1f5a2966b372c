package plugins

import (
	"strings"

	"github.com/qraux/plaso/pkg/types"
	"github.com/qraux/plaso/pkg/winreg"
)

const appPathsSuffix = `\microsoft\windows\currentversion\app paths`

// AppPaths interprets the App Paths key of a SOFTWARE hive, which maps
// executable names to their install locations.
type AppPaths struct{}

func (AppPaths) Name() string { return "windows_app_paths" }

func (AppPaths) Process(key types.Key, _ *winreg.PathCache) (*winreg.Result, error) {
	if !strings.HasSuffix(strings.ToLower(key.Path()), appPathsSuffix) {
		return nil, nil
	}
	res := &winreg.Result{
		URLs: []string{
			"https://learn.microsoft.com/en-us/windows/win32/shell/app-registration",
		},
	}
	for _, app := range key.Subkeys() {
		attrs := map[string]string{"application": app.Name()}
		if v, ok := app.Value(""); ok {
			if path, err := v.AsString(); err == nil {
				attrs["path"] = path
			}
		}
		if v, ok := app.Value("Path"); ok {
			if dir, err := v.AsString(); err == nil {
				attrs["directory"] = dir
			}
		}
		res.Events = append(res.Events, winreg.Event{
			Timestamp:     app.LastWrite(),
			TimestampDesc: winreg.TimestampDescModification,
			KeyPath:       app.Path(),
			Attributes:    attrs,
			Offset:        app.Offset(),
		})
	}
	return res, nil
}
