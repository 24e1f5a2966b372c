package plugins

import (
	"strings"

	"github.com/qraux/plaso/pkg/types"
	"github.com/qraux/plaso/pkg/winreg"
)

// runSuffixes are the autorun key paths, present in both NTUSER and SOFTWARE
// hives, so the plugin declares no hive type affinity.
var runSuffixes = []string{
	`\microsoft\windows\currentversion\run`,
	`\microsoft\windows\currentversion\runonce`,
}

// Run interprets the Run and RunOnce autostart keys: one event per key, with
// every named command recorded as an attribute.
type Run struct{}

func (Run) Name() string { return "windows_run" }

func (Run) Process(key types.Key, _ *winreg.PathCache) (*winreg.Result, error) {
	lower := strings.ToLower(key.Path())
	matched := false
	for _, suffix := range runSuffixes {
		if strings.HasSuffix(lower, suffix) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, nil
	}

	attrs := make(map[string]string)
	for _, v := range key.Values() {
		cmd, err := v.AsString()
		if err != nil {
			continue
		}
		attrs[v.Name()] = cmd
	}
	return &winreg.Result{
		Events: []winreg.Event{{
			Timestamp:     key.LastWrite(),
			TimestampDesc: winreg.TimestampDescModification,
			KeyPath:       key.Path(),
			Attributes:    attrs,
		}},
		URLs: []string{
			"http://msdn.microsoft.com/en-us/library/aa376977(v=vs.85).aspx",
		},
	}, nil
}
