package winreg

import (
	"strings"

	"github.com/qraux/plaso/pkg/types"
)

// urlSeparator joins a plugin's URL list into the single URL field carried
// by each event.
const urlSeparator = " - "

// enrichEvents stamps provenance onto a claimed result's events: the key
// offset when the plugin left its own unset, the detected hive type, the
// plugin identity, and the joined URL list. Every input event yields exactly
// one output event.
func enrichEvents(res *Result, key types.Key, ht types.HiveType, plugin string) []Event {
	if len(res.Events) == 0 {
		return nil
	}
	url := strings.Join(res.URLs, urlSeparator)
	out := make([]Event, len(res.Events))
	for i, ev := range res.Events {
		if ev.Offset == 0 {
			ev.Offset = key.Offset()
		}
		ev.HiveType = ht
		ev.Plugin = plugin
		if url != "" {
			ev.URL = url
		}
		out[i] = ev
	}
	return out
}
