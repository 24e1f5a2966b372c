package winreg

import "github.com/google/uuid"

// PluginFailure records one localized plugin error: which plugin failed, on
// which key, and why. The key stays eligible for later plugins.
type PluginFailure struct {
	Plugin  string
	KeyPath string
	Err     error
}

// Diagnostics collects the non-fatal problems of one parse pass so callers
// can assert on them instead of scraping logs. It is populated while the
// event sequence is consumed and is not safe for concurrent access.
type Diagnostics struct {
	// SessionID tags all records of one parse pass.
	SessionID uuid.UUID

	Failures []PluginFailure
}

func newDiagnostics() *Diagnostics {
	return &Diagnostics{SessionID: uuid.New()}
}

func (d *Diagnostics) record(plugin, keyPath string, err error) {
	d.Failures = append(d.Failures, PluginFailure{Plugin: plugin, KeyPath: keyPath, Err: err})
}

// FailureCount reports how many plugin failures were recorded.
func (d *Diagnostics) FailureCount() int { return len(d.Failures) }
