package format

import "time"

const (
	filetimeOffset = 116444736000000000 // FILETIME epoch to Unix epoch, in 100ns units
	filetimeUnit   = 100                // FILETIME units are 100ns
)

// FiletimeToTime converts a Windows FILETIME value to time.Time. Zero maps
// to the zero time so callers can detect keys that were never written.
func FiletimeToTime(v uint64) time.Time {
	if v == 0 || v > 1<<62 {
		return time.Time{}
	}
	ns := (int64(v) - filetimeOffset) * filetimeUnit
	return time.Unix(0, ns).UTC()
}
