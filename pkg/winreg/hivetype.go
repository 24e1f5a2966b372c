package winreg

import "github.com/qraux/plaso/pkg/types"

// diagnosticPaths maps each known hive type to the key paths that must all
// resolve for the type to apply. Absence of a path is a normal negative
// signal, not an error.
var diagnosticPaths = map[types.HiveType][]string{
	types.NTUser:   {`\Software\Microsoft\Windows\CurrentVersion\Explorer`},
	types.SAM:      {`\SAM\Domains\Account\Users`},
	types.Security: {`\Policy\PolAdtEv`},
	types.Software: {`\Microsoft\Windows\CurrentVersion\App Paths`},
	types.System:   {`\Select`},
}

// detectionOrder fixes the probe order. When a crafted hive satisfies two
// diagnostic sets at once, the earlier type wins.
var detectionOrder = []types.HiveType{
	types.NTUser,
	types.Software,
	types.Security,
	types.System,
	types.SAM,
}

// DetectHiveType classifies an opened hive by probing its diagnostic key
// paths. It returns the first type whose every path resolves, or Unknown.
// The result is pure; callers cache it for the duration of a parse.
func DetectHiveType(f types.File) types.HiveType {
	for _, ht := range detectionOrder {
		paths := diagnosticPaths[ht]
		if len(paths) == 0 {
			continue
		}
		matched := true
		for _, p := range paths {
			if _, ok := f.KeyByPath(p); !ok {
				matched = false
				break
			}
		}
		if matched {
			return ht
		}
	}
	return types.Unknown
}
