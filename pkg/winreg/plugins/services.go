package plugins

import (
	"strconv"
	"strings"

	"github.com/qraux/plaso/pkg/types"
	"github.com/qraux/plaso/pkg/winreg"
)

// serviceStartNames maps the Start DWORD to its conventional label.
var serviceStartNames = map[uint32]string{
	0: "Boot",
	1: "System",
	2: "Auto Start",
	3: "Manual",
	4: "Disabled",
}

// Services interprets service definition keys of a SYSTEM hive. It resolves
// the current control set through the path cache; when the cache entry is
// missing the plugin declines every key.
type Services struct{}

func (Services) Name() string { return "windows_services" }

func (Services) Process(key types.Key, cache *winreg.PathCache) (*winreg.Result, error) {
	ccs, ok := cache.CurrentControlSet()
	if !ok {
		return nil, nil
	}
	prefix := strings.ToLower(ccs) + `\services\`
	lower := strings.ToLower(key.Path())
	if !strings.HasPrefix(lower, prefix) {
		return nil, nil
	}
	// Only direct children of Services are service definitions.
	if strings.Contains(lower[len(prefix):], `\`) {
		return nil, nil
	}

	attrs := map[string]string{"service": key.Name()}
	if v, ok := key.Value("Start"); ok {
		if start, err := v.AsDWORD(); err == nil {
			attrs["start"] = serviceStart(start)
		}
	}
	if v, ok := key.Value("Type"); ok {
		if typ, err := v.AsDWORD(); err == nil {
			attrs["type"] = strconv.FormatUint(uint64(typ), 10)
		}
	}
	if v, ok := key.Value("ImagePath"); ok {
		if img, err := v.AsString(); err == nil {
			attrs["image_path"] = img
		}
	}
	if v, ok := key.Value("ObjectName"); ok {
		if obj, err := v.AsString(); err == nil {
			attrs["object_name"] = obj
		}
	}
	return &winreg.Result{
		Events: []winreg.Event{{
			Timestamp:     key.LastWrite(),
			TimestampDesc: winreg.TimestampDescModification,
			KeyPath:       key.Path(),
			Attributes:    attrs,
		}},
	}, nil
}

func serviceStart(v uint32) string {
	if name, ok := serviceStartNames[v]; ok {
		return name
	}
	return strconv.FormatUint(uint64(v), 10)
}
