// Package dictionary resolves provider-internal region and instance-type
// codes to their canonical names. The mappings are data, not logic: they
// ship as embedded JSON and can be overridden with newer files without a
// rebuild. Unknown codes pass through verbatim — the dictionary is always
// slightly behind the provider's rollout of new regions and families, and
// failing on a new code would lose the whole feed.
package dictionary

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"awsprice/pkg/pricing"
)

//go:embed data/regions.json data/instancetypes.json
var dataFS embed.FS

// Dictionary holds the read-only lookup tables, loaded once at startup.
type Dictionary struct {
	regions       map[string]string
	instanceTypes map[pricing.Service]map[string]string
	logger        *slog.Logger
}

// Default loads the embedded dictionaries.
func Default(logger *slog.Logger) *Dictionary {
	regionRaw, _ := dataFS.ReadFile("data/regions.json")
	typeRaw, _ := dataFS.ReadFile("data/instancetypes.json")
	d, err := build(regionRaw, typeRaw, logger)
	if err != nil {
		// The embedded files are compiled in and validated by tests.
		panic(fmt.Sprintf("embedded dictionary data invalid: %v", err))
	}
	return d
}

// Load reads override dictionaries from disk. Empty paths keep the
// embedded defaults for that table.
func Load(regionPath, typePath string, logger *slog.Logger) (*Dictionary, error) {
	regionRaw, _ := dataFS.ReadFile("data/regions.json")
	typeRaw, _ := dataFS.ReadFile("data/instancetypes.json")

	if regionPath != "" {
		b, err := os.ReadFile(regionPath)
		if err != nil {
			return nil, fmt.Errorf("read region dictionary: %w", err)
		}
		regionRaw = b
	}
	if typePath != "" {
		b, err := os.ReadFile(typePath)
		if err != nil {
			return nil, fmt.Errorf("read instance-type dictionary: %w", err)
		}
		typeRaw = b
	}
	return build(regionRaw, typeRaw, logger)
}

func build(regionRaw, typeRaw []byte, logger *slog.Logger) (*Dictionary, error) {
	if logger == nil {
		logger = slog.Default()
	}

	regions := make(map[string]string)
	if err := json.Unmarshal(regionRaw, &regions); err != nil {
		return nil, fmt.Errorf("parse region dictionary: %w", err)
	}

	byService := make(map[string]map[string]string)
	if err := json.Unmarshal(typeRaw, &byService); err != nil {
		return nil, fmt.Errorf("parse instance-type dictionary: %w", err)
	}
	instanceTypes := make(map[pricing.Service]map[string]string, len(byService))
	for svc, m := range byService {
		instanceTypes[pricing.Service(svc)] = m
	}

	return &Dictionary{regions: regions, instanceTypes: instanceTypes, logger: logger}, nil
}

// Region maps an internal region code (eu-ireland, apac-syd, ...) to its
// canonical name. The alias table is closed-world — canonical names map to
// themselves — so a miss means the provider introduced a new region and is
// worth a warning. The code still passes through unchanged.
func (d *Dictionary) Region(code string) string {
	if code == "" {
		return code
	}
	if name, ok := d.regions[code]; ok {
		return name
	}
	d.logger.Warn("unknown region code, passing through", "code", code)
	return code
}

// RegionAliases returns a copy of the region alias table.
func (d *Dictionary) RegionAliases() map[string]string {
	out := make(map[string]string, len(d.regions))
	for k, v := range d.regions {
		out[k] = v
	}
	return out
}

// InstanceType maps a service-internal instance-class code to its
// canonical type name. Most feeds already publish canonical names, so a
// miss is the normal case and passes through silently.
func (d *Dictionary) InstanceType(service pricing.Service, code string) string {
	if m, ok := d.instanceTypes[service]; ok {
		if name, ok := m[code]; ok {
			return name
		}
	}
	return code
}
