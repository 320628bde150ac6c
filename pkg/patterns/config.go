package patterns

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileEntry mirrors one leaf of the §6 YAML pattern-configuration schema:
// categoryName -> patternName -> {pattern, description, priority}.
type fileEntry struct {
	Pattern     string `yaml:"pattern"`
	Description string `yaml:"description"`
	Priority    string `yaml:"priority"`
}

func priorityFromString(s string) Priority {
	switch s {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// LoadFile parses a YAML pattern-configuration file into Specs suitable for
// Build, on top of (not replacing) the built-in categories: a caller
// typically does append(defaultSpecs(), loaded...) before calling Build.
// A top-level parse failure here is the PatternBuildError the core contract
// treats as fatal (§7); a single malformed regex source is left to Build's
// per-pattern isolation instead.
func LoadFile(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("patterns: read %s: %w", path, err)
	}

	var raw map[string]map[string]fileEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("patterns: parse %s: %w", path, err)
	}

	var specs []Spec
	for category, byName := range raw {
		for name, entry := range byName {
			specs = append(specs, Spec{
				Name:        name,
				Category:    category,
				Priority:    priorityFromString(entry.Priority),
				Description: entry.Description,
				Source:      entry.Pattern,
			})
		}
	}
	return specs, nil
}

// BuildDefaultWithOverlay compiles the built-in pattern set plus any extra
// specs loaded from a user-supplied configuration file, letting a
// deployment add patterns without forking the defaults.
func BuildDefaultWithOverlay(extra []Spec) *Registry {
	return Build(append(defaultSpecs(), extra...))
}
