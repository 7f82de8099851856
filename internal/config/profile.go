package config

import (
	"fmt"
	"sort"
	"strings"
)

// Detection holds the detector settings handed to the engine.
type Detection struct {
	Keyword   bool
	Entropy   bool
	Threshold float64
	MinLength int
	MaxLength int
}

const (
	// ProfileDefault is what the command line uses unless told otherwise:
	// threshold 4.5 over tokens of 8 to 128 characters.
	ProfileDefault = "default"
	// ProfileClassic is the tighter window: threshold 4.4 over tokens of
	// 8 to 40 characters.
	ProfileClassic = "classic"
)

var profiles = map[string]Detection{
	ProfileDefault: {Keyword: true, Entropy: true, Threshold: 4.5, MinLength: 8, MaxLength: 128},
	ProfileClassic: {Keyword: true, Entropy: true, Threshold: 4.4, MinLength: 8, MaxLength: 40},
}

// LookupProfile returns the settings of a named profile.
func LookupProfile(name string) (Detection, error) {
	d, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Detection{}, fmt.Errorf("unknown profile %q (want one of: %s)", name, strings.Join(ProfileNames(), ", "))
	}
	return d, nil
}

// ProfileNames lists the known profiles in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
