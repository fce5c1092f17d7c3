package notetrack

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v2"
)

//go:embed scales.yml
var scalePresetsYAML []byte

type scalePreset struct {
	Name      string `yaml:"name"`
	Intervals string `yaml:"intervals"`
}

var loadScalePresets = sync.OnceValues(func() ([]Scale, error) {
	var presets []scalePreset
	if err := yaml.Unmarshal(scalePresetsYAML, &presets); err != nil {
		return nil, fmt.Errorf("could not unmarshal scale presets: %w", err)
	}
	ret := make([]Scale, 0, len(presets))
	for _, p := range presets {
		if s := ParseScale(p.Name, p.Intervals); s.Valid() {
			ret = append(ret, s)
		}
	}
	return ret, nil
})

// Scales returns copies of the built-in scales, in the order they are
// listed in scales.yml.
func Scales() []Scale {
	presets, err := loadScalePresets()
	if err != nil {
		return nil
	}
	ret := make([]Scale, len(presets))
	for i, s := range presets {
		ret[i] = s.Copy()
	}
	return ret
}

// ScaleByName finds a built-in scale by its name.
func ScaleByName(name string) (Scale, bool) {
	presets, err := loadScalePresets()
	if err != nil {
		return Scale{}, false
	}
	i := slices.IndexFunc(presets, func(s Scale) bool { return s.Name == name })
	if i < 0 {
		return Scale{}, false
	}
	return presets[i].Copy(), true
}
