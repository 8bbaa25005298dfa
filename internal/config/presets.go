package config

import (
	"sort"

	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/solver"
)

var Presets = map[string]map[string]*Config{
	"crank": {
		"pull": {
			Scene: "crank", Grab: GrabConfig{Joint: ref(1)}, Target: geom.Pt(10, 0),
			Solver: solver.DefaultConfig(),
		},
		"swing": {
			Scene: "crank", Grab: GrabConfig{Joint: ref(1)}, Target: geom.Pt(0, 9), Animate: true,
			Solver: solver.DefaultConfig(),
		},
	},
	"fixation": {
		"turn": {
			Scene: "fixation", Grab: GrabConfig{Rod: ref(0), K: 1}, Target: geom.Pt(3, 4),
			Solver: solver.DefaultConfig(),
		},
	},
	"slider": {
		"lean": {
			Scene: "slider", Grab: GrabConfig{Rod: ref(1), K: 1}, Target: geom.Pt(8, 6),
			Solver: solver.DefaultConfig(),
		},
		"shove": {
			Scene: "slider", Grab: GrabConfig{Joint: ref(0)}, Target: geom.Pt(12, 1),
			Solver: solver.DefaultConfig(),
		},
	},
	"four_bar": {
		"lift": {
			Scene: "four_bar", Grab: GrabConfig{Rod: ref(1), K: 0.5}, Target: geom.Pt(4, 5),
			Solver: solver.DefaultConfig(),
		},
	},
	"slider_crank": {
		"turn": {
			Scene: "slider_crank", Grab: GrabConfig{Rod: ref(1), K: 1}, Target: geom.Pt(3, 0), Animate: true,
			Solver: solver.DefaultConfig(),
		},
		"push": {
			Scene: "slider_crank", Grab: GrabConfig{Joint: ref(2)}, Target: geom.Pt(10, 0),
			Solver: solver.DefaultConfig(),
		},
	},
}

func ref(i int) *int { return &i }

func GetPreset(scene, preset string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
