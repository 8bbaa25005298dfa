package scene

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Scene{
	"crank": {
		Name:        "crank",
		Description: "single rod on a grounded pivot with a free pivot at its tip",
		Rods: []Rod{
			{A: pt(0, 0), B: pt(5, 0)},
		},
		Joints: []Joint{
			{Kind: "pivot", Pos: pt(0, 0), Ground: true, Rotating: []Link{{Rod: 0, K: 0}}},
			{Kind: "pivot", Pos: pt(5, 0), Rotating: []Link{{Rod: 0, K: 1}}},
		},
	},
	"fixation": {
		Name:        "fixation",
		Description: "two rods welded at a right angle",
		Rods: []Rod{
			{A: pt(0, 0), B: pt(5, 0)},
			{A: pt(0, 0), B: pt(0, 5)},
		},
		Joints: []Joint{
			{Kind: "fixation", Pos: pt(0, 0), Fixed: []Link{{Rod: 0, K: 0}, {Rod: 1, K: 0}}},
		},
	},
	"slider": {
		Name:        "slider",
		Description: "arm welded to a slider running on a grounded rail",
		Rods: []Rod{
			{A: pt(0, 0), B: pt(20, 0), GroundA: true},
			{A: pt(5, 0), B: pt(5, 5)},
		},
		Joints: []Joint{
			{Kind: "slider", Pos: pt(5, 0), SlideRod: ref(0), Fixed: []Link{{Rod: 1, K: 0}}},
		},
	},
	"four_bar": {
		Name:        "four_bar",
		Description: "crank, coupler and rocker between two grounded pivots",
		Rods: []Rod{
			{A: pt(0, 0), B: pt(0, 4)},
			{A: pt(0, 4), B: pt(6, 4)},
			{A: pt(6, 4), B: pt(6, 0)},
		},
		Joints: []Joint{
			{Kind: "pivot", Pos: pt(0, 0), Ground: true, Rotating: []Link{{Rod: 0, K: 0}}},
			{Kind: "pivot", Pos: pt(0, 4), Rotating: []Link{{Rod: 0, K: 1}, {Rod: 1, K: 0}}},
			{Kind: "pivot", Pos: pt(6, 4), Rotating: []Link{{Rod: 1, K: 1}, {Rod: 2, K: 0}}},
			{Kind: "pivot", Pos: pt(6, 0), Ground: true, Rotating: []Link{{Rod: 2, K: 1}}},
		},
	},
	"slider_crank": {
		Name:        "slider_crank",
		Description: "crank driving a slidep piston along a grounded rail",
		Rods: []Rod{
			{A: pt(-2, 0), B: pt(20, 0), GroundA: true, GroundB: true},
			{A: pt(0, 0), B: pt(0, 3)},
			{A: pt(0, 3), B: pt(8, 0)},
		},
		Joints: []Joint{
			{Kind: "pivot", Pos: pt(0, 0), Ground: true, Rotating: []Link{{Rod: 1, K: 0}}},
			{Kind: "pivot", Pos: pt(0, 3), Rotating: []Link{{Rod: 1, K: 1}, {Rod: 2, K: 0}}},
			{Kind: "slidep", Pos: pt(8, 0), SlideRod: ref(0), Rotating: []Link{{Rod: 2, K: 1}}},
		},
	},
}

// Preset returns a deep copy of a built-in scene.
func Preset(name string) (*Scene, error) {
	s, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	data, err := s.Marshal()
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
