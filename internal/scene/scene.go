// Package scene reads and writes mechanisms as YAML documents and ships a
// few ready-made linkages.
package scene

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Jungo-Phi/Slidep/internal/geom"
)

var (
	ErrUnknownPreset = errors.New("scene: unknown preset")
	ErrEmpty         = errors.New("scene: no rods or joints")
)

// Scene is the file form of a mechanism. Rods and joints refer to each
// other by their index in the Rods list.
type Scene struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Rods        []Rod   `yaml:"rods"`
	Joints      []Joint `yaml:"joints"`
}

type Rod struct {
	A       geom.Point `yaml:"a"`
	B       geom.Point `yaml:"b"`
	GroundA bool       `yaml:"ground_a,omitempty"`
	GroundB bool       `yaml:"ground_b,omitempty"`
}

// Joint is one joint. Dir defaults to the slide rod direction, or +x.
// DirOrigin keeps the reference direction of a joint saved mid-motion; it
// defaults to Dir.
type Joint struct {
	Kind      string      `yaml:"kind"`
	Pos       geom.Point  `yaml:"pos"`
	Dir       *geom.Point `yaml:"dir,omitempty"`
	DirOrigin *geom.Point `yaml:"dir_origin,omitempty"`
	Ground    bool        `yaml:"ground,omitempty"`
	SlideRod  *int        `yaml:"slide_rod,omitempty"`
	Fixed     []Link      `yaml:"fixed,omitempty"`
	Rotating  []Link      `yaml:"rotating,omitempty"`
}

// Link attaches a joint to rod Rod at parameter K. DirOrigin is only used on
// fixed links and defaults to the rod's direction at load time.
type Link struct {
	Rod       int         `yaml:"rod"`
	K         float64     `yaml:"k"`
	DirOrigin *geom.Point `yaml:"dir_origin,omitempty"`
}

func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if len(s.Rods) == 0 && len(s.Joints) == 0 {
		return nil, ErrEmpty
	}
	return &s, nil
}

func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Scene) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

func Save(path string, s *Scene) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve returns the preset called name, or loads name as a file.
func Resolve(name string) (*Scene, error) {
	if s, err := Preset(name); err == nil {
		return s, nil
	}
	if _, err := os.Stat(name); err != nil {
		return nil, fmt.Errorf("%w: %q is neither a preset nor a readable file", ErrUnknownPreset, name)
	}
	return Load(name)
}
