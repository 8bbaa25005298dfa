package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Jungo-Phi/Slidep/internal/geom"
	"github.com/Jungo-Phi/Slidep/internal/kin"
	"github.com/Jungo-Phi/Slidep/internal/solver"
)

const (
	DefaultScene   = "crank"
	DefaultTargetX = 10.0
	DefaultTargetY = 0.0
	DefaultJoint   = 1
)

var (
	ErrNoScene       = errors.New("config: scene is empty")
	ErrNoGrab        = errors.New("config: grab needs a joint or a rod")
	ErrAmbiguousGrab = errors.New("config: grab names both a joint and a rod")
)

type Config struct {
	Scene   string        `yaml:"scene"`
	Grab    GrabConfig    `yaml:"grab"`
	Target  geom.Point    `yaml:"target"`
	Animate bool          `yaml:"animate"`
	Solver  solver.Config `yaml:"solver"`
}

// GrabConfig names the dragged element: a joint index, or a rod index with
// the grabbed parameter K.
type GrabConfig struct {
	Joint *int    `yaml:"joint,omitempty"`
	Rod   *int    `yaml:"rod,omitempty"`
	K     float64 `yaml:"k,omitempty"`
}

func DefaultConfig() *Config {
	joint := DefaultJoint
	return &Config{
		Scene:  DefaultScene,
		Grab:   GrabConfig{Joint: &joint},
		Target: geom.Pt(DefaultTargetX, DefaultTargetY),
		Solver: solver.DefaultConfig(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Grab = GrabConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Grab.Joint == nil && cfg.Grab.Rod == nil {
		cfg.Grab = DefaultConfig().Grab
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) SolverConfig() solver.Config {
	return c.Solver
}

// GrabElement turns the grab section into a solver.Grab.
func (c *Config) GrabElement() (solver.Grab, error) {
	switch {
	case c.Grab.Joint != nil && c.Grab.Rod != nil:
		return solver.Grab{}, ErrAmbiguousGrab
	case c.Grab.Joint != nil:
		return solver.GrabJoint(kin.JointID(*c.Grab.Joint)), nil
	case c.Grab.Rod != nil:
		return solver.GrabRodPos(kin.RodPos{Rod: kin.RodID(*c.Grab.Rod), K: c.Grab.K}), nil
	}
	return solver.Grab{}, ErrNoGrab
}

// SetJoint grabs joint id, dropping any rod grab.
func (c *Config) SetJoint(id int) {
	c.Grab = GrabConfig{Joint: &id}
}

// SetRod grabs rod id at k, dropping any joint grab.
func (c *Config) SetRod(id int, k float64) {
	c.Grab = GrabConfig{Rod: &id, K: k}
}

func (c *Config) Validate() error {
	if c.Scene == "" {
		return ErrNoScene
	}
	if _, err := c.GrabElement(); err != nil {
		return err
	}
	return c.Solver.Validate()
}
