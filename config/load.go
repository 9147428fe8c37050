package config

import (
	"errors"
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML layout accepted by Load. Only groups and fields present
// in the document override the built-in defaults.
type File struct {
	Window    *Config        `yaml:"window"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Time      TimeConfig     `yaml:"time"`
	History   HistoryConfig  `yaml:"history"`
	Player    PlayerConfig   `yaml:"player"`
	Box       BoxConfig      `yaml:"box"`
	JumpPad   JumpPadConfig  `yaml:"jump_pad"`
	Particles ParticleConfig `yaml:"particles"`
	Ability   AbilityConfig  `yaml:"ability"`
	Camera    CameraConfig   `yaml:"camera"`
	Debug     DebugConfig    `yaml:"debug"`
}

// Load overlays the YAML file at path onto the current configuration.
// An empty path keeps the defaults.
func Load(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	return Apply(data)
}

// Apply overlays a YAML document onto the current configuration.
func Apply(data []byte) error {
	window := *C
	f := File{
		Window:    &window,
		Physics:   Physics,
		Time:      Time,
		History:   History,
		Player:    Player,
		Box:       Box,
		JumpPad:   JumpPad,
		Particles: Particles,
		Ability:   Ability,
		Camera:    Camera,
		Debug:     Debug,
	}
	f.Ability.Uses = maps.Clone(Ability.Uses)
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if err := f.validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	C = f.Window
	Physics = f.Physics
	Time = f.Time
	History = f.History
	Player = f.Player
	Box = f.Box
	JumpPad = f.JumpPad
	Particles = f.Particles
	Ability = f.Ability
	Camera = f.Camera
	Debug = f.Debug
	return nil
}

func (f *File) validate() error {
	switch {
	case f.Time.FixedStep <= 0:
		return errors.New("time.fixed_step must be positive")
	case f.Time.MaxFrameTime < f.Time.FixedStep:
		return errors.New("time.max_frame_time must be at least time.fixed_step")
	case f.History.Capacity < 1:
		return errors.New("history.capacity must be at least 1")
	case f.Physics.MaxIterations < 1:
		return errors.New("physics.max_iterations must be at least 1")
	case f.Physics.CellSize < 1:
		return errors.New("physics.cell_size must be at least 1")
	case f.Player.Mass <= 0 || f.Box.Mass <= 0:
		return errors.New("masses must be positive")
	}
	return nil
}
