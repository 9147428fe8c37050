package config

import "image/color"

// PhysicsConfig contains physics solver configuration values
type PhysicsConfig struct {
	// Global physics
	Gravity  float64 `yaml:"gravity"`   // Downward acceleration in px/s²
	MaxDelta float64 `yaml:"max_delta"` // Upper bound on a single physics step in seconds

	// Collision
	MaxIterations    int     `yaml:"max_iterations"`    // Swept sub-steps per body per tick
	RestingTolerance float64 `yaml:"resting_tolerance"` // Max penetration corrected by the resting pass
	OneWayEpsilon    float64 `yaml:"one_way_epsilon"`   // How far below a one-way top a body may be and still land

	// Broad phase
	CellSize int `yaml:"cell_size"` // resolv space cell size in pixels
}

// TimeConfig contains fixed-step loop configuration
type TimeConfig struct {
	FixedStep    float64 `yaml:"fixed_step"`     // Micro-step length in seconds
	MaxFrameTime float64 `yaml:"max_frame_time"` // Clamp applied to wall-clock frame time
	TickRate     int     `yaml:"tick_rate"`      // Headless ticks per second
}

// HistoryConfig contains rewind buffer configuration
type HistoryConfig struct {
	Capacity int `yaml:"capacity"` // Frames retained, oldest evicted first
}

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	ID string `yaml:"id"`

	// Movement
	JumpSpeed          float64 `yaml:"jump_speed"`
	MoveForce          float64 `yaml:"move_force"`
	MaxSpeed           float64 `yaml:"max_speed"`
	GroundDeceleration float64 `yaml:"ground_deceleration"` // px/s² shed while grounded with no input

	// Physics
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`

	// Dimensions
	CollisionWidth  float64 `yaml:"collision_width"`
	CollisionHeight float64 `yaml:"collision_height"`

	// KillPlaneY sends the player back to its spawn when its top passes below it
	KillPlaneY float64 `yaml:"kill_plane_y"`
}

// BoxConfig contains defaults for pushable boxes
type BoxConfig struct {
	Mass               float64 `yaml:"mass"`
	Friction           float64 `yaml:"friction"`
	Size               float64 `yaml:"size"`
	GroundDeceleration float64 `yaml:"ground_deceleration"`
}

// JumpPadConfig contains jump pad configuration
type JumpPadConfig struct {
	LaunchSpeed float64 `yaml:"launch_speed"` // Upward speed given to a body landing on the pad
}

// ParticleConfig contains particle emitter configuration
type ParticleConfig struct {
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	MinLifespan float64 `yaml:"min_lifespan"`
	MaxLifespan float64 `yaml:"max_lifespan"`
	Size        float64 `yaml:"size"`
	Seed        int64   `yaml:"seed"`
}

// AbilityConfig contains time ability tuning
type AbilityConfig struct {
	LocalStopDuration float64 `yaml:"local_stop_duration"` // Seconds other bodies stay frozen
	LocalSlowScale    float64 `yaml:"local_slow_scale"`
	LocalSlowDuration float64 `yaml:"local_slow_duration"`
	GlobalSlowScale   float64 `yaml:"global_slow_scale"`
	GlobalFadeTime    float64 `yaml:"global_fade_time"` // Fade used when toggling global slow
	RewindSteps       int     `yaml:"rewind_steps"`     // Frames rewound by the reverse-N ability

	// Uses granted at scene start, -1 for unlimited
	Uses map[string]int `yaml:"uses"`
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	FollowSmoothing float64 `yaml:"follow_smoothing"` // How fast camera follows player (0.0-1.0)
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	ShowShapes bool `yaml:"show_shapes"` // Outline broad-phase shapes
	ShowHUD    bool `yaml:"show_hud"`
}

type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

var C *Config
var Physics PhysicsConfig
var Time TimeConfig
var History HistoryConfig
var Player PlayerConfig
var Box BoxConfig
var JumpPad JumpPadConfig
var Particles ParticleConfig
var Ability AbilityConfig
var Camera CameraConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan       = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Brown      = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	Green      = color.RGBA{R: 76, G: 175, B: 80, A: 255}
	LightGreen = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	Orange     = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Purple     = color.RGBA{R: 128, G: 0, B: 255, A: 255}
	LightBlue  = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	Background = color.RGBA{R: 15, G: 25, B: 50, A: 255}
)

// Ability names
const (
	AbilityGlobalTimeReverse = "globalTimeReverse"
	AbilityLocalTimeStop     = "localTimeStop"
	AbilityLocalTimeSlow     = "localTimeSlow"
	AbilityGlobalTimeSlow    = "globalTimeSlow"
	AbilityTimeReverseN      = "timeReverseN"
)

func init() {
	Reset()
}

// Reset restores every configuration group to its built-in defaults.
func Reset() {
	C = &Config{
		Width:  800,
		Height: 600,
	}

	// Physics Config
	Physics = PhysicsConfig{
		Gravity:  1500,
		MaxDelta: 0.1,

		MaxIterations:    5,
		RestingTolerance: 5,
		OneWayEpsilon:    5,

		CellSize: 64,
	}

	Time = TimeConfig{
		FixedStep:    1.0 / 120.0,
		MaxFrameTime: 0.25,
		TickRate:     60,
	}

	History = HistoryConfig{
		Capacity: 300, // ~2.5s at 120 steps/s
	}

	Player = PlayerConfig{
		ID: "player",

		JumpSpeed:          700,
		MoveForce:          500000,
		MaxSpeed:           300,
		GroundDeceleration: 1800,

		Mass:     50,
		Friction: 0.5,

		CollisionWidth:  64,
		CollisionHeight: 128,

		KillPlaneY: 2400,
	}

	Box = BoxConfig{
		Mass:               2,
		Friction:           0.1,
		Size:               64,
		GroundDeceleration: 600,
	}

	JumpPad = JumpPadConfig{
		LaunchSpeed: 900,
	}

	Particles = ParticleConfig{
		MinSpeed:    50,
		MaxSpeed:    150,
		MinLifespan: 0.5,
		MaxLifespan: 1.5,
		Size:        3,
		Seed:        1,
	}

	Ability = AbilityConfig{
		LocalStopDuration: 5,
		LocalSlowScale:    0.1,
		LocalSlowDuration: 5,
		GlobalSlowScale:   0.1,
		GlobalFadeTime:    0.3,
		RewindSteps:       3,

		Uses: map[string]int{
			AbilityGlobalTimeReverse: -1,
			AbilityLocalTimeStop:     3,
			AbilityLocalTimeSlow:     3,
			AbilityGlobalTimeSlow:    -1,
			AbilityTimeReverseN:      5,
		},
	}

	Camera = CameraConfig{
		FollowSmoothing: 0.1,
	}

	Debug = DebugConfig{
		ShowShapes: false,
		ShowHUD:    true,
	}

	Input = defaultInput()
}
