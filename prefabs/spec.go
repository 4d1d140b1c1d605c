package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type ColliderSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type BoxSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ZoneSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type PlayerSpec struct {
	Name      string  `yaml:"name"`
	Health    int     `yaml:"health"`
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
	MaxJumps  int     `yaml:"max_jumps"`
	PullSpeed float64 `yaml:"pull_speed"`
	// ShootCooldown is in seconds; the full appearance persists this long
	// after a shot.
	ShootCooldown float64      `yaml:"shoot_cooldown"`
	ShootSpeed    float64      `yaml:"shoot_speed"`
	Collider      ColliderSpec `yaml:"collider"`
	Zone          ZoneSpec     `yaml:"zone"`
	Projectile    ColliderSpec `yaml:"projectile"`
}

type PatrollerSpec struct {
	Name        string       `yaml:"name"`
	MoveSpeed   float64      `yaml:"move_speed"`
	IdleSeconds float64      `yaml:"idle_seconds"`
	MoveSeconds float64      `yaml:"move_seconds"`
	Collider    ColliderSpec `yaml:"collider"`
}

type JumperSpec struct {
	Name        string       `yaml:"name"`
	IdleSeconds float64      `yaml:"idle_seconds"`
	JumpSpeed   float64      `yaml:"jump_speed"`
	Collider    ColliderSpec `yaml:"collider"`
}

type FlyerSpec struct {
	Name string `yaml:"name"`
	// Speeds is the discrete set a spawned flyer's speed is drawn from.
	Speeds []float64 `yaml:"speeds"`
	// SpawnInterval is in seconds.
	SpawnInterval float64      `yaml:"spawn_interval"`
	Collider      ColliderSpec `yaml:"collider"`
}

type LevelSpec struct {
	Name        string                 `yaml:"name"`
	Next        string                 `yaml:"next"`
	FallY       float64                `yaml:"fall_y"`
	Margin      float64                `yaml:"margin"`
	Bounds      BoxSpec                `yaml:"bounds"`
	PlayerStart PointSpec              `yaml:"player_start"`
	Platforms   []BoxSpec              `yaml:"platforms"`
	Spawns      map[string][]PointSpec `yaml:"spawns"`
	Exits       []BoxSpec              `yaml:"exits"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadPatrollerSpec() (*PatrollerSpec, error) {
	spec, err := LoadSpec[PatrollerSpec]("patroller.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadJumperSpec() (*JumperSpec, error) {
	spec, err := LoadSpec[JumperSpec]("jumper.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadFlyerSpec() (*FlyerSpec, error) {
	spec, err := LoadSpec[FlyerSpec]("flyer.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadLevelSpec(filename string) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
