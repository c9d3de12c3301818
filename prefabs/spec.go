package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

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

// SceneSpec describes the world built at startup.
type SceneSpec struct {
	Name   string     `yaml:"name"`
	Sky    SkySpec    `yaml:"sky"`
	Lights LightsSpec `yaml:"lights"`
	Ground GroundSpec `yaml:"ground"`
	Trees  TreesSpec  `yaml:"trees"`
	Player ActorSpec  `yaml:"player"`
	Camera CameraSpec `yaml:"camera"`
	Music  MusicSpec  `yaml:"music"`
}

func LoadSceneSpec() (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec]("scene.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type SkySpec struct {
	Top    *YAMLColor `yaml:"top"`
	Bottom *YAMLColor `yaml:"bottom"`
}

type LightsSpec struct {
	Sun     SunSpec     `yaml:"sun"`
	Ambient AmbientSpec `yaml:"ambient"`
}

// SunSpec is a directional light. Direction points from the light toward
// the ground.
type SunSpec struct {
	Direction Vec3Spec   `yaml:"direction"`
	Color     *YAMLColor `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
}

// AmbientSpec is a hemispheric light blending from Sky above to Ground below.
type AmbientSpec struct {
	Sky       *YAMLColor `yaml:"sky"`
	Ground    *YAMLColor `yaml:"ground"`
	Intensity float64    `yaml:"intensity"`
}

type GroundSpec struct {
	Heightmap string     `yaml:"heightmap"`
	Size      float64    `yaml:"size"`
	MinHeight float64    `yaml:"min_height"`
	MaxHeight float64    `yaml:"max_height"`
	ColorLow  *YAMLColor `yaml:"color_low"`
	ColorHigh *YAMLColor `yaml:"color_high"`
}

type TreesSpec struct {
	Mesh MeshSpec `yaml:"mesh"`
	// Seed and Count drive the random scatter on top of Positions.
	Seed        int64      `yaml:"seed"`
	Count       int        `yaml:"count"`
	ClearRadius float64    `yaml:"clear_radius"`
	Positions   []Vec3Spec `yaml:"positions"`
}

type ActorSpec struct {
	Mesh  MeshSpec `yaml:"mesh"`
	Spawn Vec3Spec `yaml:"spawn"`
}

type MeshSpec struct {
	Name        string     `yaml:"name"`
	Sprite      string     `yaml:"sprite"`
	Radius      float64    `yaml:"radius"`
	Height      float64    `yaml:"height"`
	TrunkRadius float64    `yaml:"trunk_radius"`
	Color       *YAMLColor `yaml:"color"`
	Shadow      bool       `yaml:"shadow"`
}

type CameraSpec struct {
	Distance float64 `yaml:"distance"`
	Pitch    float64 `yaml:"pitch"`
	Yaw      float64 `yaml:"yaw"`
	Zoom     float64 `yaml:"zoom"`
	Follow   float64 `yaml:"follow"`
}

type MusicSpec struct {
	Track  string  `yaml:"track"`
	Volume float64 `yaml:"volume"`
}

// PlayerSpec holds the character controller tuning.
type PlayerSpec struct {
	Speed      float64 `yaml:"speed"`
	DashFactor float64 `yaml:"dash_factor"`
	JumpSpeed  float64 `yaml:"jump_speed"`
	Gravity    float64 `yaml:"gravity"`
	Mass       float64 `yaml:"mass"`
	BodyRadius float64 `yaml:"body_radius"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type YAMLColor struct {
	color.Color
}

// Or returns the parsed color, or fallback when the field was omitted.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
