package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every dial the stage simulation reads. Values left at zero in
// the yaml fall back to Defaults.
type Tuning struct {
	TickRateHz int `yaml:"tick_rate_hz"`

	StageWidth  float64 `yaml:"stage_width"`
	StageHeight float64 `yaml:"stage_height"`
	SpawnMargin float64 `yaml:"spawn_margin"`

	BaseSize   float64 `yaml:"base_size"`
	ScaleFloor float64 `yaml:"scale_floor"`

	ActionIntervalMs int     `yaml:"action_interval_ms"`
	SayClearMs       int     `yaml:"say_clear_ms"`
	SaySeconds       float64 `yaml:"say_seconds"`

	Greeting       string `yaml:"greeting"`
	CollisionTextA string `yaml:"collision_text_a"`
	CollisionTextB string `yaml:"collision_text_b"`
}

func Defaults() Tuning {
	return Tuning{
		TickRateHz:       60,
		StageWidth:       480,
		StageHeight:      360,
		SpawnMargin:      40,
		BaseSize:         40,
		ScaleFloor:       0.1,
		ActionIntervalMs: 1000,
		SayClearMs:       1000,
		SaySeconds:       2,
		Greeting:         "Hello!",
		CollisionTextA:   "Ouch!",
		CollisionTextB:   "Watch out!",
	}
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t.withDefaults(), nil
}

func (t Tuning) withDefaults() Tuning {
	d := Defaults()
	if t.TickRateHz <= 0 {
		t.TickRateHz = d.TickRateHz
	}
	if t.StageWidth <= 0 {
		t.StageWidth = d.StageWidth
	}
	if t.StageHeight <= 0 {
		t.StageHeight = d.StageHeight
	}
	if t.SpawnMargin < 0 {
		t.SpawnMargin = d.SpawnMargin
	}
	if t.BaseSize <= 0 {
		t.BaseSize = d.BaseSize
	}
	if t.ScaleFloor <= 0 {
		t.ScaleFloor = d.ScaleFloor
	}
	if t.ActionIntervalMs <= 0 {
		t.ActionIntervalMs = d.ActionIntervalMs
	}
	if t.SayClearMs <= 0 {
		t.SayClearMs = d.SayClearMs
	}
	if t.SaySeconds <= 0 {
		t.SaySeconds = d.SaySeconds
	}
	if t.Greeting == "" {
		t.Greeting = d.Greeting
	}
	if t.CollisionTextA == "" {
		t.CollisionTextA = d.CollisionTextA
	}
	if t.CollisionTextB == "" {
		t.CollisionTextB = d.CollisionTextB
	}
	return t
}
