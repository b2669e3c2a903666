package assessment

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config consolidates every threshold used by the calculators so the
// algorithms stay pure functions of (frames, config). Zero values are
// not meaningful; start from DefaultConfig or LoadConfig.
type Config struct {
	// MinPoseVisibility gates pose landmarks consumed for handedness
	// resolution. Both pose wrists must reach it for a frame to
	// resolve the tracked hand.
	MinPoseVisibility float64 `json:"min_pose_visibility"`

	// LandmarkVisibility is the per-landmark visibility a frame needs
	// to count as well tracked.
	LandmarkVisibility float64 `json:"landmark_visibility"`

	// VisibilityBypassFraction is the share of well-tracked frames a
	// repetition needs for temporal filtering to be bypassed.
	VisibilityBypassFraction float64 `json:"visibility_bypass_fraction"`

	// TemporalQuality is the minimum smoothness score for a poorly
	// visible repetition to be accepted.
	TemporalQuality float64 `json:"temporal_quality"`

	// MaxFrameDelta is the largest angle change, in degrees, treated
	// as smooth between consecutive frames.
	MaxFrameDelta float64 `json:"max_frame_delta_deg"`

	// OppositionThresholds holds the per-level thumb-to-target
	// distance thresholds for Kapandji levels 1..10, in normalized
	// image units. Higher levels are harder and carry tighter
	// thresholds.
	OppositionThresholds [10]float64 `json:"opposition_thresholds"`
}

// DefaultConfig returns the tuning used in clinic recordings.
func DefaultConfig() Config {
	return Config{
		MinPoseVisibility:        0.5,
		LandmarkVisibility:       0.7,
		VisibilityBypassFraction: 0.8,
		TemporalQuality:          0.7,
		MaxFrameDelta:            60,
		OppositionThresholds: [10]float64{
			0.080, 0.080, 0.070, 0.070, 0.070,
			0.070, 0.060, 0.060, 0.060, 0.050,
		},
	}
}

// LoadConfig reads a JSON tuning file over the defaults. Fields omitted
// from the file keep their default values, so partial configs are safe.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every threshold is inside its meaningful range.
func (c Config) Validate() error {
	inUnit := func(name string, v float64) error {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %v", name, v)
		}
		return nil
	}

	if err := inUnit("min_pose_visibility", c.MinPoseVisibility); err != nil {
		return err
	}
	if err := inUnit("landmark_visibility", c.LandmarkVisibility); err != nil {
		return err
	}
	if err := inUnit("visibility_bypass_fraction", c.VisibilityBypassFraction); err != nil {
		return err
	}
	if err := inUnit("temporal_quality", c.TemporalQuality); err != nil {
		return err
	}
	if c.MaxFrameDelta <= 0 {
		return fmt.Errorf("max_frame_delta_deg must be positive, got %v", c.MaxFrameDelta)
	}
	for i, th := range c.OppositionThresholds {
		if th <= 0 {
			return fmt.Errorf("opposition_thresholds[%d] must be positive, got %v", i, th)
		}
	}
	return nil
}
