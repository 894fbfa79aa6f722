package streetview

import (
	"encoding/json"
	"fmt"
	"os"
)

// PipelineConfig is the full, immutable configuration of one render run.
// All values are fixed at pipeline start.
type PipelineConfig struct {
	// Projection tangent point and scale.
	OriginLatDeg float64 `json:"origin_lat_deg"`
	OriginLonDeg float64 `json:"origin_lon_deg"`
	OriginScale  float64 `json:"origin_scale"`

	// Render layers to emit per camera placement, in output order.
	Layers []string `json:"layers"`

	// StagingRoot holds the transient per-layer staging directories.
	StagingRoot string `json:"staging_root"`

	// OutputDir receives the canonical <record>_<layer> files.
	OutputDir string `json:"output_dir"`

	// AltitudeOffsetMeters lifts the camera above the record altitude.
	AltitudeOffsetMeters float64 `json:"altitude_offset_meters"`

	// Render output resolution.
	Render RenderSettings `json:"render"`
}

// DefaultPipelineConfig returns the standard configuration: true-meter
// projection, the three training layers, equirectangular 2048x1024
// output, and the street-level altitude offset.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		OriginScale:          1.0,
		Layers:               []string{"Depth", "Normal", "DiffCol"},
		StagingRoot:          "staging",
		OutputDir:            "output",
		AltitudeOffsetMeters: DefaultAltitudeOffsetMeters,
		Render:               DefaultRenderSettings(),
	}
}

// LoadPipelineConfig reads a JSON config file over the defaults: fields
// absent from the file keep their default values.
func LoadPipelineConfig(path string) (PipelineConfig, error) {
	cfg := DefaultPipelineConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read pipeline config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse pipeline config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration is usable for a run.
func (c *PipelineConfig) Validate() error {
	if c.OriginScale <= 0 {
		return fmt.Errorf("origin_scale must be positive, got %g", c.OriginScale)
	}
	if len(c.Layers) == 0 {
		return fmt.Errorf("at least one render layer is required")
	}
	if c.StagingRoot == "" {
		return fmt.Errorf("staging_root is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if err := c.Render.Validate(); err != nil {
		return err
	}
	return nil
}
