// Package config handles scanner configuration loading and hot reload.
package config

// Config holds all runtime settings.
type Config struct {
	Application ApplicationConfig `toml:"application"`
	Import      ImportConfig      `toml:"import"`
	Provider    ProviderConfig    `toml:"provider"`
}

// ApplicationConfig holds process-wide settings.
type ApplicationConfig struct {
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	// Updates per second of the main loop.
	TickRate int `toml:"tick_rate"`
}

// ImportConfig holds the mesh import cycle settings.
type ImportConfig struct {
	// Minimum seconds between snapshot fetches. Zero disables importing.
	PeriodSeconds float64 `toml:"period_seconds"`
	// Material the imported surface is drawn with.
	Material string `toml:"material"`
	// Seconds the scanning phase stays active after startup. Zero keeps
	// scanning until shutdown.
	ScanDurationSeconds float64 `toml:"scan_duration_seconds"`
	// Whether the imported surface starts out visible.
	Visible bool `toml:"visible"`
}

// ProviderConfig holds the simulated scan surface settings.
type ProviderConfig struct {
	Width       float32 `toml:"width"`
	Depth       float32 `toml:"depth"`
	MaxSegments uint32  `toml:"max_segments"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name:     "spatialscan",
			LogLevel: "debug",
			TickRate: 60,
		},
		Import: ImportConfig{
			PeriodSeconds:       1.0,
			Material:            "scan_material",
			ScanDurationSeconds: 0,
			Visible:             true,
		},
		Provider: ProviderConfig{
			Width:       10.0,
			Depth:       10.0,
			MaxSegments: 16,
		},
	}
}
