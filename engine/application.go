package engine

// ApplicationConfig describes how the scanner process runs.
type ApplicationConfig struct {
	// The application name used in logs.
	Name string
	// Minimum log level name.
	LogLevel string
	// Updates per second of the main loop.
	TickRate int
	// Minimum seconds between snapshot imports. Zero disables importing.
	ImportPeriod float64
	// Material the imported surface is drawn with.
	ImportMaterial string
	// Seconds the scanning phase stays active. Zero scans until shutdown.
	ScanDuration float64
	// Whether the imported surface starts out visible.
	SurfaceVisible bool
	// Optional path to a config file to watch for period changes.
	ConfigPath string
}
