package game

// Options holds run options that override the loaded config.
type Options struct {
	Seed      int64
	OutputDir string // Overrides telemetry.output_dir when set
	LogStats  bool
}
