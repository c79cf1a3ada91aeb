package media

// Config holds configuration for the media sync feature.
type Config struct {
	// DropZoneDir is the jailed directory batch files are imported from.
	DropZoneDir string `mapstructure:"drop_zone_dir" default:"./dropzone"`
	// FetchTimeoutSeconds bounds a single media fetch.
	FetchTimeoutSeconds int `mapstructure:"fetch_timeout_seconds" default:"30"`
	// Sizes declares additional image sizes on top of the built-in ones,
	// e.g. "banner=1200x400,hero=1920x600:crop".
	Sizes string `mapstructure:"sizes" default:""`
}
