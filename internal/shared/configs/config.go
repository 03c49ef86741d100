package configs

// Config holds all configuration for the application.
type Config struct {
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	Aggregation AggregationConfig `mapstructure:"aggregation" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,loglevel"`
	Format string `mapstructure:"format" validate:"required,oneof=console json"`
}

// AggregationConfig holds aggregation configuration.
type AggregationConfig struct {
	Workers int `mapstructure:"workers" validate:"required,min=1,max=64"` // files aggregated in parallel
}

// MetricsConfig holds metrics export configuration.
type MetricsConfig struct {
	TextfilePath string `mapstructure:"textfile_path"` // empty disables the textfile export
}
