package config

// LogConfig controls the process logger. Console output is always on; a
// non-empty File adds a size-rotated log file next to it.
type LogConfig struct {
	Level      string `json:"level,omitempty" yaml:"level,omitempty" validate:"omitempty,loglevel"`
	Format     string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,logformat"`
	NoColor    bool   `json:"no_color,omitempty" yaml:"no_color,omitempty"`
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty" validate:"omitempty,min=1"`
	MaxBackups int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty" validate:"omitempty,min=0"`
}

func NewDefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      DefaultLogLevel,
		Format:     DefaultLogFormat,
		File:       DefaultLogFile,
		MaxSizeMB:  DefaultMaxLogSizeMB,
		MaxBackups: DefaultMaxLogBackups,
	}
}

// RotationSizeMB is the size at which the log file is rotated.
func (c LogConfig) RotationSizeMB() int {
	if c.MaxSizeMB <= 0 {
		return DefaultMaxLogSizeMB
	}
	return c.MaxSizeMB
}

// RotationBackups is how many rotated files are kept.
func (c LogConfig) RotationBackups() int {
	if c.MaxBackups <= 0 {
		return DefaultMaxLogBackups
	}
	return c.MaxBackups
}
