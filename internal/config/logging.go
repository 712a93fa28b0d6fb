package config

import "github.com/draycall/fbxbatch/internal/logging"

// LoggingConfig is the logging section of the configuration file.
type LoggingConfig struct {
	// Level is a zerolog level name.
	Level string `yaml:"level"`

	// Format selects "console" or "json".
	Format string `yaml:"format"`

	// File, when set, redirects log output from stderr to this path.
	File string `yaml:"file"`
}

// ToLoggingConfig bridges the configuration section to the logging
// package. When File is set the output becomes "file", otherwise stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}
