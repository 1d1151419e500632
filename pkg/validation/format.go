// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/homecalc/pkg/constants"
	"go.uber.org/zap/zapcore"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ResolveOutputFormat picks the report format from a command line override,
// then the configured format, then pretty, and validates the result.
func ResolveOutputFormat(configured, override string) (string, error) {
	format := configured
	if override != "" {
		format = override
	}
	if format == "" {
		format = constants.OutputFormatPretty
	}
	if err := ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// ValidateLogLevel checks that level is a zap level name. Empty means the
// default level.
func ValidateLogLevel(level string) error {
	if level == "" {
		return nil
	}
	if _, err := zapcore.ParseLevel(level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return nil
}

// ValidateLogFormat checks the logging encoder name.
func ValidateLogFormat(format string) error {
	switch format {
	case "", "json", "console":
		return nil
	default:
		return fmt.Errorf("expected log format of json or console, got %s", format)
	}
}
