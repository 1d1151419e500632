package validation

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/homecalc/internal/config"
	"github.com/iwvelando/homecalc/pkg/constants"
)

func TestExampleConfigFormatsAreValid(t *testing.T) {
	conf, err := config.LoadConfiguration(filepath.Join("..", "..", constants.ExampleConfigFile))
	if err != nil {
		t.Fatalf("failed to load example config: %v", err)
	}

	if err := ValidateOutputFormat(conf.Output.Format); err != nil {
		t.Errorf("example output format: %v", err)
	}
	if err := ValidateLogLevel(conf.Logging.Level); err != nil {
		t.Errorf("example log level: %v", err)
	}
	if err := ValidateLogFormat(conf.Logging.Format); err != nil {
		t.Errorf("example log format: %v", err)
	}
}

func TestResolveOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		override   string
		expected   string
		expectErr  bool
	}{
		{"Nothing configured renders the pretty report", "", "", constants.OutputFormatPretty, false},
		{"Configured csv", "csv", "", constants.OutputFormatCSV, false},
		{"Flag overrides the config file", "pretty", "csv", constants.OutputFormatCSV, false},
		{"Flag rescues a bad config value", "xlsx", "pretty", constants.OutputFormatPretty, false},
		{"Bad flag", "pretty", "json", "", true},
		{"Formats are lower case", "CSV", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveOutputFormat(tt.configured, tt.override)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("ResolveOutputFormat(%q, %q) expected error, got %q", tt.configured, tt.override, got)
				}
				if !strings.Contains(err.Error(), "expected output format of pretty or csv") {
					t.Errorf("unexpected error message: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveOutputFormat(%q, %q) unexpected error: %v", tt.configured, tt.override, err)
			}
			if got != tt.expected {
				t.Errorf("ResolveOutputFormat(%q, %q) = %q, expected %q", tt.configured, tt.override, got, tt.expected)
			}
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		if err := ValidateLogLevel(level); err != nil {
			t.Errorf("ValidateLogLevel(%q) unexpected error: %v", level, err)
		}
	}
	for _, level := range []string{"verbose", "trace"} {
		if err := ValidateLogLevel(level); err == nil {
			t.Errorf("ValidateLogLevel(%q) expected error", level)
		}
	}
}

func TestValidateLogFormat(t *testing.T) {
	for _, format := range []string{"", "json", "console"} {
		if err := ValidateLogFormat(format); err != nil {
			t.Errorf("ValidateLogFormat(%q) unexpected error: %v", format, err)
		}
	}
	if err := ValidateLogFormat("logfmt"); err == nil {
		t.Errorf("ValidateLogFormat(%q) expected error", "logfmt")
	}
}
