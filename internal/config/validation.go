package config

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LogLevels lists the accepted values of logger.level.
var LogLevels = []interface{}{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}

// ReportFormats lists the accepted values of report.format.
var ReportFormats = []interface{}{"json", "text", "sarif"}

// ValidateConfig checks if the global configuration has valid values.
// The log level is normalized to upper case.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	if err := ValidateReportConfig(&cfg.Report); err != nil {
		return fmt.Errorf("YAML global config: report directive is invalid: %w", err)
	}
	return nil
}

// ValidateLoggerConfig checks the logger section.
func ValidateLoggerConfig(l *Logger) error {
	if l == nil {
		return fmt.Errorf("logger configuration is nil")
	}
	l.Level = strings.ToUpper(strings.TrimSpace(l.Level))

	return validation.ValidateStruct(l,
		validation.Field(&l.Level, validation.In(LogLevels...).Error("must be one of TRACE, DEBUG, INFO, WARN, ERROR")),
	)
}

// ValidateReportConfig checks the report section. Empty values are allowed.
func ValidateReportConfig(r *Report) error {
	r.Format = strings.ToLower(strings.TrimSpace(r.Format))

	return validation.ValidateStruct(r,
		validation.Field(&r.Format, validation.In(ReportFormats...)),
		validation.Field(&r.Limit, validation.Min(0)),
	)
}
