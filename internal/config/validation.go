package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Dynamic token patterns that must not appear in configuration values.
// They indicate a template that was not rendered.
var dynamicTokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\{[^}]+\}`),   // ${VAR}
	regexp.MustCompile(`\{\{[^}]+\}\}`), // {{VAR}}
}

// Validate checks the configuration for correctness.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateLogLevel(cfg.Log.Level)...)
	errs = append(errs, validateSchemaExtension(cfg.Schema.Extension)...)
	errs = append(errs, checkStringField("project.name", cfg.Project.Name)...)
	errs = append(errs, checkStringField("project.nebulis_version", cfg.Project.NebulisVersion)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func validateLogLevel(level string) []ValidationError {
	if slices.Contains(ValidLogLevels, level) {
		return nil
	}
	return []ValidationError{{
		Field:   "log.level",
		Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels, ", ")),
		Value:   level,
		Wrapped: ErrInvalidLogLevel,
	}}
}

func validateSchemaExtension(ext string) []ValidationError {
	if ext != "" && !strings.ContainsAny(ext, `./\ `) {
		return nil
	}
	return []ValidationError{{
		Field:   "schema.extension",
		Message: "must be a bare extension such as surql",
		Value:   ext,
		Wrapped: ErrInvalidSchemaExtension,
	}}
}

// checkStringField checks a single string field for dynamic token patterns.
func checkStringField(field, value string) []ValidationError {
	if value == "" {
		return nil
	}
	for _, pattern := range dynamicTokenPatterns {
		if match := pattern.FindString(value); match != "" {
			return []ValidationError{
				{
					Field:   field,
					Message: fmt.Sprintf("contains unexpanded dynamic token: %s", match),
					Value:   value,
					Wrapped: ErrDynamicToken,
				},
			}
		}
	}
	return nil
}
