package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/Iron-Ham/workorders/internal/launch"
	"github.com/Iron-Ham/workorders/internal/tui/styles"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "api.base_url")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateAPI()...)
	errors = append(errors, c.validateLaunch()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateAPI() []ValidationError {
	var errors []ValidationError

	u, err := url.Parse(c.API.BaseURL)
	switch {
	case c.API.BaseURL == "":
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: "must not be empty",
		})
	case err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "":
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: "must be an absolute http or https URL",
		})
	case u.RawQuery != "" || u.Fragment != "":
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: "must not carry a query or fragment",
		})
	}

	return errors
}

func (c *Config) validateLaunch() []ValidationError {
	var errors []ValidationError

	if _, err := launch.Parse(c.Launch.URL); err != nil {
		errors = append(errors, ValidationError{
			Field:   "launch.url",
			Value:   c.Launch.URL,
			Message: err.Error(),
		})
	}

	return errors
}

func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	theme := c.TUI.Theme
	if theme != "" && !slices.Contains(styles.ThemeNames(), theme) {
		// Anything that is not a built-in name must be a readable theme file.
		if _, err := os.Stat(theme); err != nil {
			errors = append(errors, ValidationError{
				Field:   "tui.theme",
				Value:   theme,
				Message: fmt.Sprintf("must be one of %s or a path to a theme file", strings.Join(styles.ThemeNames(), ", ")),
			})
		}
	}

	if layout := c.TUI.TimeLayout(); exampleTime(layout) == layout {
		errors = append(errors, ValidationError{
			Field:   "tui.locale_time_format",
			Value:   c.TUI.TimeFormat,
			Message: "must contain at least one Go time layout element, e.g. 02.01.2006",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
