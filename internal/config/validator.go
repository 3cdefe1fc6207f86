package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var parseModes = []string{"Markdown", "MarkdownV2", "HTML"}

// newValidator returns a validator with the jsonmonitor tags registered.
// Field names in errors are the YAML keys users write.
func newValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	// Telegram's parse modes are case-sensitive; empty sends plain text
	_ = validate.RegisterValidation("parsemode", func(fl validator.FieldLevel) bool {
		mode := fl.Field().String()
		return mode == "" || contains(parseModes, mode)
	})

	return validate
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration validation error: config is nil")
	}

	err := newValidator().Struct(cfg)
	if err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			var validationErrorMessages []string
			for _, e := range errs {
				msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", e.Namespace(), e.Tag())
				if e.Param() != "" {
					msg += fmt.Sprintf(" (expected: %s)", e.Param())
				}
				if e.Value() != nil && e.Value() != "" {
					msg += fmt.Sprintf(", actual: '%v'", e.Value())
				}
				validationErrorMessages = append(validationErrorMessages, msg)
			}
			return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(validationErrorMessages, "\n  "))
		}
		return fmt.Errorf("configuration validation error: %w", err)
	}
	return nil
}

// FieldReset describes a setting that was replaced by its default.
type FieldReset struct {
	Field   string
	Value   any
	Default any
	Rule    string
}

func (r FieldReset) String() string {
	return fmt.Sprintf("%s: value '%v' fails rule '%s', using '%v'", r.Field, r.Value, r.Rule, r.Default)
}

// RepairConfig resets every field that fails validation to its default and
// reports what it replaced. Other fields, credentials included, are kept.
// Parse modes are first matched case-insensitively.
func RepairConfig(cfg *GlobalConfig) []FieldReset {
	if cfg == nil {
		return nil
	}

	if mode := cfg.NotificationConfig.ParseMode; mode != "" && !contains(parseModes, mode) {
		for _, known := range parseModes {
			if strings.EqualFold(known, mode) {
				cfg.NotificationConfig.ParseMode = known
				break
			}
		}
	}

	var errs validator.ValidationErrors
	if !errors.As(newValidator().Struct(cfg), &errs) {
		return nil
	}

	defaults := reflect.ValueOf(NewDefaultGlobalConfig()).Elem()
	current := reflect.ValueOf(cfg).Elem()

	var resets []FieldReset
	for _, e := range errs {
		// StructNamespace is GlobalConfig.<Section>.<Field>
		path := strings.Split(e.StructNamespace(), ".")[1:]
		dst, src := current, defaults
		for _, name := range path {
			dst = dst.FieldByName(name)
			src = src.FieldByName(name)
		}
		if !dst.IsValid() || !dst.CanSet() {
			continue
		}
		dst.Set(src)
		resets = append(resets, FieldReset{
			Field:   e.Namespace(),
			Value:   e.Value(),
			Default: src.Interface(),
			Rule:    e.Tag(),
		})
	}
	return resets
}
