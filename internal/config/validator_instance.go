package config

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	themeNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
	cssIdentPattern  = regexp.MustCompile(`^[A-Za-z_-][A-Za-z0-9_-]*$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("theme_name", func(fl validator.FieldLevel) bool {
			return themeNamePattern.MatchString(fl.Field().String())
		})

		// Prefixes are glued in front of token keys, so a trailing hyphen is allowed.
		_ = v.RegisterValidation("css_ident", func(fl validator.FieldLevel) bool {
			return cssIdentPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("selector_format", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return strings.Count(value, "%s") == 1 && strings.Count(value, "%") == 1
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// ValidThemeName reports whether name can be used as a theme tree key.
func ValidThemeName(name string) bool {
	return validatorInstance().Var(name, "theme_name") == nil
}
