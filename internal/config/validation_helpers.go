package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	tokenerrors "github.com/alexisbeaulieu97/tokenkit/pkg/errors"
)

// convertValidationError normalizes validator errors into tokenkit validation errors.
func convertValidationError(err error, scope string) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		ve := ves[0]
		field := yamlishFieldName(ve, scope)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return tokenerrors.NewValidationError(field, msg, err)
	}

	return tokenerrors.NewValidationError(scope, err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError, scope string) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	// Drop the struct type name; scope already says where we are.
	if len(parts) > 1 {
		parts = parts[1:]
	}
	var lowered []string
	if scope != "" {
		lowered = append(lowered, scope)
	}
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldForThemeSet(index int) string {
	return fmt.Sprintf("%s[%d]", themesKey, index)
}

func fieldForToken(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
