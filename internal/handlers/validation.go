package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	pkgerrors "inventory/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// newValidator reports fields by their JSON names and compares decimals numerically.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// validationError converts validator output into a field-level validation error.
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Validation failed")
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return pkgerrors.Validation(errorMessages)
}

// parseID reads a numeric path parameter; anything else names no record.
func parseID(raw, entity string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, pkgerrors.NotFound("%s with ID %s not found", entity, raw)
	}
	return uint(id), nil
}
