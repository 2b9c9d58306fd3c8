package utils

import (
	"fmt"
	"strings"
	"time"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidatePositiveAmount checks if a minor-unit amount is positive
func ValidatePositiveAmount(value int64, fieldName string) error {
	if value <= 0 {
		return NewValidationError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateNotEmpty checks if a slice is not empty
func ValidateNotEmpty[T any](slice []T, fieldName string) error {
	if len(slice) == 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be empty", fieldName))
	}
	return nil
}

// ValidateCurrencyCode checks for a three-letter ISO 4217 code
func ValidateCurrencyCode(code, fieldName string) error {
	code = strings.TrimSpace(code)
	if len(code) != 3 {
		return NewValidationError(fmt.Sprintf("%s must be a three-letter ISO 4217 code", fieldName))
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return NewValidationError(fmt.Sprintf("%s must be a three-letter ISO 4217 code", fieldName))
		}
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date field
func ParseDate(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, NewValidationError(fmt.Sprintf("%s must be a YYYY-MM-DD date", fieldName))
	}
	return t, nil
}

// ValidateDateOrder checks that start is not after end
func ValidateDateOrder(start, end time.Time) error {
	if start.After(end) {
		return NewValidationError("start date must not be after end date")
	}
	return nil
}
