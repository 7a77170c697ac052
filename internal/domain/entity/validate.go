package entity

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"medical-record/pkg/apperror"
)

var egnPattern = regexp.MustCompile(`^\d{10}$`)

func checkLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if strings.TrimSpace(value) == "" && min > 0 {
		return apperror.Validation("%s is required", field)
	}
	if n < min || n > max {
		return apperror.Validation("%s must be between %d and %d characters", field, min, max)
	}
	return nil
}

func checkMaxLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return apperror.Validation("%s must be at most %d characters", field, max)
	}
	return nil
}
