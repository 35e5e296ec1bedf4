package validator

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
			Code:    "required",
		},
	}
}

// Present validates that a value was supplied at all.
func Present(field string, present bool) Rule {
	return Rule{
		Check: func() bool {
			return present
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
			Code:    "required",
		},
	}
}

func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Code:    "max_length",
		},
	}
}

// Equal validates that value equals expected.
func Equal[T comparable](field string, value, expected T) Rule {
	return Rule{
		Check: func() bool {
			return value == expected
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be %v", expected),
			Code:    "equal",
		},
	}
}

// InList validates that value is one of allowed.
func InList[T comparable](field string, value T, allowed []T) Rule {
	return Rule{
		Check: func() bool {
			for _, v := range allowed {
				if v == value {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be one of the allowed values",
			Code:    "in_list",
		},
	}
}

// ValidUUID validates the canonical 36-character UUID form.
func ValidUUID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if len(value) != 36 {
				return false
			}
			_, err := uuid.Parse(value)
			return err == nil
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid UUID",
			Code:    "uuid",
		},
	}
}

// ValidURL validates an absolute URL with a scheme and host.
func ValidURL(field, value string) Rule {
	return Rule{
		Check: func() bool {
			u, err := url.ParseRequestURI(value)
			if err != nil {
				return false
			}
			return u.Scheme != "" && u.Host != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid URL",
			Code:    "url",
		},
	}
}

// When applies rule only if cond holds.
func When(cond bool, rule Rule) Rule {
	if cond {
		return rule
	}
	return Rule{}
}
