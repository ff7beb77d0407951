// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"net/url"
	"strconv"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/opaqueid/internal/errors"
	"github.com/allisson/opaqueid/internal/opaqueid/domain"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// KindName validates that a string can name an identifier kind: at most 8 ASCII bytes.
var KindName = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := domain.DeriveTag(s)
		return err == nil
	},
	validation.NewError("validation_kind_name", "must be at most 8 ASCII characters"),
)

// Int64 validates that a string or json.Number holds a base 10 signed 64-bit integer.
var Int64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		n, isStringer := value.(interface{ String() string })
		if !isStringer {
			return validation.NewError("validation_int64_type", "must be a string or number")
		}
		s = n.String()
	}
	if s == "" {
		return nil // Let Required handle empty values
	}
	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		return validation.NewError("validation_int64", "must be an integer between -9223372036854775808 and 9223372036854775807")
	}
	return nil
})

// Base64 validates that a string is valid standard base64.
var Base64 = Base64Length(0)

// Base64Length validates that a string is standard base64 decoding to exactly
// n bytes. n of 0 accepts any length.
func Base64Length(n int) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return validation.NewError("validation_base64_type", "must be a string")
		}
		if s == "" {
			return nil // Let Required handle empty strings
		}
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return validation.NewError("validation_base64", "must be valid base64-encoded data")
		}
		if n > 0 && len(raw) != n {
			return validation.NewError("validation_base64_length", "must decode to "+strconv.Itoa(n)+" bytes")
		}
		return nil
	})
}

// Origin validates a CORS origin: "*" or an http(s) scheme and host with no path.
var Origin = validation.NewStringRuleWithError(
	func(s string) bool {
		if s == "*" {
			return true
		}
		u, err := url.Parse(s)
		if err != nil {
			return false
		}
		return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" && (u.Path == "" || u.Path == "/") &&
			u.RawQuery == "" && u.Fragment == ""
	},
	validation.NewError("validation_origin", "must be * or an origin such as https://app.example.com"),
)
