package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Kenyan and international phone numbers: optional +, 9 to 15 digits,
	// with spaces or dashes between groups.
	PhonePattern = `^\+?[0-9][0-9 \-]{7,18}[0-9]$`

	// KCSE mean grades A to E with optional + or -.
	KCSEGradePattern = `^(A-?|[BCD][+-]?|E)$`
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Phone     *regexp.Regexp
	KCSEGrade *regexp.Regexp
}{
	Phone:     regexp.MustCompile(PhonePattern),
	KCSEGrade: regexp.MustCompile(KCSEGradePattern),
}

// IsPhone reports whether s looks like a phone number.
func IsPhone(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 9 && digits <= 15 && CompiledPatterns.Phone.MatchString(s)
}

// IsKCSEGrade reports whether s is a KCSE grade such as "B+" or "C-".
// "Not Provided" is accepted for applicants without results.
func IsKCSEGrade(s string) bool {
	s = strings.TrimSpace(s)
	return s == NotProvided || CompiledPatterns.KCSEGrade.MatchString(strings.ToUpper(s))
}

// NotProvided is stored when an applicant gives no grade.
const NotProvided = "Not Provided"

// RegisterRules adds the custom tags used by request DTOs and makes field
// errors report JSON names.
func RegisterRules(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("kcsegrade", func(fl validator.FieldLevel) bool {
		return IsKCSEGrade(fl.Field().String())
	})
}
