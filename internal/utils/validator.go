package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	errEmailRequired    = errors.New("Email is required")
	errEmailInvalid     = errors.New("Please enter a valid email address")
	errPasswordRequired = errors.New("Password is required")
	errPasswordLength   = errors.New("Password must be at least 8 characters")
	errPasswordUpper    = errors.New("Password must contain an uppercase letter")
	errPasswordDigit    = errors.New("Password must contain a number")
	errTermsRequired    = errors.New("You must accept the terms")
	errNameTooShort     = errors.New("Name must be at least 2 characters")
	errNameTooLong      = errors.New("Name must be at most 100 characters")
	errProfileEmail     = errors.New("Please enter a valid email")
	errEmailTooLong     = errors.New("Email must be at most 255 characters")
	errMealType         = errors.New("Choose breakfast, lunch, dinner or snack")
	errRequired         = errors.New("is required")
)

var customErrors = map[string]error{
	"SignUpRequest.Email.required":          errEmailRequired,
	"SignUpRequest.Email.plateemail":        errEmailInvalid,
	"SignUpRequest.Password.required":       errPasswordRequired,
	"SignUpRequest.Password.min":            errPasswordLength,
	"SignUpRequest.Password.hasupper":       errPasswordUpper,
	"SignUpRequest.Password.hasdigit":       errPasswordDigit,
	"SignUpRequest.TermsAccepted.required":  errTermsRequired,
	"SignInRequest.Email.required":          errEmailRequired,
	"SignInRequest.Email.plateemail":        errEmailInvalid,
	"SignInRequest.Password.required":       errPasswordRequired,
	"ResetPasswordRequest.Email.required":   errEmailRequired,
	"ResetPasswordRequest.Email.plateemail": errEmailInvalid,
	"EditProfileForm.FullName.min":          errNameTooShort,
	"EditProfileForm.FullName.max":          errNameTooLong,
	"EditProfileForm.Email.required":        errProfileEmail,
	"EditProfileForm.Email.email":           errProfileEmail,
	"EditProfileForm.Email.max":             errEmailTooLong,
	"UpdateProfileRequest.FullName.min":     errNameTooShort,
	"UpdateProfileRequest.FullName.max":     errNameTooLong,
	"UpdateProfileRequest.Email.email":      errProfileEmail,
	"UpdateProfileRequest.Email.max":        errEmailTooLong,
	"SelectMealRequest.MealType.required":   errMealType,
	"SelectMealRequest.MealType.oneof":      errMealType,
}

var Validate = InitValidator()

// InitValidator builds a validator that reports json field names and knows
// the account form rules.
func InitValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("plateemail", EmailValidator)
	_ = v.RegisterValidation("hasupper", containsRune(unicode.IsUpper))
	_ = v.RegisterValidation("hasdigit", containsRune(unicode.IsDigit))
	return v
}

// EmailValidator accepts anything shaped like local@domain.tld.
var EmailValidator = func(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

func containsRune(pred func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), pred) >= 0
	}
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidationErrors maps a validator error to one message per json field.
// The first failing rule of a field wins.
func ValidationErrors(err error) map[string]string {
	fields := make(map[string]string)

	var validationErr validator.ValidationErrors
	if !errors.As(err, &validationErr) {
		return fields
	}
	for _, e := range validationErr {
		if _, seen := fields[e.Field()]; seen {
			continue
		}
		key := trimRootNamespace(e.StructNamespace()) + "." + e.Tag()

		msg := fmt.Sprintf("%s is invalid", e.Field())
		if v, ok := customErrors[key]; ok {
			msg = v.Error()
		} else if e.Tag() == "required" {
			msg = e.Field() + " " + errRequired.Error()
		}
		fields[e.Field()] = msg
	}
	return fields
}

// trimRootNamespace drops any package or pointer prefix so keys read
// "Struct.Field".
func trimRootNamespace(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) <= 2 {
		return ns
	}
	return strings.Join(parts[len(parts)-2:], ".")
}
