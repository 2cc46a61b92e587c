// Package validator wraps go-playground/validator with the project's error
// formatting and the custom tags used across addresswatch.
//
// Besides the built-in tags, it registers:
//
//   - watchaddr: the address grammar accepted by the watch panel (legacy
//     base58, bech32-style segwit, and raw hex public keys).
package validator

import (
	"errors"
	"fmt"
	"regexp"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is returned as the first error in a multi-error chain when validation fails.
var ErrValidationFailed = errors.New("validation failed")

// TagWatchAddress is the tag name of the watch panel address grammar.
const TagWatchAddress = "watchaddr"

// watchAddressPattern is the union of the address forms the panel accepts.
// It only checks shape; checksums and network prefixes are left to the wallet.
var watchAddressPattern = regexp.MustCompile(
	`^([a-km-zA-HJ-NP-Z1-9]{26,35}|[a-km-zA-HJ-NP-Z1-9]{80}|[A-z]{2,5}1[a-zA-HJ-NP-Z0-9]{39,59}|04[a-fA-F0-9]{128}|(02|03)[a-fA-F0-9]{64})$`,
)

var validator *gvalidator.Validate

// errStringFormat describes a single failing field.
//
// Example: "'Network': value 'foo' does not meet the requirements for the 'oneof' validation"
const errStringFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

func init() {
	validator = gvalidator.New(gvalidator.WithRequiredStructEnabled())

	if err := validator.RegisterValidation(TagWatchAddress, validateWatchAddress); err != nil {
		panic(err)
	}
}

func validateWatchAddress(fl gvalidator.FieldLevel) bool {
	return watchAddressPattern.MatchString(fl.Field().String())
}

// formatError turns validator errors into a chain rooted at ErrValidationFailed,
// one formatted message per failing field. Other errors are returned unchanged.
func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, validationErr := range validationErrors {
		field := validationErr.Field()
		if field == "" {
			field = validationErr.Tag()
		}

		errs = append(errs, fmt.Errorf(errStringFormat, field, validationErr.Value(), validationErr.Tag()))
	}

	return errors.Join(errs...)
}

// Validate checks if the given struct satisfies its validation tags.
//
//	type Input struct {
//	    Address string `validate:"required,watchaddr"`
//	}
//
//	if err := validator.Validate(input); errors.Is(err, validator.ErrValidationFailed) {
//	    // Handle validation failure
//	}
func Validate(v any) error {
	if err := validator.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}

// Var validates a single value against the given tag expression.
func Var(v any, tag string) error {
	if err := validator.Var(v, tag); err != nil {
		return formatError(err)
	}

	return nil
}

// IsWatchAddress reports whether s matches the watch panel address grammar.
func IsWatchAddress(s string) bool {
	return Var(s, TagWatchAddress) == nil
}
