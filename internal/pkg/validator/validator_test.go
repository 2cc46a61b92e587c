package validator

import (
	"errors"
	"strings"
	"testing"

	gvalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatError(t *testing.T) {
	t.Run("should transform validation errors to formatted errors", func(t *testing.T) {
		type TestStruct struct {
			Name string `validate:"required"`
		}

		err := gvalidator.New().Struct(TestStruct{})
		require.Error(t, err)

		formattedErr := formatError(err)

		assert.ErrorIs(t, formattedErr, ErrValidationFailed)
		assert.Contains(t, formattedErr.Error(), "'Name': value '' does not meet the requirements for the 'required' validation")
	})

	t.Run("should return non validation errors unchanged", func(t *testing.T) {
		original := errors.New("boom")

		assert.Equal(t, original, formatError(original))
	})
}

func TestValidate(t *testing.T) {
	type Config struct {
		Network string `validate:"oneof=mainnet testnet"`
		Address string `validate:"omitempty,watchaddr"`
	}

	t.Run("should accept a valid struct", func(t *testing.T) {
		err := Validate(Config{Network: "mainnet", Address: "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"})
		assert.NoError(t, err)
	})

	t.Run("should report every failing field", func(t *testing.T) {
		err := Validate(Config{Network: "moon", Address: "not-an-address"})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "'Network'")
		assert.Contains(t, err.Error(), "'Address'")
	})
}

func TestIsWatchAddress(t *testing.T) {
	valid := []string{
		"1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
		"3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy",
		"bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq",
		"bc1p5d7rjq7g6rdk2yhzks9smlaqtedr4dekq08ge8ztwac72sfr9rusxg3297",
		"tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx",
		"04" + strings.Repeat("ab", 64),
		"02" + strings.Repeat("cd", 32),
		"03" + strings.Repeat("EF", 32),
		strings.Repeat("a", 80),
	}

	invalid := []string{
		"",
		"hello",
		"1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa0OIl",
		"0x1234567890abcdef1234567890abcdef12345678",
		"05" + strings.Repeat("ab", 32),
		"04" + strings.Repeat("ab", 63),
		" 1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
	}

	for _, address := range valid {
		t.Run("should accept "+address, func(t *testing.T) {
			assert.True(t, IsWatchAddress(address))
		})
	}

	for _, address := range invalid {
		t.Run("should reject "+address, func(t *testing.T) {
			assert.False(t, IsWatchAddress(address))
		})
	}

	t.Run("should return a validation error from Var", func(t *testing.T) {
		err := Var("nope", TagWatchAddress)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}
