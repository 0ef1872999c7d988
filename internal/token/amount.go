package token

import (
	"math/big"
	"strings"

	coreerr "github.com/somniflow/somniflow/pkg/errors"
)

// ParseAmount parses a human decimal amount string to base units with the
// given decimal precision. For example, "1.5" with 18 decimals returns
// 1500000000000000000. Conversion is exact string/integer manipulation so no
// floating-point representation error can creep in; fractional digits beyond
// the precision are truncated, never rounded.
//
//nolint:gocognit,gocyclo // Decimal parsing requires sequential validation steps
func ParseAmount(amount string, decimals int) (*big.Int, error) {
	invalid := func(reason string) error {
		return coreerr.WithDetails(coreerr.ErrInvalidInput, map[string]string{
			"amount": amount,
			"reason": reason,
		})
	}

	if amount == "" {
		return nil, invalid("empty amount")
	}

	// Check for negative amounts
	if strings.HasPrefix(amount, "-") {
		return nil, invalid("negative amount")
	}

	// Split by decimal point
	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return nil, invalid("multiple decimal points")
	}

	intPart := parts[0]
	decPart := ""
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if intPart == "" && decPart == "" {
		return nil, invalid("no digits")
	}

	// Validate integer part
	if intPart == "" {
		intPart = "0"
	}
	for _, c := range intPart {
		if c < '0' || c > '9' {
			return nil, invalid("non-digit character")
		}
	}
	intVal, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return nil, invalid("invalid integer part")
	}

	// Scale integer part
	multiplier := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	result := new(big.Int).Mul(intVal, multiplier)

	// Handle decimal part
	if decPart != "" {
		// Validate decimal characters
		for _, c := range decPart {
			if c < '0' || c > '9' {
				return nil, invalid("non-digit character")
			}
		}

		// Pad or truncate decimal part
		for len(decPart) < decimals {
			decPart += "0"
		}
		decPart = decPart[:decimals]

		if decPart != "" {
			decVal, ok := new(big.Int).SetString(decPart, 10)
			if !ok {
				return nil, invalid("invalid fractional part")
			}

			result = result.Add(result, decVal)
		}
	}

	return result, nil
}

// FormatAmount converts a base-unit amount to a human-readable string with
// the given decimal precision. Trailing zeros after the decimal point are
// removed. For example, 1500000000000000000 with 18 decimals returns "1.5".
func FormatAmount(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}

	str := amount.String()

	// Pad with leading zeros if necessary
	for len(str) <= decimals {
		str = "0" + str
	}

	// Insert decimal point
	decimalPos := len(str) - decimals

	result := str[:decimalPos]
	if decimals > 0 {
		result += "." + str[decimalPos:]

		// Remove unnecessary trailing zeros
		for len(result) > 1 && result[len(result)-1] == '0' && result[len(result)-2] != '.' {
			result = result[:len(result)-1]
		}
		// Drop a bare ".0" tail
		if strings.HasSuffix(result, ".0") {
			result = result[:len(result)-2]
		}
	}

	return result
}
