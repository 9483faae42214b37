// Package pricing implements the money handling and installment math
// behind the purchase forms: naira formatting, amount parsing, the
// down-payment floor, and per-installment amounts derived from the
// catalog's plan rules.
package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

const nairaSign = "₦"

// ParseAmount reads a user-typed money amount. Currency signs, commas
// and surrounding space are tolerated; the result must be a
// non-negative finite number.
func ParseAmount(input string) (float64, error) {
	cleaned := strings.TrimSpace(input)
	cleaned = strings.ReplaceAll(cleaned, nairaSign, "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, util.NewValidationError("Enter an amount")
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, util.NewValidationError("Enter a valid amount")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, util.NewValidationError("Enter a valid amount")
	}
	return amount, nil
}

// FormatAmount renders an amount with comma grouping. Whole amounts
// drop the decimal part; fractional amounts keep two places.
func FormatAmount(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	var text string
	if amount == math.Trunc(amount) {
		text = groupDigits(strconv.FormatFloat(amount, 'f', 0, 64))
	} else {
		text = strconv.FormatFloat(amount, 'f', 2, 64)
		if dot := strings.IndexByte(text, '.'); dot >= 0 {
			text = groupDigits(text[:dot]) + text[dot:]
		}
	}
	if negative {
		return "-" + text
	}
	return text
}

// FormatNaira renders an amount with the naira sign.
func FormatNaira(amount float64) string {
	return fmt.Sprintf("%s%s", nairaSign, FormatAmount(amount))
}

func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var builder strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		builder.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if builder.Len() > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(digits[i : i+3])
	}
	return builder.String()
}
