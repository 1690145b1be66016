package bot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount reads the leading token as a positive decimal amount, rounded
// to 2 fractional digits, and returns the remaining tokens.
func parseAmount(args []string) (decimal.Decimal, []string, error) {
	if len(args) == 0 {
		return decimal.Decimal{}, nil, fmt.Errorf("missing amount")
	}

	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		return decimal.Decimal{}, nil, fmt.Errorf("parsing amount %q: %w", args[0], err)
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, nil, fmt.Errorf("amount %q is not positive", args[0])
	}

	return amount.Round(2), args[1:], nil
}

// description joins the remaining tokens, or is absent when none remain.
func description(args []string) *string {
	if len(args) == 0 {
		return nil
	}
	d := strings.Join(args, " ")
	return &d
}
