// Package amountutils normalizes the heterogeneous currency-formatted
// amounts produced by the extraction boundary into decimal values.
package amountutils

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"fjacquet/statement-verify/internal/models"
	"fjacquet/statement-verify/internal/parsererror"
)

// Tolerance is the statement-currency tolerance used for all balance
// comparisons: two amounts closer than 0.01 are treated as equal.
var Tolerance = decimal.RequireFromString("0.01")

var (
	currencySymbols = regexp.MustCompile(`[£$€¥₹]`)
	numericResidue  = regexp.MustCompile(`[^\d.-]`)
)

// Parse converts a raw amount token into a decimal value. Currency
// symbols and formatting noise (thousands separators, whitespace,
// currency codes) are stripped before parsing. A token that leaves no
// valid number behind is a hard failure, never a silent zero.
func Parse(raw string) (decimal.Decimal, error) {
	cleaned := currencySymbols.ReplaceAllString(raw, "")
	cleaned = numericResidue.ReplaceAllString(cleaned, "")

	if cleaned == "" {
		return decimal.Zero, &parsererror.AmountParseError{
			Value: raw,
			Err:   fmt.Errorf("no numeric content"),
		}
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &parsererror.AmountParseError{Value: raw, Err: err}
	}
	return amount, nil
}

// ParseFlex parses an amount as delivered by the extraction boundary.
// An absent value is a parse failure: the caller decides whether absence
// is tolerable, not the parser.
func ParseFlex(a models.FlexAmount) (decimal.Decimal, error) {
	if a.IsEmpty() {
		return decimal.Zero, &parsererror.AmountParseError{
			Value: a.Raw,
			Err:   fmt.Errorf("missing amount"),
		}
	}
	return Parse(a.Raw)
}

// StripCurrencySymbols removes the recognized currency symbols from a
// string, leaving everything else intact. The report layer uses this to
// keep serialized amounts currency-neutral.
func StripCurrencySymbols(s string) string {
	return currencySymbols.ReplaceAllString(s, "")
}

// WithinTolerance reports whether two amounts differ by less than the
// statement tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}

// IsZeroish reports whether an amount is within tolerance of zero.
func IsZeroish(a decimal.Decimal) bool {
	return a.Abs().LessThan(Tolerance)
}
