// Package patterns scans normalized transaction and balance data for a
// fixed set of statistically implausible shapes. The checks are heuristic
// and independent of the perceptual (visual/structural) signals.
package patterns

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fjacquet/statement-verify/internal/amountutils"
	"fjacquet/statement-verify/internal/models"
)

var roundUnit = decimal.NewFromInt(1000)

// Detect evaluates the four suspicious-pattern checks in fixed order,
// appending every check that fires. The checks are not mutually
// exclusive and none short-circuits the others.
//
// Inputs are already-parsed amounts; amounts are in statement order.
func Detect(opening, closing decimal.Decimal, amounts []decimal.Decimal) models.PatternReport {
	var matched []string

	// 1. Identical zero balances.
	if amountutils.IsZeroish(opening) && amountutils.IsZeroish(closing) {
		matched = append(matched, "Both opening and closing balances are zero (0.00)")
	}

	// 2. Balance moved with nothing recorded.
	if len(amounts) == 0 && !amountutils.WithinTolerance(closing, opening) {
		matched = append(matched, "Balance changed with no transactions recorded")
	}

	// 3. Activity recorded but the balances never moved.
	netChange := decimal.Zero
	for _, amount := range amounts {
		netChange = netChange.Add(amount)
	}
	if len(amounts) > 0 && amountutils.WithinTolerance(closing, opening) && !amountutils.IsZeroish(netChange) {
		matched = append(matched, "Transactions present but opening and closing balances are identical")
	}

	// 4. Clusters of large round-number transactions.
	roundCount := 0
	for _, amount := range amounts {
		if amount.Abs().GreaterThanOrEqual(roundUnit) && amountutils.IsZeroish(amount.Mod(roundUnit)) {
			roundCount++
		}
	}
	if roundCount > 2 {
		matched = append(matched, fmt.Sprintf("Multiple large round-number transactions: %d found", roundCount))
	}

	return models.PatternReport{
		Found:    len(matched) > 0,
		Patterns: matched,
	}
}
