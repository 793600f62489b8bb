// Package reconcile verifies that a statement's opening balance plus the
// net transaction flow equals its stated closing balance.
package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fjacquet/statement-verify/internal/amountutils"
	"fjacquet/statement-verify/internal/models"
)

// Reconcile parses the opening and closing balances and the ordered
// transaction list, computes the expected closing balance and compares it
// against the stated one within tolerance.
//
// Any unparseable amount fails the reconciliation closed: the result
// carries an error naming the offending field instead of a false match.
// Callers distinguish that state from a genuine mismatch via Attempted().
func Reconcile(opening, closing models.BalanceMarker, transactions []models.Transaction) models.ReconciliationResult {
	openingAmount, err := amountutils.ParseFlex(opening.Amount)
	if err != nil {
		return failed(fmt.Sprintf("opening balance: %v", err))
	}

	closingAmount, err := amountutils.ParseFlex(closing.Amount)
	if err != nil {
		return failed(fmt.Sprintf("closing balance: %v", err))
	}

	netChange := decimal.Zero
	for i, tx := range transactions {
		amount, err := amountutils.ParseFlex(tx.Amount)
		if err != nil {
			return failed(fmt.Sprintf("transaction %d (%s): %v", i+1, tx.Description, err))
		}
		netChange = netChange.Add(amount)
	}

	expected := openingAmount.Add(netChange)
	return models.ReconciliationResult{
		Matches:         amountutils.WithinTolerance(expected, closingAmount),
		ExpectedClosing: expected,
		ReportedClosing: closingAmount,
		Discrepancy:     closingAmount.Sub(expected),
	}
}

func failed(reason string) models.ReconciliationResult {
	return models.ReconciliationResult{
		Matches: false,
		Err:     reason,
	}
}
