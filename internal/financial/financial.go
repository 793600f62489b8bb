// Package financial builds the normalized financial analysis for one
// statement: parsed transaction totals, the balance reconciliation and
// the suspicious-pattern report.
package financial

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fjacquet/statement-verify/internal/amountutils"
	"fjacquet/statement-verify/internal/models"
	"fjacquet/statement-verify/internal/patterns"
	"fjacquet/statement-verify/internal/reconcile"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// BuildAnalysis aggregates the raw extraction payload into a
// FinancialAnalysis. A nil payload (the extraction produced nothing
// usable) yields a zero-confidence result with an explicit error marker
// instead of an error return; document analysis continues around it.
//
// Transactions whose amount cannot be parsed are excluded from the
// deposit/withdrawal totals and recorded as notes. They are never
// silently counted as zero.
func BuildAnalysis(data *models.FinancialData) models.FinancialAnalysis {
	if data == nil {
		return models.FinancialAnalysis{
			Confidence: 0,
			Err:        "failed to extract financial data",
			Reconciliation: models.ReconciliationResult{
				Err: "failed to extract financial data",
			},
		}
	}

	analysis := models.FinancialAnalysis{
		OpeningBalance:   data.OpeningBalance,
		ClosingBalance:   data.ClosingBalance,
		TransactionCount: len(data.Transactions),
		Confidence:       data.Confidence,
	}

	totalDeposits := decimal.Zero
	totalWithdrawals := decimal.Zero
	parsed := make([]decimal.Decimal, 0, len(data.Transactions))

	for i, tx := range data.Transactions {
		amount, err := amountutils.ParseFlex(tx.Amount)
		if err != nil {
			note := fmt.Sprintf("transaction %d (%s): %v", i+1, tx.Description, err)
			analysis.Notes = append(analysis.Notes, note)
			log.WithField("transaction", i+1).WithError(err).
				Warn("Excluding transaction with unparseable amount from totals")
			continue
		}
		parsed = append(parsed, amount)
		if amount.IsPositive() {
			totalDeposits = totalDeposits.Add(amount)
		} else if amount.IsNegative() {
			totalWithdrawals = totalWithdrawals.Add(amount.Abs())
		}
	}

	analysis.TotalDeposits = totalDeposits
	analysis.TotalWithdrawals = totalWithdrawals
	analysis.Reconciliation = reconcile.Reconcile(data.OpeningBalance, data.ClosingBalance, data.Transactions)

	opening, openingErr := amountutils.ParseFlex(data.OpeningBalance.Amount)
	closing, closingErr := amountutils.ParseFlex(data.ClosingBalance.Amount)
	if openingErr != nil || closingErr != nil {
		// The reconciliation error path already carries risk for
		// unparseable balances; the heuristics need real numbers.
		analysis.Notes = append(analysis.Notes, "suspicious-pattern checks skipped: balances unparseable")
		analysis.Patterns = models.PatternReport{}
		return analysis
	}

	analysis.Patterns = patterns.Detect(opening, closing, parsed)
	return analysis
}
