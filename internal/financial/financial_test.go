package financial

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-verify/internal/models"
)

func payload(opening, closing string, confidence float64, amounts ...string) *models.FinancialData {
	data := &models.FinancialData{
		OpeningBalance: models.BalanceMarker{Amount: models.FlexAmount{Raw: opening}, Date: "01 Mar 2025"},
		ClosingBalance: models.BalanceMarker{Amount: models.FlexAmount{Raw: closing}, Date: "31 Mar 2025"},
		Confidence:     confidence,
	}
	for _, a := range amounts {
		data.Transactions = append(data.Transactions, models.Transaction{
			Date:        "15 Mar 2025",
			Description: "LINE",
			Amount:      models.FlexAmount{Raw: a},
		})
	}
	return data
}

func TestBuildAnalysisTotals(t *testing.T) {
	analysis := BuildAnalysis(payload("1000.00", "1750.00", 0.9, "£500.00", "1,250.00", "-1000.00"))

	assert.True(t, decimal.NewFromInt(1750).Equal(analysis.TotalDeposits),
		"deposits: got %s", analysis.TotalDeposits)
	assert.True(t, decimal.NewFromInt(1000).Equal(analysis.TotalWithdrawals),
		"withdrawals: got %s", analysis.TotalWithdrawals)
	assert.Equal(t, 3, analysis.TransactionCount)
	assert.InDelta(t, 0.9, analysis.Confidence, 1e-9)
	assert.True(t, analysis.Reconciliation.Matches)
	assert.False(t, analysis.Patterns.Found)
	assert.Empty(t, analysis.Err)
}

func TestBuildAnalysisNilPayload(t *testing.T) {
	analysis := BuildAnalysis(nil)

	assert.Zero(t, analysis.Confidence)
	assert.Equal(t, "failed to extract financial data", analysis.Err)
	assert.Zero(t, analysis.TransactionCount)
	assert.False(t, analysis.Reconciliation.Attempted())
}

func TestBuildAnalysisExcludesUnparseableAmounts(t *testing.T) {
	analysis := BuildAnalysis(payload("100.00", "600.00", 0.8, "500.00", "XXXX"))

	// The malformed transaction is flagged, not zeroed.
	require.Len(t, analysis.Notes, 1)
	assert.Contains(t, analysis.Notes[0], "transaction 2")
	assert.True(t, decimal.NewFromInt(500).Equal(analysis.TotalDeposits))

	// Reconciliation fails closed on the same malformed amount.
	assert.False(t, analysis.Reconciliation.Matches)
	assert.False(t, analysis.Reconciliation.Attempted())
}

func TestBuildAnalysisPatternsSkippedWhenBalancesUnparseable(t *testing.T) {
	analysis := BuildAnalysis(payload("n/a", "600.00", 0.7, "500.00"))

	assert.False(t, analysis.Patterns.Found)
	assert.Contains(t, analysis.Notes, "suspicious-pattern checks skipped: balances unparseable")
	assert.False(t, analysis.Reconciliation.Attempted())
}

func TestBuildAnalysisDetectsPatterns(t *testing.T) {
	analysis := BuildAnalysis(payload("0.00", "0.00", 0.85))

	require.True(t, analysis.Patterns.Found)
	assert.Equal(t, []string{"Both opening and closing balances are zero (0.00)"}, analysis.Patterns.Patterns)
}

func TestBuildAnalysisReconciliationMismatch(t *testing.T) {
	analysis := BuildAnalysis(payload("1000.00", "1800.00", 0.6, "500.00", "250.00"))

	require.True(t, analysis.Reconciliation.Attempted())
	assert.False(t, analysis.Reconciliation.Matches)
	assert.True(t, decimal.NewFromInt(50).Equal(analysis.Reconciliation.Discrepancy))
}
