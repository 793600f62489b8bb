package models

import "github.com/shopspring/decimal"

// RiskLevel is the four-bucket discretization of the fused risk score.
type RiskLevel string

const (
	RiskMinimal RiskLevel = "Minimal"
	RiskLow     RiskLevel = "Low"
	RiskMedium  RiskLevel = "Medium"
	RiskHigh    RiskLevel = "High"
)

// Component names used as keys in RiskVerdict.ComponentDetails.
const (
	ComponentVisualTampering    = "visual_tampering"
	ComponentStructure          = "structure"
	ComponentReconciliation     = "reconciliation"
	ComponentSuspiciousPatterns = "suspicious_patterns"
)

// ComponentOrder fixes the enumeration order of the four risk components
// for evidence and risk-factor output.
var ComponentOrder = []string{
	ComponentVisualTampering,
	ComponentStructure,
	ComponentReconciliation,
	ComponentSuspiciousPatterns,
}

// ComponentRisk is one independently scored fraud signal: a risk
// contribution in [0,1], the signal's own confidence in [0,1], and the
// human-readable evidence backing it.
type ComponentRisk struct {
	RiskScore  float64  `json:"risk_score"`
	Confidence float64  `json:"confidence"`
	Evidence   []string `json:"evidence"`
}

// RiskVerdict is the fused fraud-risk result for one document. It is
// computed once and never mutated.
type RiskVerdict struct {
	RiskScore        float64                  `json:"risk_score"`
	RiskLevel        RiskLevel                `json:"risk_level"`
	Confidence       float64                  `json:"confidence"`
	RiskFactors      []string                 `json:"risk_factors"`
	ComponentDetails map[string]ComponentRisk `json:"component_details"`
}

// ReconciliationResult reports whether opening balance plus net
// transaction flow equals the stated closing balance within tolerance.
// A non-empty Err means reconciliation could not be attempted at all,
// which is a distinct state from a genuine mismatch: Matches is false in
// both, but only the latter carries a meaningful Discrepancy.
type ReconciliationResult struct {
	Matches         bool            `json:"matches"`
	ExpectedClosing decimal.Decimal `json:"expected_closing_balance"`
	ReportedClosing decimal.Decimal `json:"reported_closing_balance"`
	Discrepancy     decimal.Decimal `json:"discrepancy"`
	Err             string          `json:"error,omitempty"`
}

// Attempted reports whether the balances were parseable enough to compare.
func (r ReconciliationResult) Attempted() bool {
	return r.Err == ""
}

// PatternReport lists the suspicious-pattern heuristics that fired, in
// the fixed evaluation order of the detector.
type PatternReport struct {
	Found    bool     `json:"suspicious_patterns_found"`
	Patterns []string `json:"suspicious_patterns"`
}

// FinancialAnalysis packages the normalized financial extraction: parsed
// totals, the reconciliation verdict, the suspicious-pattern report and
// the extraction confidence. Err is set when the upstream extraction
// produced no usable data; the analysis then carries zero confidence
// instead of failing the document.
type FinancialAnalysis struct {
	OpeningBalance   BalanceMarker        `json:"opening_balance"`
	ClosingBalance   BalanceMarker        `json:"closing_balance"`
	TotalDeposits    decimal.Decimal      `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal      `json:"total_withdrawals"`
	TransactionCount int                  `json:"transaction_count"`
	Confidence       float64              `json:"confidence"`
	Reconciliation   ReconciliationResult `json:"reconciliation"`
	Patterns         PatternReport        `json:"suspicious_patterns"`
	Notes            []string             `json:"notes,omitempty"`
	Err              string               `json:"error,omitempty"`
}
