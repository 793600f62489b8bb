package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-verify/internal/models"
)

func sampleAnalysis() *models.StatementAnalysis {
	financial := models.FinancialAnalysis{
		OpeningBalance:   models.BalanceMarker{Amount: models.FlexAmount{Raw: "£1,000.00"}, Date: "2024-01-01"},
		ClosingBalance:   models.BalanceMarker{Amount: models.FlexAmount{Raw: "£1,500.00"}, Date: "2024-01-31"},
		TransactionCount: 12,
		Confidence:       0.9,
		Reconciliation:   models.ReconciliationResult{Matches: true},
	}
	return &models.StatementAnalysis{
		DocumentAnalysis: models.DocumentAnalysis{
			IsBankStatement: true,
			DocumentType:    "bank_statement",
			Confidence:      0.97,
		},
		BusinessDetails: models.BusinessDetails{
			BusinessName:    "Acme Ltd",
			BankName:        "Acme Bank",
			StatementPeriod: "January 2024",
		},
		FinancialAnalysis: &financial,
		FraudDetection: &models.FraudDetection{
			OverallRisk: models.RiskVerdict{
				RiskScore:   0.0,
				RiskLevel:   models.RiskMinimal,
				Confidence:  0.23,
				RiskFactors: []string{},
				ComponentDetails: map[string]models.ComponentRisk{
					models.ComponentReconciliation: {RiskScore: 0, Confidence: 0.9, Evidence: []string{"Balance reconciliation successful"}},
				},
			},
		},
	}
}

func TestMarshalJSONStripsCurrencySymbols(t *testing.T) {
	generator := NewGenerator(nil)

	data, err := generator.Marshal(sampleAnalysis(), "json")
	require.NoError(t, err)

	assert.NotContains(t, string(data), "£")
	assert.Contains(t, string(data), "1,000.00")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "document_analysis")
	assert.Contains(t, decoded, "fraud_detection")
}

func TestMarshalYAML(t *testing.T) {
	generator := NewGenerator(nil)

	data, err := generator.Marshal(sampleAnalysis(), "yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "risk_score")
	assert.NotContains(t, string(data), "£")
}

func TestMarshalUnsupportedFormat(t *testing.T) {
	generator := NewGenerator(nil)

	_, err := generator.Marshal(sampleAnalysis(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, "statements/jan.analysis.json", DefaultOutputPath("statements/jan.pdf", "json"))
	assert.Equal(t, "jan.analysis.yaml", DefaultOutputPath("jan.pdf", "yaml"))
}

func TestWriteSummaryCleanStatement(t *testing.T) {
	var buf bytes.Buffer
	NewGenerator(nil).WriteSummary(&buf, sampleAnalysis())
	output := buf.String()

	assert.Contains(t, output, "BANK STATEMENT VERIFICATION - EXECUTIVE RISK PROFILE")
	assert.Contains(t, output, "Entity: Acme Ltd")
	assert.Contains(t, output, "Opening Balance: 1,000.00 (2024-01-01)")
	assert.Contains(t, output, "Transaction Volume: 12 transactions")
	assert.Contains(t, output, "Risk Level: Minimal (Score: 0%, Confidence: 23%)")
	assert.Contains(t, output, "No significant risk factors detected")
	assert.Contains(t, output, "VERIFIED - Document appears to be authentic")
	assert.Contains(t, output, "END OF RISK PROFILE")
}

func TestWriteSummaryHighRisk(t *testing.T) {
	analysis := sampleAnalysis()
	analysis.FraudDetection.OverallRisk = models.RiskVerdict{
		RiskScore:   0.85,
		RiskLevel:   models.RiskHigh,
		Confidence:  0.7,
		RiskFactors: []string{"HIGH CONFIDENCE visual tampering detected (0.85)"},
		ComponentDetails: map[string]models.ComponentRisk{
			models.ComponentVisualTampering: {
				RiskScore:  0.85,
				Confidence: 0.85,
				Evidence:   []string{"font mismatch", "pixel artifacts", "misaligned rows", "odd kerning"},
			},
		},
	}

	var buf bytes.Buffer
	NewGenerator(nil).WriteSummary(&buf, analysis)
	output := buf.String()

	assert.Contains(t, output, "RISK COMPONENT DETAILS:")
	assert.Contains(t, output, "Visual Tampering Risk:")
	assert.Contains(t, output, "Score: 0.85 (Confidence: 0.85)")
	assert.Contains(t, output, "Plus 1 more evidence items...")
	assert.Contains(t, output, "Key Risk Indicators:")
	assert.Contains(t, output, "HIGH RISK - Document shows significant risk indicators")
}

func TestWriteSummaryNotABankStatement(t *testing.T) {
	analysis := &models.StatementAnalysis{
		DocumentAnalysis: models.DocumentAnalysis{
			IsBankStatement: false,
			DocumentType:    "invoice",
			Confidence:      0.9,
		},
	}

	var buf bytes.Buffer
	NewGenerator(nil).WriteSummary(&buf, analysis)
	output := buf.String()

	assert.Contains(t, output, "Document Type: invoice")
	assert.Contains(t, output, "does not appear to be a bank statement")
	assert.NotContains(t, output, "RISK ASSESSMENT")
}
