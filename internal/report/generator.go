// Package report renders a finished statement analysis for humans and
// machines: a console executive summary plus a serialized report file.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"fjacquet/statement-verify/internal/amountutils"
	"fjacquet/statement-verify/internal/models"
)

// Generator serializes statement analyses and prints executive summaries.
type Generator struct {
	logger *logrus.Logger
}

// NewGenerator creates a report generator.
func NewGenerator(logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Generator{logger: logger}
}

// Marshal serializes the analysis in the requested format (json or yaml).
// Currency symbols are stripped from the output so amounts serialize
// currency-neutral regardless of how the extraction formatted them.
func (g *Generator) Marshal(analysis *models.StatementAnalysis, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(analysis, "", "  ")
	case "yaml":
		data, err = marshalYAML(analysis)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal analysis report")
		return nil, fmt.Errorf("failed to marshal %s report: %w", format, err)
	}

	return []byte(amountutils.StripCurrencySymbols(string(data))), nil
}

// marshalYAML serializes via a JSON round-trip so the YAML output carries
// the same snake_case keys and rendered amounts as the JSON report.
func marshalYAML(analysis *models.StatementAnalysis) ([]byte, error) {
	jsonData, err := json.Marshal(analysis)
	if err != nil {
		return nil, err
	}
	var tree map[string]any
	if err := json.Unmarshal(jsonData, &tree); err != nil {
		return nil, err
	}
	return yaml.Marshal(tree)
}

// DefaultOutputPath derives the report filename from the analyzed PDF.
func DefaultOutputPath(pdfPath, format string) string {
	base := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath))
	return base + ".analysis." + format
}

// WriteSummary prints the executive risk profile for one analysis.
func (g *Generator) WriteSummary(w io.Writer, analysis *models.StatementAnalysis) {
	sectionHeader(w, "BANK STATEMENT VERIFICATION - EXECUTIVE RISK PROFILE")

	doc := analysis.DocumentAnalysis
	fmt.Fprintf(w, "\nDocument Type: %s (Confidence: %.2f)\n", orUnknown(doc.DocumentType), doc.Confidence)

	if !doc.IsBankStatement {
		fmt.Fprintln(w, "\nThis document does not appear to be a bank statement.")
		fmt.Fprintln(w, "Analysis aborted.")
		sectionHeader(w, "END OF RISK PROFILE")
		return
	}

	business := analysis.BusinessDetails
	fmt.Fprintln(w, "\nBUSINESS SUMMARY:")
	fmt.Fprintf(w, "Entity: %s\n", orNotFound(business.BusinessName))
	fmt.Fprintf(w, "Bank: %s\n", orNotFound(business.BankName))
	fmt.Fprintf(w, "Statement Period: %s\n", orNotFound(business.StatementPeriod))

	if financial := analysis.FinancialAnalysis; financial != nil {
		fmt.Fprintln(w, "\nFINANCIAL SUMMARY:")
		fmt.Fprintf(w, "Opening Balance: %s (%s)\n", balanceOrNotFound(financial.OpeningBalance.Amount), dateOrNone(financial.OpeningBalance.Date))
		fmt.Fprintf(w, "Closing Balance: %s (%s)\n", balanceOrNotFound(financial.ClosingBalance.Amount), dateOrNone(financial.ClosingBalance.Date))
		fmt.Fprintf(w, "Transaction Volume: %d transactions\n", financial.TransactionCount)
	}

	if fraud := analysis.FraudDetection; fraud != nil {
		writeRiskAssessment(w, fraud.OverallRisk)
	}

	sectionHeader(w, "END OF RISK PROFILE")
}

func writeRiskAssessment(w io.Writer, verdict models.RiskVerdict) {
	fmt.Fprintln(w, "\nRISK ASSESSMENT:")
	fmt.Fprintf(w, "Risk Level: %s (Score: %.0f%%, Confidence: %.0f%%)\n",
		verdict.RiskLevel, verdict.RiskScore*100, verdict.Confidence*100)

	writeComponentDetails(w, verdict)

	if len(verdict.RiskFactors) > 0 {
		fmt.Fprintln(w, "\nKey Risk Indicators:")
		for _, factor := range verdict.RiskFactors {
			fmt.Fprintf(w, "  - %s\n", factor)
		}
	} else {
		fmt.Fprintln(w, "\nNo significant risk factors detected")
	}

	fmt.Fprintln(w, "\nVERIFICATION SUMMARY:")
	switch verdict.RiskLevel {
	case models.RiskMinimal, models.RiskLow:
		fmt.Fprintln(w, "VERIFIED - Document appears to be authentic with low risk indicators")
	case models.RiskMedium:
		fmt.Fprintln(w, "CAUTION - Document has medium risk indicators that warrant additional verification")
	default:
		fmt.Fprintln(w, "HIGH RISK - Document shows significant risk indicators; additional verification strongly recommended")
	}
}

// writeComponentDetails lists each component that contributed risk, with
// its score and up to three evidence lines.
func writeComponentDetails(w io.Writer, verdict models.RiskVerdict) {
	const evidenceSample = 3

	printed := false
	for _, name := range models.ComponentOrder {
		component, ok := verdict.ComponentDetails[name]
		if !ok || component.RiskScore <= 0 {
			continue
		}
		if !printed {
			fmt.Fprintln(w, "\nRISK COMPONENT DETAILS:")
			printed = true
		}

		fmt.Fprintf(w, "\n  %s Risk:\n", titleCase(name))
		fmt.Fprintf(w, "    Score: %.2f (Confidence: %.2f)\n", component.RiskScore, component.Confidence)

		if len(component.Evidence) == 0 {
			continue
		}
		fmt.Fprintln(w, "    Key Evidence:")
		for i, item := range component.Evidence {
			if i == evidenceSample {
				fmt.Fprintf(w, "      - Plus %d more evidence items...\n", len(component.Evidence)-evidenceSample)
				break
			}
			fmt.Fprintf(w, "      - %s\n", item)
		}
	}
}

func sectionHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", strings.Repeat("=", 50), title, strings.Repeat("=", 50))
}

// titleCase turns a component name like "visual_tampering" into
// "Visual Tampering".
func titleCase(name string) string {
	words := strings.Split(name, "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func orNotFound(s string) string {
	if s == "" {
		return "Not found"
	}
	return s
}

func balanceOrNotFound(a models.FlexAmount) string {
	if a.IsEmpty() {
		return "Not found"
	}
	return amountutils.StripCurrencySymbols(a.Raw)
}

func dateOrNone(s string) string {
	if s == "" {
		return "No date"
	}
	return s
}
