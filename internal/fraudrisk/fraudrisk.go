// Package fraudrisk fuses the four independent fraud signals — visual
// tampering, document structure, balance reconciliation and suspicious
// transaction patterns — into a single bounded risk verdict.
//
// The scoring policy is the confidence-weighted one: a component that
// fired contributes its own confidence as its risk score, the four
// contributions are summed and saturated at 1.0, and the risk level is
// bucketed at 0.5 (High), 0.2 (Medium) and 0.05 (Low) inclusive lower
// bounds. Scoring is fully deterministic; identical inputs produce an
// identical verdict.
package fraudrisk

import (
	"fmt"
	"math"

	"fjacquet/statement-verify/internal/models"
)

// reconciliationErrorRisk is the fixed moderate contribution assigned
// when reconciliation could not be attempted at all. An unverifiable
// statement is riskier than a verified one but not as damning as a
// proven mismatch.
const reconciliationErrorRisk = 0.3

// Risk level thresholds, inclusive lower bounds.
const (
	highThreshold   = 0.5
	mediumThreshold = 0.2
	lowThreshold    = 0.05
)

// Assess combines the perceptual signals with the financial analysis into
// a fraud-risk verdict. It is a pure function over its inputs: no state
// is kept between calls and missing signals (zero values) are treated as
// "nothing detected, confidence 0".
func Assess(visual models.VisualTamperingResult, structure models.StructureAnalysis, financial models.FinancialAnalysis) models.RiskVerdict {
	components := map[string]models.ComponentRisk{
		models.ComponentVisualTampering:    assessVisual(visual),
		models.ComponentStructure:          assessStructure(structure),
		models.ComponentReconciliation:     assessReconciliation(financial),
		models.ComponentSuspiciousPatterns: assessPatterns(financial),
	}

	totalRisk := 0.0
	totalConfidence := 0.0
	for _, name := range models.ComponentOrder {
		totalRisk += components[name].RiskScore
		totalConfidence += components[name].Confidence
	}

	riskScore := math.Min(1.0, totalRisk)
	confidence := totalConfidence / float64(len(models.ComponentOrder))

	verdict := models.RiskVerdict{
		RiskScore:        round2(riskScore),
		RiskLevel:        levelFor(riskScore),
		Confidence:       round2(confidence),
		RiskFactors:      riskFactors(components, financial),
		ComponentDetails: make(map[string]models.ComponentRisk, len(components)),
	}

	for name, component := range components {
		component.RiskScore = round2(component.RiskScore)
		component.Confidence = round2(component.Confidence)
		verdict.ComponentDetails[name] = component
	}

	return verdict
}

func assessVisual(visual models.VisualTamperingResult) models.ComponentRisk {
	component := models.ComponentRisk{
		Confidence: visual.Confidence,
		Evidence:   []string{},
	}
	if !visual.TamperingDetected {
		return component
	}

	component.RiskScore = visual.Confidence
	component.Evidence = append(component.Evidence, visual.Evidence...)
	for _, area := range visual.SuspiciousAreas {
		component.Evidence = append(component.Evidence, "Suspicious area detected: "+area)
	}
	return component
}

func assessStructure(structure models.StructureAnalysis) models.ComponentRisk {
	component := models.ComponentRisk{
		Confidence: structure.Confidence,
		Evidence:   append([]string{}, structure.Findings...),
	}
	if !structure.IssuesDetected {
		return component
	}

	component.RiskScore = structure.Confidence
	if structure.Reasoning != "" {
		component.Evidence = append(component.Evidence, "Reasoning: "+structure.Reasoning)
	}
	return component
}

func assessReconciliation(financial models.FinancialAnalysis) models.ComponentRisk {
	component := models.ComponentRisk{
		Confidence: financial.Confidence,
		Evidence:   []string{},
	}

	rec := financial.Reconciliation
	switch {
	case !rec.Attempted():
		component.RiskScore = reconciliationErrorRisk
		component.Evidence = []string{
			"Could not perform balance reconciliation: " + rec.Err,
		}
	case !rec.Matches:
		component.RiskScore = financial.Confidence
		component.Evidence = []string{
			fmt.Sprintf("Balance discrepancy of %s detected", rec.Discrepancy.StringFixed(2)),
			fmt.Sprintf("Expected: %s", rec.ExpectedClosing.StringFixed(2)),
			fmt.Sprintf("Reported: %s", rec.ReportedClosing.StringFixed(2)),
		}
	default:
		component.Evidence = []string{"Balance reconciliation successful"}
	}
	return component
}

func assessPatterns(financial models.FinancialAnalysis) models.ComponentRisk {
	component := models.ComponentRisk{
		Confidence: financial.Confidence,
		Evidence:   append([]string{}, financial.Patterns.Patterns...),
	}
	if financial.Patterns.Found {
		component.RiskScore = financial.Confidence
	}
	return component
}

// riskFactors emits one tiered summary line per component that
// contributed risk, in the fixed component order.
func riskFactors(components map[string]models.ComponentRisk, financial models.FinancialAnalysis) []string {
	factors := make([]string, 0)

	for _, name := range models.ComponentOrder {
		component := components[name]
		if component.RiskScore <= 0 {
			continue
		}

		switch name {
		case models.ComponentVisualTampering:
			switch {
			case component.Confidence > 0.7:
				factors = append(factors, fmt.Sprintf("HIGH CONFIDENCE visual tampering detected (%.2f)", component.Confidence))
			case component.Confidence > 0.4:
				factors = append(factors, fmt.Sprintf("Medium confidence visual tampering detected (%.2f)", component.Confidence))
			default:
				factors = append(factors, fmt.Sprintf("Possible visual tampering detected (%.2f)", component.Confidence))
			}

		case models.ComponentStructure:
			factors = append(factors, fmt.Sprintf("PDF structure anomalies detected (%d issues)", len(component.Evidence)))

		case models.ComponentReconciliation:
			if financial.Reconciliation.Attempted() {
				factors = append(factors, fmt.Sprintf("Balance discrepancy detected: %s", financial.Reconciliation.Discrepancy.StringFixed(2)))
			}

		case models.ComponentSuspiciousPatterns:
			for _, pattern := range component.Evidence {
				factors = append(factors, "Suspicious pattern: "+pattern)
			}
		}
	}

	return factors
}

func levelFor(score float64) models.RiskLevel {
	switch {
	case score >= highThreshold:
		return models.RiskHigh
	case score >= mediumThreshold:
		return models.RiskMedium
	case score >= lowThreshold:
		return models.RiskLow
	default:
		return models.RiskMinimal
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
