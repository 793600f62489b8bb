// Package analyzer orchestrates the full statement analysis for one PDF:
// render pages, classify the document, extract the business and financial
// data, gather the tampering signals and fuse them into a risk verdict.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"fjacquet/statement-verify/internal/config"
	"fjacquet/statement-verify/internal/financial"
	"fjacquet/statement-verify/internal/fraudrisk"
	"fjacquet/statement-verify/internal/models"
	"fjacquet/statement-verify/internal/perception"
	"fjacquet/statement-verify/internal/render"
	"fjacquet/statement-verify/internal/structure"
)

// Analyzer runs the statement analysis pipeline.
type Analyzer struct {
	renderer   render.PageRenderer
	perception perception.Client
	structure  *structure.Analyzer
	cfg        *config.Config
	log        *logrus.Logger
}

// New wires the pipeline stages together.
func New(renderer render.PageRenderer, client perception.Client, structureAnalyzer *structure.Analyzer, cfg *config.Config, logger *logrus.Logger) *Analyzer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Analyzer{
		renderer:   renderer,
		perception: client,
		structure:  structureAnalyzer,
		cfg:        cfg,
		log:        logger,
	}
}

// AnalyzeStatement runs the pipeline for the PDF at path.
//
// Rendering and classification failures abort the analysis: without pages
// or a document type nothing downstream is meaningful. Every later signal
// degrades instead — a failed extraction or tampering check becomes an
// absent signal and the analysis carries on with what it has.
//
// Documents classified as something other than a bank statement get a
// classification-only result: FinancialAnalysis and FraudDetection stay
// nil and no further perception calls are made.
func (a *Analyzer) AnalyzeStatement(ctx context.Context, path string) (*models.StatementAnalysis, error) {
	started := time.Now()
	a.log.WithField("file", path).Info("Analyzing statement")

	pages, err := a.renderer.RenderPages(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to render document pages: %w", err)
	}
	if len(pages) > a.cfg.Analysis.MaxPages {
		a.log.WithFields(logrus.Fields{
			"pages": len(pages),
			"limit": a.cfg.Analysis.MaxPages,
		}).Warn("Document exceeds page limit, analyzing leading pages only")
		pages = pages[:a.cfg.Analysis.MaxPages]
	}

	classifyPages := pages
	if len(classifyPages) > a.cfg.Analysis.ClassifyPages {
		classifyPages = classifyPages[:a.cfg.Analysis.ClassifyPages]
	}
	classification, err := a.perception.ClassifyDocument(ctx, classifyPages)
	if err != nil {
		return nil, fmt.Errorf("failed to classify document: %w", err)
	}
	a.logStage("classification", started)

	structureAnalysis, metadata := a.structure.Analyze(ctx, path)
	a.logStage("structure analysis", started)

	analysis := &models.StatementAnalysis{
		DocumentAnalysis: models.DocumentAnalysis{
			IsBankStatement: classification.IsBankStatement,
			DocumentType:    classification.DocumentType,
			Confidence:      classification.Confidence,
			Evidence:        classification.Evidence,
			Metadata:        metadata,
		},
	}

	if !classification.IsBankStatement {
		a.log.WithFields(logrus.Fields{
			"file": path,
			"type": classification.DocumentType,
		}).Info("Document is not a bank statement, skipping fraud analysis")
		return analysis, nil
	}

	business, err := a.perception.ExtractBusinessDetails(ctx, pages)
	if err != nil {
		a.log.WithError(err).Warn("Business details extraction failed")
		business = &models.BusinessDetails{}
	}
	analysis.BusinessDetails = *business
	a.logStage("business details", started)

	financialData, err := a.perception.ExtractFinancialData(ctx, pages)
	if err != nil {
		a.log.WithError(err).Warn("Financial data extraction failed")
		financialData = nil
	}
	financialAnalysis := financial.BuildAnalysis(financialData)
	analysis.FinancialAnalysis = &financialAnalysis
	a.logStage("financial analysis", started)

	tampering, err := a.perception.DetectVisualTampering(ctx, pages)
	if err != nil {
		a.log.WithError(err).Warn("Visual tampering detection failed")
		tampering = &models.VisualTamperingResult{}
	}
	a.logStage("tampering detection", started)

	verdict := fraudrisk.Assess(*tampering, structureAnalysis, financialAnalysis)
	analysis.FraudDetection = &models.FraudDetection{
		VisualTampering:   *tampering,
		StructureAnalysis: structureAnalysis,
		OverallRisk:       verdict,
	}

	a.log.WithFields(logrus.Fields{
		"file":       path,
		"risk_score": verdict.RiskScore,
		"risk_level": verdict.RiskLevel,
		"duration":   time.Since(started).Round(time.Millisecond),
	}).Info("Statement analysis complete")
	return analysis, nil
}

func (a *Analyzer) logStage(stage string, started time.Time) {
	a.log.WithFields(logrus.Fields{
		"stage":   stage,
		"elapsed": time.Since(started).Round(time.Millisecond),
	}).Debug("Pipeline stage complete")
}
