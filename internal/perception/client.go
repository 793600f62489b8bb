// Package perception wraps the external multimodal inference service the
// analyzer uses for document classification, data extraction and visual
// tampering detection.
//
// Every capability is an opaque call: the service self-reports a
// confidence and gives no guarantee of correctness, determinism or
// availability. Callers treat a failed call as an absent signal
// (confidence 0, nothing detected), never as a fatal error for the
// document analysis.
package perception

import (
	"context"

	"fjacquet/statement-verify/internal/models"
)

// Client is the perception-service boundary. Implementations call an
// external model; tests substitute MockClient.
type Client interface {
	// ClassifyDocument decides whether the pages show a business bank
	// statement.
	ClassifyDocument(ctx context.Context, pages []models.PageImage) (*models.DocumentClassification, error)

	// ExtractBusinessDetails pulls business name, address, bank and
	// account metadata from the statement header.
	ExtractBusinessDetails(ctx context.Context, pages []models.PageImage) (*models.BusinessDetails, error)

	// ExtractFinancialData pulls balances and the ordered transaction
	// list, with one overall extraction confidence.
	ExtractFinancialData(ctx context.Context, pages []models.PageImage) (*models.FinancialData, error)

	// DetectVisualTampering looks for visual signs of falsification.
	DetectVisualTampering(ctx context.Context, pages []models.PageImage) (*models.VisualTamperingResult, error)
}

// MockClient implements Client with canned results for tests. SeenPages
// records how many pages the most recent call per capability received.
type MockClient struct {
	Classification  *models.DocumentClassification
	ClassifyErr     error
	Business        *models.BusinessDetails
	BusinessErr     error
	Financial       *models.FinancialData
	FinancialErr    error
	Tampering       *models.VisualTamperingResult
	TamperingErr    error
	StructureResult *models.StructureAnalysis
	StructureErr    error

	SeenPages map[string]int
}

func (m *MockClient) recordPages(capability string, pages []models.PageImage) {
	if m.SeenPages == nil {
		m.SeenPages = make(map[string]int)
	}
	m.SeenPages[capability] = len(pages)
}

func (m *MockClient) ClassifyDocument(ctx context.Context, pages []models.PageImage) (*models.DocumentClassification, error) {
	m.recordPages("classify", pages)
	return m.Classification, m.ClassifyErr
}

func (m *MockClient) ExtractBusinessDetails(ctx context.Context, pages []models.PageImage) (*models.BusinessDetails, error) {
	m.recordPages("business", pages)
	return m.Business, m.BusinessErr
}

func (m *MockClient) ExtractFinancialData(ctx context.Context, pages []models.PageImage) (*models.FinancialData, error) {
	m.recordPages("financial", pages)
	return m.Financial, m.FinancialErr
}

func (m *MockClient) DetectVisualTampering(ctx context.Context, pages []models.PageImage) (*models.VisualTamperingResult, error) {
	m.recordPages("tampering", pages)
	return m.Tampering, m.TamperingErr
}

// AnalyzeStructure satisfies structure.Reasoner for tests.
func (m *MockClient) AnalyzeStructure(ctx context.Context, facts models.StructureFacts) (*models.StructureAnalysis, error) {
	return m.StructureResult, m.StructureErr
}
