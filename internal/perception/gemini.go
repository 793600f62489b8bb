package perception

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"fjacquet/statement-verify/internal/config"
	"fjacquet/statement-verify/internal/models"
	"fjacquet/statement-verify/internal/parsererror"
)

// GeminiClient implements Client against the Google Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	log     *logrus.Logger
}

// NewGeminiClient creates a Gemini-backed perception client from the
// validated application configuration.
func NewGeminiClient(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*GeminiClient, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if cfg.AI.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.AI.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		model:   client.GenerativeModel(cfg.AI.Model),
		timeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		log:     logger,
	}, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// ClassifyDocument decides whether the pages show a business bank statement.
func (c *GeminiClient) ClassifyDocument(ctx context.Context, pages []models.PageImage) (*models.DocumentClassification, error) {
	return call[models.DocumentClassification](c, ctx, "document classification", classifyPrompt, pages)
}

// ExtractBusinessDetails pulls business metadata from the statement header.
func (c *GeminiClient) ExtractBusinessDetails(ctx context.Context, pages []models.PageImage) (*models.BusinessDetails, error) {
	return call[models.BusinessDetails](c, ctx, "business details", businessDetailsPrompt, pages)
}

// ExtractFinancialData pulls balances and the ordered transaction list.
func (c *GeminiClient) ExtractFinancialData(ctx context.Context, pages []models.PageImage) (*models.FinancialData, error) {
	return call[models.FinancialData](c, ctx, "financial data", financialDataPrompt, pages)
}

// DetectVisualTampering looks for visual signs of falsification.
func (c *GeminiClient) DetectVisualTampering(ctx context.Context, pages []models.PageImage) (*models.VisualTamperingResult, error) {
	return call[models.VisualTamperingResult](c, ctx, "visual tampering", tamperingPrompt, pages)
}

// AnalyzeStructure asks for a forensic read of the container facts
// gathered by the structural introspector. No page images are sent; the
// facts travel as JSON appended to the prompt.
func (c *GeminiClient) AnalyzeStructure(ctx context.Context, facts models.StructureFacts) (*models.StructureAnalysis, error) {
	factsJSON, err := json.MarshalIndent(facts, "", "  ")
	if err != nil {
		return nil, &parsererror.ExtractionError{Capability: "structure analysis", Err: err}
	}

	prompt := fmt.Sprintf("%s\n\nPDF STRUCTURE DATA:\n%s", structurePrompt, factsJSON)
	analysis, err := call[models.StructureAnalysis](c, ctx, "structure analysis", prompt, nil)
	if err != nil {
		return nil, err
	}
	analysis.LLMAnalysis = true
	return analysis, nil
}

// call runs one capability request and decodes the JSON envelope into
// the capability's result record.
func call[T any](c *GeminiClient, ctx context.Context, capability, prompt string, pages []models.PageImage) (*T, error) {
	started := time.Now()
	raw, err := c.generate(ctx, prompt, pages)
	if err != nil {
		c.log.WithError(err).WithField("capability", capability).Warn("Perception call failed")
		return nil, &parsererror.ExtractionError{Capability: capability, Err: err}
	}

	result, err := decodeInto[T](raw)
	if err != nil {
		c.log.WithError(err).WithField("capability", capability).Warn("Perception response did not decode")
		return nil, &parsererror.ExtractionError{Capability: capability, Err: err}
	}

	c.log.WithFields(logrus.Fields{
		"capability": capability,
		"pages":      len(pages),
		"duration":   time.Since(started).Round(time.Millisecond),
	}).Debug("Perception call completed")
	return result, nil
}

func (c *GeminiClient) generate(ctx context.Context, prompt string, pages []models.PageImage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	parts := make([]genai.Part, 0, len(pages)+1)
	parts = append(parts, genai.Text(prompt))
	for _, page := range pages {
		parts = append(parts, genai.ImageData("png", page.PNG))
	}

	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("response contained no text parts")
	}
	return sb.String(), nil
}

// decodeInto extracts the JSON object from a model response. Models
// sometimes wrap the object in a markdown fence or surround it with
// prose, so decoding starts at the first '{' and ends at the last '}'.
func decodeInto[T any](raw string) (*T, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var result T
	if err := json.Unmarshal([]byte(raw[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("malformed JSON in response: %w", err)
	}
	return &result, nil
}
