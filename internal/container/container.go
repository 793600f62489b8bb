// Package container provides dependency injection for the statement-verify
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"fjacquet/statement-verify/internal/analyzer"
	"fjacquet/statement-verify/internal/config"
	"fjacquet/statement-verify/internal/financial"
	"fjacquet/statement-verify/internal/perception"
	"fjacquet/statement-verify/internal/render"
	"fjacquet/statement-verify/internal/report"
	"fjacquet/statement-verify/internal/structure"
)

// Container holds all application dependencies and provides methods to
// access them. It is immutable after creation: all fields are private and
// can only be reached through getter methods.
type Container struct {
	logger    *logrus.Logger
	config    *config.Config
	gemini    *perception.GeminiClient
	renderer  render.PageRenderer
	analyzer  *analyzer.Analyzer
	generator *report.Generator
}

// NewContainer creates and wires all application dependencies. The Gemini
// client is created eagerly so a missing API key fails at startup rather
// than mid-analysis.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := config.ConfigureLoggingFromConfig(cfg)
	render.SetLogger(logger)
	structure.SetLogger(logger)
	financial.SetLogger(logger)

	gemini, err := perception.NewGeminiClient(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create perception client: %w", err)
	}

	renderer := render.NewPopplerRenderer(cfg.Render.DPI)
	structureAnalyzer := structure.NewAnalyzer(structure.NewPDFIntrospector(), gemini)
	statementAnalyzer := analyzer.New(renderer, gemini, structureAnalyzer, cfg, logger)
	generator := report.NewGenerator(logger)

	logger.WithFields(logrus.Fields{
		"model":     cfg.AI.Model,
		"dpi":       cfg.Render.DPI,
		"max_pages": cfg.Analysis.MaxPages,
	}).Debug("Container initialized")

	return &Container{
		logger:    logger,
		config:    cfg,
		gemini:    gemini,
		renderer:  renderer,
		analyzer:  statementAnalyzer,
		generator: generator,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() *logrus.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetAnalyzer returns the statement analysis pipeline.
func (c *Container) GetAnalyzer() *analyzer.Analyzer {
	return c.analyzer
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.generator
}

// Close releases container resources, notably the perception client's
// API connection.
func (c *Container) Close() error {
	if c.gemini != nil {
		return c.gemini.Close()
	}
	return nil
}
