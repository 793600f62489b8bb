// Package render rasterizes PDF statement pages to PNG images for the
// perception service. The production renderer shells out to pdftoppm
// from the poppler-utils suite.
package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"fjacquet/statement-verify/internal/models"
	"fjacquet/statement-verify/internal/parsererror"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// PageRenderer turns a PDF on disk into PNG page images, in page order.
type PageRenderer interface {
	RenderPages(ctx context.Context, path string) ([]models.PageImage, error)
}

// PopplerRenderer renders pages with the pdftoppm command-line tool.
type PopplerRenderer struct {
	// DPI is the rasterization resolution passed to pdftoppm.
	DPI int
}

// NewPopplerRenderer creates a renderer at the given resolution.
func NewPopplerRenderer(dpi int) *PopplerRenderer {
	return &PopplerRenderer{DPI: dpi}
}

// RenderPages rasterizes every page of the PDF at path into PNG images.
// Pages come back sorted by page number.
func (r *PopplerRenderer) RenderPages(ctx context.Context, path string) ([]models.PageImage, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &parsererror.RenderError{Path: path, Err: err}
	}

	tempDir, err := os.MkdirTemp("", "stmtv-render-*")
	if err != nil {
		return nil, &parsererror.RenderError{Path: path, Err: err}
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			log.WithError(err).WithField("dir", tempDir).Warn("Failed to remove render temp dir")
		}
	}()

	prefix := filepath.Join(tempDir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm", "-png", "-r", fmt.Sprint(r.DPI), path, prefix)
	if output, err := cmd.CombinedOutput(); err != nil {
		log.WithError(err).WithField("output", string(output)).Error("pdftoppm failed")
		return nil, &parsererror.RenderError{Path: path, Err: fmt.Errorf("pdftoppm: %w", err)}
	}

	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, &parsererror.RenderError{Path: path, Err: err}
	}
	if len(matches) == 0 {
		return nil, &parsererror.RenderError{Path: path, Err: fmt.Errorf("pdftoppm produced no pages")}
	}
	// pdftoppm zero-pads page numbers, so lexical order is page order.
	sort.Strings(matches)

	pages := make([]models.PageImage, 0, len(matches))
	for i, match := range matches {
		png, err := os.ReadFile(match)
		if err != nil {
			return nil, &parsererror.RenderError{Path: path, Err: err}
		}
		pages = append(pages, models.PageImage{Index: i + 1, PNG: png})
	}

	log.WithFields(logrus.Fields{
		"file":  path,
		"pages": len(pages),
		"dpi":   r.DPI,
	}).Debug("Rendered statement pages")
	return pages, nil
}

// MockRenderer implements PageRenderer for tests.
type MockRenderer struct {
	Pages []models.PageImage
	Err   error
}

func (m *MockRenderer) RenderPages(ctx context.Context, path string) ([]models.PageImage, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Pages, nil
}
