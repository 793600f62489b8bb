// Package structure inspects the PDF container itself: page counts,
// metadata dates, embedded scripts and object statistics. The gathered
// facts go to a forensic reasoner for an anomaly verdict.
//
// Introspection failures never abort a document analysis. An unreadable
// or malformed container is itself weak evidence, so failures degrade to
// a fixed-confidence anomaly finding.
package structure

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

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

// Fallback confidence when the container cannot be inspected or the
// reasoner is unavailable.
const degradedConfidence = 0.3

// Reasoner turns container facts into an anomaly verdict. The Gemini
// perception client implements this; tests substitute a mock.
type Reasoner interface {
	AnalyzeStructure(ctx context.Context, facts models.StructureFacts) (*models.StructureAnalysis, error)
}

// Introspector gathers container-level facts from a PDF on disk.
type Introspector interface {
	Inspect(ctx context.Context, path string) (models.StructureFacts, error)
}

// PDFIntrospector reads facts with the pdfinfo command-line tool plus a
// raw scan of the file bytes for markers pdfinfo does not report.
type PDFIntrospector struct{}

// NewPDFIntrospector creates the production introspector.
func NewPDFIntrospector() *PDFIntrospector {
	return &PDFIntrospector{}
}

var objectPattern = regexp.MustCompile(`\b\d+ \d+ obj\b`)

// Inspect gathers container facts for the PDF at path.
func (p *PDFIntrospector) Inspect(ctx context.Context, path string) (models.StructureFacts, error) {
	var facts models.StructureFacts

	output, err := exec.CommandContext(ctx, "pdfinfo", path).Output()
	if err != nil {
		return facts, &parsererror.IntrospectionError{Path: path, Err: fmt.Errorf("pdfinfo: %w", err)}
	}
	parseInfoOutput(output, &facts)

	raw, err := os.ReadFile(path)
	if err != nil {
		return facts, &parsererror.IntrospectionError{Path: path, Err: err}
	}
	if !bytes.HasPrefix(raw, []byte("%PDF-")) {
		return facts, &parsererror.IntrospectionError{Path: path, Err: fmt.Errorf("not a PDF file")}
	}
	scanRawMarkers(raw, &facts)

	facts.ModifiedAfterCreation = facts.CreationDate != "" &&
		facts.ModDate != "" && facts.CreationDate != facts.ModDate

	return facts, nil
}

// parseInfoOutput fills facts from pdfinfo's "Key: value" lines.
func parseInfoOutput(output []byte, facts *models.StructureFacts) {
	facts.Info = make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Pages":
			if n, err := strconv.Atoi(value); err == nil {
				facts.PageCount = n
			}
		case "PDF version":
			facts.Version = value
		case "Encrypted":
			facts.Encrypted = strings.HasPrefix(value, "yes")
		case "CreationDate":
			facts.CreationDate = value
		case "ModDate":
			facts.ModDate = value
		case "Title", "Author", "Creator", "Producer", "Subject":
			if value != "" {
				facts.Info[key] = value
			}
		}
	}
}

// scanRawMarkers counts container markers in the raw file bytes. PDF name
// tokens survive in cleartext for the unencrypted statements this tool
// handles, so a byte scan is enough for counting-level forensics.
func scanRawMarkers(raw []byte, facts *models.StructureFacts) {
	facts.ObjectCount = len(objectPattern.FindAll(raw, -1))
	facts.FontCount = bytes.Count(raw, []byte("/Font"))
	facts.XObjectCount = bytes.Count(raw, []byte("/XObject"))
	facts.AnnotationCount = bytes.Count(raw, []byte("/Annots"))
	facts.HasJavaScript = bytes.Contains(raw, []byte("/JavaScript")) || bytes.Contains(raw, []byte("/JS"))
	facts.HasEmbeddedFiles = bytes.Contains(raw, []byte("/EmbeddedFiles"))
	facts.AcroFormPresent = bytes.Contains(raw, []byte("/AcroForm"))
}

// MockIntrospector implements Introspector for tests.
type MockIntrospector struct {
	Facts models.StructureFacts
	Err   error
}

func (m *MockIntrospector) Inspect(ctx context.Context, path string) (models.StructureFacts, error) {
	return m.Facts, m.Err
}

// Analyzer combines introspection with the forensic reasoner.
type Analyzer struct {
	introspector Introspector
	reasoner     Reasoner
}

// NewAnalyzer wires an introspector to a reasoner.
func NewAnalyzer(introspector Introspector, reasoner Reasoner) *Analyzer {
	return &Analyzer{introspector: introspector, reasoner: reasoner}
}

// Analyze inspects the PDF at path and asks the reasoner for a verdict.
// It always returns a usable StructureAnalysis: introspection or reasoner
// failures degrade to a synthetic anomaly finding instead of an error.
func (a *Analyzer) Analyze(ctx context.Context, path string) (models.StructureAnalysis, models.DocumentMetadata) {
	facts, err := a.introspector.Inspect(ctx, path)
	if err != nil {
		log.WithError(err).WithField("file", path).Warn("PDF structure introspection failed")
		return degraded(fmt.Sprintf("Could not analyze PDF structure: %v", err)), models.DocumentMetadata{}
	}

	metadata := metadataFromFacts(facts)

	analysis, err := a.reasoner.AnalyzeStructure(ctx, facts)
	if err != nil || analysis == nil {
		log.WithError(err).WithField("file", path).Warn("Structure reasoning failed, using fact-based fallback")
		return factFallback(facts), metadata
	}
	return *analysis, metadata
}

// degraded is the verdict when the container itself could not be read.
func degraded(finding string) models.StructureAnalysis {
	return models.StructureAnalysis{
		IssuesDetected: true,
		Confidence:     degradedConfidence,
		Findings:       models.StringList{finding},
		Reasoning:      "Structural introspection failed; treating the document as weakly suspicious",
	}
}

// factFallback derives a verdict directly from the facts when the
// reasoner is unavailable. Only the unambiguous markers count.
func factFallback(facts models.StructureFacts) models.StructureAnalysis {
	var findings models.StringList
	if facts.HasJavaScript {
		findings = append(findings, "Document contains JavaScript, unusual for a bank statement")
	}
	if facts.HasEmbeddedFiles {
		findings = append(findings, "Document contains embedded files")
	}
	if facts.ModifiedAfterCreation {
		findings = append(findings, fmt.Sprintf("Document modified after creation (created %s, modified %s)",
			facts.CreationDate, facts.ModDate))
	}

	return models.StructureAnalysis{
		IssuesDetected: len(findings) > 0,
		Confidence:     degradedConfidence,
		Findings:       findings,
		Reasoning:      "Forensic reasoning unavailable; verdict derived from container facts only",
	}
}

func metadataFromFacts(facts models.StructureFacts) models.DocumentMetadata {
	metadata := models.DocumentMetadata{
		Pages:        facts.PageCount,
		CreationDate: facts.CreationDate,
		ModDate:      facts.ModDate,
		Title:        facts.Info["Title"],
		Author:       facts.Info["Author"],
		Creator:      facts.Info["Creator"],
		Producer:     facts.Info["Producer"],
	}
	metadata.Found = metadata.Title != "" || metadata.Author != "" ||
		metadata.Creator != "" || metadata.Producer != "" ||
		metadata.CreationDate != "" || metadata.ModDate != ""
	return metadata
}
