// Package batch handles batch analysis of statement directories.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"fjacquet/statement-verify/cmd/root"
	"fjacquet/statement-verify/internal/fileutils"
	"fjacquet/statement-verify/internal/models"
	"fjacquet/statement-verify/internal/report"
)

// Cmd represents the batch command.
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every PDF in a directory",
	Long: `Analyze every bank statement PDF in an input directory. Each document
gets its own detailed report in the output directory, plus one verdicts.csv
index summarizing the risk verdict per file.

Documents that fail to analyze are recorded in the index with an empty
verdict and do not stop the batch.

Example:
  statement-verify batch -i statements/ -o reports/`,
	RunE: batchFunc,
}

// verdictRow is one line of the verdicts.csv batch index.
type verdictRow struct {
	File            string  `csv:"file"`
	IsBankStatement bool    `csv:"is_bank_statement"`
	RiskScore       float64 `csv:"risk_score"`
	RiskLevel       string  `csv:"risk_level"`
	Confidence      float64 `csv:"confidence"`
	Error           string  `csv:"error"`
}

func batchFunc(cmd *cobra.Command, args []string) error {
	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		return fmt.Errorf("input and output directories must be specified with -i and -o")
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return err
	}

	files, err := fileutils.ListPDFs(inputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		root.Log.Warn("No PDF files found in input directory")
		return nil
	}
	root.Log.WithField("count", len(files)).Info("Found statements for analysis")

	appContainer, err := root.RequireContainer(cmd.Context())
	if err != nil {
		return err
	}
	cfg := appContainer.GetConfig()
	generator := appContainer.GetReportGenerator()

	rows := make([]verdictRow, 0, len(files))
	analyzed := 0
	for _, file := range files {
		row := verdictRow{File: filepath.Base(file)}

		analysis, err := appContainer.GetAnalyzer().AnalyzeStatement(cmd.Context(), file)
		if err != nil {
			root.Log.WithError(err).WithField("file", file).Error("Analysis failed, continuing with next file")
			row.Error = err.Error()
			rows = append(rows, row)
			continue
		}

		row.IsBankStatement = analysis.DocumentAnalysis.IsBankStatement
		if fraud := analysis.FraudDetection; fraud != nil {
			row.RiskScore = fraud.OverallRisk.RiskScore
			row.RiskLevel = string(fraud.OverallRisk.RiskLevel)
			row.Confidence = fraud.OverallRisk.Confidence
		}

		if err := writeReport(generator, analysis, file, outputDir, cfg.Report.Format); err != nil {
			root.Log.WithError(err).WithField("file", file).Error("Failed to write report")
			row.Error = err.Error()
		} else {
			analyzed++
		}
		rows = append(rows, row)
	}

	if err := writeVerdictIndex(rows, filepath.Join(outputDir, "verdicts.csv")); err != nil {
		return err
	}

	root.Log.WithFields(map[string]interface{}{
		"analyzed": analyzed,
		"total":    len(files),
	}).Info("Batch analysis completed")
	return nil
}

func writeReport(generator *report.Generator, analysis *models.StatementAnalysis, pdfPath, outputDir, format string) error {
	data, err := generator.Marshal(analysis, format)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	outputPath := filepath.Join(outputDir, base+".analysis."+format)
	return fileutils.WriteFile(outputPath, data)
}

func writeVerdictIndex(rows []verdictRow, path string) error {
	file, err := os.Create(path) // #nosec G304 -- CLI tool writes to user-provided output paths
	if err != nil {
		return fmt.Errorf("failed to create verdict index: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			root.Log.WithError(cerr).Warn("Failed to close verdict index")
		}
	}()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write verdict index: %w", err)
	}
	return nil
}
