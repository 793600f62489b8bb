// Package analyze handles single-statement analysis.
package analyze

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fjacquet/statement-verify/cmd/root"
	"fjacquet/statement-verify/internal/fileutils"
	"fjacquet/statement-verify/internal/report"
)

// Cmd represents the analyze command.
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a single bank statement PDF",
	Long: `Analyze one bank statement PDF for signs of fraud and print an
executive risk profile. The detailed analysis is saved next to the input
file unless -o names another location.

Example:
  statement-verify analyze -i statement.pdf
  statement-verify analyze -i statement.pdf -o report.json -f json`,
	RunE: analyzeFunc,
}

func analyzeFunc(cmd *cobra.Command, args []string) error {
	input := root.SharedFlags.Input
	if input == "" && len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		return fmt.Errorf("input PDF must be specified with -i")
	}
	if !fileutils.FileExists(input) {
		return fmt.Errorf("input file does not exist: %s", input)
	}

	appContainer, err := root.RequireContainer(cmd.Context())
	if err != nil {
		return err
	}
	cfg := appContainer.GetConfig()

	analysis, err := appContainer.GetAnalyzer().AnalyzeStatement(cmd.Context(), input)
	if err != nil {
		return err
	}

	generator := appContainer.GetReportGenerator()
	generator.WriteSummary(os.Stdout, analysis)

	data, err := generator.Marshal(analysis, cfg.Report.Format)
	if err != nil {
		return err
	}

	outputPath := root.SharedFlags.Output
	if outputPath == "" {
		outputPath = report.DefaultOutputPath(input, cfg.Report.Format)
	}
	if err := fileutils.WriteFile(outputPath, data); err != nil {
		return err
	}

	fmt.Printf("Detailed analysis saved to: %s\n", outputPath)
	return nil
}
