package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchCommandMetadata(t *testing.T) {
	assert.Equal(t, "batch", Cmd.Use)
	assert.Contains(t, Cmd.Long, "verdicts.csv")
	assert.NotNil(t, Cmd.RunE)
}

func TestWriteVerdictIndex(t *testing.T) {
	rows := []verdictRow{
		{File: "clean.pdf", IsBankStatement: true, RiskScore: 0, RiskLevel: "Minimal", Confidence: 0.23},
		{File: "tampered.pdf", IsBankStatement: true, RiskScore: 0.85, RiskLevel: "High", Confidence: 0.7},
		{File: "broken.pdf", Error: "failed to render document pages: pdftoppm: exit status 1"},
	}
	path := filepath.Join(t.TempDir(), "verdicts.csv")

	require.NoError(t, writeVerdictIndex(rows, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, file.Close())
	}()

	var decoded []verdictRow
	require.NoError(t, gocsv.UnmarshalFile(file, &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, rows[0], decoded[0])
	assert.Equal(t, "High", decoded[1].RiskLevel)
	assert.Contains(t, decoded[2].Error, "failed to render")
}
