package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-verify/internal/config"
)

func validConfig() *config.Config {
	var cfg config.Config
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.AI.Model = "gemini-2.0-flash"
	cfg.AI.TimeoutSeconds = 60
	cfg.AI.APIKey = "test-api-key"
	cfg.Analysis.MaxPages = 20
	cfg.Analysis.ClassifyPages = 2
	cfg.Render.DPI = 150
	cfg.Report.Format = "json"
	return &cfg
}

func TestNewContainerNilConfig(t *testing.T) {
	container, err := NewContainer(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration cannot be nil")
	assert.Nil(t, container)
}

func TestNewContainerMissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.AI.APIKey = ""

	container, err := NewContainer(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create perception client")
	assert.Nil(t, container)
}

func TestNewContainerWiresDependencies(t *testing.T) {
	cfg := validConfig()

	container, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, container)
	defer func() {
		assert.NoError(t, container.Close())
	}()

	assert.NotNil(t, container.GetLogger())
	assert.Equal(t, cfg, container.GetConfig())
	assert.NotNil(t, container.GetAnalyzer())
	assert.NotNil(t, container.GetReportGenerator())
}
