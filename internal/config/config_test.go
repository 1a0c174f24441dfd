package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chd.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, inference.DefaultCenters(), cfg.Engine.Centers())
	assert.Equal(t, 50, cfg.Training.Epochs)
	assert.Equal(t, 0.01, cfg.Training.LearningRate)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[engine]
bank = "classic"
sick = 3.5

[training]
epochs = 10
learning_rate = 0.05

[store]
db_path = "/tmp/ledger.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "classic", cfg.Engine.Bank)
	assert.Equal(t, 3.5, cfg.Engine.Sick)
	assert.Equal(t, 0.75, cfg.Engine.Healthy, "unset keys keep defaults")
	assert.Equal(t, 10, cfg.Training.Epochs)
	assert.Equal(t, 0.05, cfg.Training.LearningRate)
	assert.Equal(t, 200, cfg.Training.Samples)
	assert.Equal(t, "/tmp/ledger.db", cfg.Store.DBPath)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[engine]
bank = "advanced"
fuzziness = 2
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown bank", "[engine]\nbank = \"quantum\"\n"},
		{"zero epochs", "[training]\nepochs = 0\n"},
		{"test fraction one", "[training]\ntest_fraction = 1.0\n"},
		{"no samples", "[training]\nsamples = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHD_DB", "/var/lib/chd.db")
	t.Setenv("CHD_ADDR", ":6000")
	t.Setenv("CHD_METRICS_ADDR", ":6001")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/chd.db", cfg.Store.DBPath)
	assert.Equal(t, ":6000", cfg.Server.Addr)
	assert.Equal(t, ":6001", cfg.Server.MetricsAddr)
}
