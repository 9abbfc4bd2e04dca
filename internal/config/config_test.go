package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Financials.txt", cfg.LedgerPath)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, DefaultFacilityLocation, cfg.FacilityLocation)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPartialOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "billgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger_path: /data/Financials.txt\nlog_format: json\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/Financials.txt", cfg.LedgerPath)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ":5000", cfg.ListenAddr, "unset keys keep defaults")
	assert.Equal(t, DefaultFacilityLocation, cfg.FacilityLocation)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "billgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger_path: [broken\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.LedgerPath = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.ListenAddr = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogFormat = "xml"
	assert.Error(t, cfg.Validate())
}
