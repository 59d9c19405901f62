package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

func TestDefaults(t *testing.T) {
	c, err := New(newViper())
	require.NoError(t, err)

	assert.Equal(t, "./data", c.DataDir)
	assert.Equal(t, "data/db/protprofile.db", c.DB)
	assert.Equal(t, 500*time.Millisecond, c.UniProt.Delay)
	assert.Equal(t, 30*time.Second, c.UniProt.Timeout)
	assert.Equal(t, "https://rest.uniprot.org/uniprotkb", c.UniProt.BaseURL)
	assert.Equal(t, 0.5, c.Report.CorrThreshold)
	assert.Equal(t, 10, c.Report.Bins)
	assert.Equal(t, "info", c.LogLevel)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PROTPROFILE_DATA_DIR", "/tmp/pp")
	t.Setenv("PROTPROFILE_UNIPROT_DELAY", "2s")
	t.Setenv("PROTPROFILE_REPORT_CORR_THRESHOLD", "0.8")

	c, err := New(newViper())
	require.NoError(t, err)

	assert.Equal(t, "/tmp/pp", c.DataDir)
	assert.Equal(t, "/tmp/pp/db/protprofile.db", c.DB)
	assert.Equal(t, 2*time.Second, c.UniProt.Delay)
	assert.Equal(t, 0.8, c.Report.CorrThreshold)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "protprofile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: /srv/runs.db\nuniprot:\n  timeout: 5s\n"), 0o644))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	c, err := New(v)
	require.NoError(t, err)
	assert.Equal(t, "/srv/runs.db", c.DB)
	assert.Equal(t, 5*time.Second, c.UniProt.Timeout)
}

func TestRejectsNegativeDelay(t *testing.T) {
	v := newViper()
	v.Set("uniprot.delay", "-1s")
	_, err := New(v)
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PROTPROFILE_LOG_LEVEL=debug\n"), 0o644))
	t.Setenv("PROTPROFILE_LOG_LEVEL", "")
	os.Unsetenv("PROTPROFILE_LOG_LEVEL")

	LoadDotEnv(path)

	c, err := New(newViper())
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
}
