package profile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileDefaults(t *testing.T) {
	clearEnvVars(t)

	p := &Profile{}
	p.FromEnv()

	assert.Equal(t, "demo", p.Mode)
	assert.Equal(t, "csv", p.LogDriver)
	assert.Empty(t, p.DSN)
}

func TestProfileFromEnv(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("NUTRISNAP_MODE", "prod")
	t.Setenv("NUTRISNAP_LOG_DRIVER", "sqlite")
	t.Setenv("NUTRISNAP_DSN", "/tmp/study.db")

	p := &Profile{}
	p.FromEnv()

	assert.Equal(t, "prod", p.Mode)
	assert.Equal(t, "sqlite", p.LogDriver)
	assert.Equal(t, "/tmp/study.db", p.DSN)
}

func TestProfileFlagsOverrideEnv(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("NUTRISNAP_MODE", "prod")

	p := &Profile{Mode: "dev"}
	p.FromEnv()

	assert.Equal(t, "dev", p.Mode)
}

func TestProfileValidate(t *testing.T) {
	t.Run("CSVDefaultDSN", func(t *testing.T) {
		dir := t.TempDir()
		p := &Profile{Mode: "demo", Data: dir, LogDriver: "csv"}
		require.NoError(t, p.Validate())
		assert.Equal(t, filepath.Join(dir, "logs.csv"), p.DSN)
	})

	t.Run("SQLiteDefaultDSN", func(t *testing.T) {
		dir := t.TempDir()
		p := &Profile{Mode: "dev", Data: dir, LogDriver: "sqlite"}
		require.NoError(t, p.Validate())
		assert.Equal(t, filepath.Join(dir, "nutrisnap_dev.db"), p.DSN)
	})

	t.Run("PostgresRequiresDSN", func(t *testing.T) {
		p := &Profile{Mode: "demo", Data: t.TempDir(), LogDriver: "postgres"}
		assert.Error(t, p.Validate())
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		p := &Profile{Mode: "demo", Data: t.TempDir(), LogDriver: "mongodb"}
		assert.Error(t, p.Validate())
	})

	t.Run("InvalidModeFallsBackToDemo", func(t *testing.T) {
		p := &Profile{Mode: "staging", Data: t.TempDir(), LogDriver: "csv"}
		require.NoError(t, p.Validate())
		assert.Equal(t, "demo", p.Mode)
	})
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NUTRISNAP_MODE", "NUTRISNAP_ADDR", "NUTRISNAP_DATA",
		"NUTRISNAP_LOG_DRIVER", "NUTRISNAP_DSN",
	} {
		t.Setenv(key, "")
	}
}
