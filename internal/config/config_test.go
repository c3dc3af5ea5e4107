package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvLogLevel, EnvLogEncoding, EnvStrictRecordSize} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Encoding)
	assert.False(t, cfg.Binary.StrictRecordSize)
	assert.Equal(t, "./input", cfg.Batch.InputDir)
	assert.Equal(t, "./output", cfg.Batch.OutputDir)
	assert.Equal(t, "./input_archive", cfg.Batch.ArchiveDir)
	assert.Equal(t, "csv", cfg.Batch.OutputFormat)
	assert.Equal(t, "{name}_{uuid}", cfg.Batch.OutputNameFormat)
	assert.Equal(t, 4, cfg.Batch.MaxConcurrency)
	assert.Equal(t, "errors.log", cfg.Batch.ErrorLog)
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
log:
  level: debug
  encoding: logfmt
binary:
  strict_record_size: true
batch:
  input_dir: /data/in
  output_format: TXT
  max_concurrency: 8
`)

	cfg, err := Load(path, noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "logfmt", cfg.Log.Encoding)
	assert.True(t, cfg.Binary.StrictRecordSize)
	assert.Equal(t, "/data/in", cfg.Batch.InputDir)
	assert.Equal(t, "txt", cfg.Batch.OutputFormat)
	assert.Equal(t, 8, cfg.Batch.MaxConcurrency)
	assert.Equal(t, "./output", cfg.Batch.OutputDir, "unset keys keep defaults")
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvStrictRecordSize, "true")

	path := writeFile(t, "config.yaml", "log:\n  level: debug\n")

	cfg, err := Load(path, noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Binary.StrictRecordSize)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv(EnvLogEncoding))
	t.Cleanup(func() { _ = os.Unsetenv(EnvLogEncoding) })

	envFile := writeFile(t, "test.env", EnvLogEncoding+"=json\n")

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Encoding)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	cases := map[string]string{
		"bad yaml":        "log: [",
		"bad encoding":    "log:\n  encoding: xml\n",
		"bad format":      "batch:\n  output_format: xlsx\n",
		"bad concurrency": "batch:\n  max_concurrency: -1\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.yaml", content), noEnvFile(t))
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), noEnvFile(t))
		assert.Error(t, err)
	})

	t.Run("bad strict value", func(t *testing.T) {
		t.Setenv(EnvStrictRecordSize, "sometimes")
		_, err := Load("", noEnvFile(t))
		assert.ErrorContains(t, err, EnvStrictRecordSize)
	})
}
