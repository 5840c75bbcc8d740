package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"RECALLKIT_DATA_DIR", "RECALLKIT_BUILD_DIR", "RECALLKIT_API_TOKEN",
		"RECALLKIT_API_BASE", "RECALLKIT_CORS_ORIGINS", "RECALLKIT_DATABASE_URL",
		"RECALLKIT_MAX_UPLOAD_BYTES", "RECALLKIT_REVIEW_LIMIT", "RECALLKIT_BOX_INTERVALS",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("RECALLKIT_CONFIG_PATH", t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, DefaultBuildDir, cfg.BuildDir)
	assert.Equal(t, DefaultAPIBase, cfg.APIBase)
	assert.False(t, cfg.AuthEnabled())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	assert.Equal(t, "default", cfg.Source("data_dir"))
	require.NoError(t, cfg.Validate())

	intervals, err := cfg.Intervals()
	require.NoError(t, err)
	assert.Equal(t, [4]time.Duration{0, 24 * time.Hour, 72 * time.Hour, 168 * time.Hour}, intervals)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("RECALLKIT_CONFIG_PATH", dir)

	yml := `data_dir: /srv/progress
build_dir: /srv/build
api_token: "  file-token  "
cors_origins:
  - https://study.example.com
review_limit: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yml), 0o600))
	t.Setenv("RECALLKIT_BUILD_DIR", "/env/build")
	t.Setenv("RECALLKIT_REVIEW_LIMIT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.ConfigFilePath())
	assert.Equal(t, "/srv/progress", cfg.DataDir)
	assert.Equal(t, "file", cfg.Source("data_dir"))
	assert.Equal(t, "/env/build", cfg.BuildDir)
	assert.Equal(t, "environment", cfg.Source("build_dir"))
	assert.Equal(t, "file-token", cfg.APIToken)
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, []string{"https://study.example.com"}, cfg.AllowedOrigins())
	assert.Equal(t, 5, cfg.ReviewLimit, "unparseable env values are ignored")
	assert.Equal(t, "file", cfg.Source("review_limit"))
}

func TestLoad_InvalidFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("RECALLKIT_CONFIG_PATH", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("data_dir: [unclosed"), 0o600))

	_, err := Load()
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoad_EnvironmentLists(t *testing.T) {
	clearEnv(t)
	t.Setenv("RECALLKIT_CORS_ORIGINS", " http://a.local , ,http://b.local ")
	t.Setenv("RECALLKIT_BOX_INTERVALS", "1m,1h,2h,3h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CORSOrigins)
	intervals, err := cfg.Intervals()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, intervals[0])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *RecallKitConfig)
		wantErr string
	}{
		{"defaults", func(c *RecallKitConfig) {}, ""},
		{"no storage", func(c *RecallKitConfig) { c.DataDir = "" }, "data_dir or database_url must be set"},
		{"database only", func(c *RecallKitConfig) { c.DataDir = ""; c.DatabaseURL = "postgres://x/y" }, ""},
		{"bad upload size", func(c *RecallKitConfig) { c.MaxUploadBytes = 0 }, "invalid max_upload_bytes value: 0"},
		{"bad origin", func(c *RecallKitConfig) { c.CORSOrigins = []string{"nope"} }, "invalid cors_origins value: nope"},
		{"wildcard origin", func(c *RecallKitConfig) { c.CORSOrigins = []string{"*"} }, ""},
		{"too few intervals", func(c *RecallKitConfig) { c.BoxIntervals = []string{"1h"} }, "box_intervals needs 4 values, got 1"},
		{"negative interval", func(c *RecallKitConfig) { c.BoxIntervals = []string{"0s", "-1h", "1h", "2h"} }, `invalid box_intervals value "-1h": must not be negative`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestFormat_MasksSecrets(t *testing.T) {
	cfg := newDefault()
	cfg.APIToken = "s3cret"
	cfg.DatabaseURL = "postgres://user:pw@db:5432/recallkit"

	text := cfg.FormatText()
	assert.NotContains(t, text, "s3cret")
	assert.NotContains(t, text, ":pw@")
	assert.Contains(t, text, "(not set)")

	js, err := cfg.FormatJSON()
	require.NoError(t, err)
	assert.NotContains(t, js, "s3cret")
	assert.Contains(t, js, `"name": "api_token"`)
}
