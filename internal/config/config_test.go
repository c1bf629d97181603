package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/focoleve/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup location at an empty temp dir and clears the
// provider variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(dir)
	for _, k := range []string{
		"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"FOCOLEVE_LLM_PROVIDER", "FOCOLEVE_LLM_GEMINI_API_KEY", "FOCOLEVE_DB", "FOCOLEVE_DB_PATH",
		"FOCOLEVE_TIMER_FOCUS",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "", cfg.LLM.Provider)
	assert.Equal(t, "gemini-flash", cfg.LLM.Endpoints[llm.Gemini].Model)
	assert.Equal(t, 1, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 25*time.Minute, cfg.Timer.Focus)
	assert.Equal(t, 5*time.Minute, cfg.Timer.Break)
	assert.Equal(t, "127.0.0.1:8787", cfg.Server.Addr)
	assert.Equal(t, "release", cfg.Server.Mode)
}

func TestLoadVendorKeys(t *testing.T) {
	isolate(t)
	t.Setenv("API_KEY", "from-api-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-api-key", cfg.LLM.Endpoints[llm.Gemini].APIKey)

	t.Setenv("GEMINI_API_KEY", "from-gemini")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-gemini", cfg.LLM.Endpoints[llm.Gemini].APIKey)

	t.Setenv("FOCOLEVE_LLM_GEMINI_API_KEY", "from-prefixed")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-prefixed", cfg.LLM.Endpoints[llm.Gemini].APIKey)
}

func TestLoadPrefixedEnv(t *testing.T) {
	isolate(t)
	t.Setenv("FOCOLEVE_LLM_PROVIDER", "OpenAI")
	t.Setenv("FOCOLEVE_TIMER_FOCUS", "50m")
	t.Setenv("FOCOLEVE_DB_PATH", "/tmp/x.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 50*time.Minute, cfg.Timer.Focus)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
}

func TestLoadShortDBAlias(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  path: /tmp/from-file.db\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-file.db", cfg.DBPath)

	t.Setenv("FOCOLEVE_DB", "/tmp/short.db")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/short.db", cfg.DBPath)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	yaml := `
llm:
  provider: anthropic
  anthropic:
    api_key: sk-test
    model: claude-sonnet
  requests_per_minute: 30
timer:
  focus: 45m
  break: 15m
server:
  addr: ":9000"
  mode: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.Endpoints[llm.Anthropic].APIKey)
	assert.Equal(t, "claude-sonnet", cfg.LLM.Endpoints[llm.Anthropic].Model)
	assert.Equal(t, 30, cfg.LLM.RequestsPerMinute)
	assert.Equal(t, 45*time.Minute, cfg.Timer.Focus)
	assert.Equal(t, 15*time.Minute, cfg.Timer.Break)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Server.Mode)
}

func TestLoadDiscoversConfigInUserDir(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "focoleve"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "focoleve", "config.yaml"), []byte("log:\n  level: debug\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NotEmpty(t, cfg.File)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  focus: 0s\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("server:\n  mode: party\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}
