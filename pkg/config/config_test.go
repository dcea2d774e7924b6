package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, `
[dict]
path = "/usr/share/dict/words"
expected_words = 235886

[search]
lowercase = true
max_letters = 8

[display]
words_per_line = 3
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/usr/share/dict/words", cfg.Dict.Path)
	assert.Equal(t, 235886, cfg.Dict.ExpectedWords)
	assert.True(t, cfg.Search.Lowercase)
	assert.Equal(t, 8, cfg.Search.MaxLetters)
	assert.Equal(t, 3, cfg.Display.WordsPerLine)
	assert.Equal(t, DefaultConfig().Server, cfg.Server, "unset sections keep defaults")
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, `
[dict]
path = "custom.txt"
expected_words = "lots"

[server]
timeout_ms = 500
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "custom.txt", cfg.Dict.Path)
	assert.Equal(t, DefaultConfig().Dict.ExpectedWords, cfg.Dict.ExpectedWords)
	assert.Equal(t, 500, cfg.Server.TimeoutMs)
}

func TestLoadConfigSyntaxErrorFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[dict\npath = ")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, path, "[display]\nwords_per_line = 7\n")

	cfg, used, err := LoadConfigWithPriority(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 7, cfg.Display.WordsPerLine)

	cfg, used, err = LoadConfigWithPriority(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestTimeouts(t *testing.T) {
	assert.Equal(t, time.Duration(0), SearchConfig{}.Timeout())
	assert.Equal(t, time.Duration(0), SearchConfig{TimeoutMs: -5}.Timeout())
	assert.Equal(t, 30*time.Second, DefaultConfig().Server.Timeout())
}

func TestGetActiveConfigPath(t *testing.T) {
	assert.Equal(t, "builtin defaults", GetActiveConfigPath(""))
	assert.True(t, filepath.IsAbs(GetActiveConfigPath("config.toml")))
}
