package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driven/config"
	"github.com/custodia-labs/ncosearch-cli/internal/core/services"
)

func TestConfigShow_Defaults(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "api.base_url")
	assert.Contains(t, out, "http://localhost:8000")
	assert.Contains(t, out, "default")
}

func TestConfigShow_EnvAndFlagSources(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.store.Set(services.KeyVoiceLanguage, "hi-IN"))
	configView = config.NewEnvOverlay(env.store, func(name string) (string, bool) {
		if name == "NCO_SEARCH_METHOD" {
			return "get", true
		}
		return "", false
	})

	out, err := executeCommand(t, "config", "show", "--api-url", "http://flag.example:9000")

	require.NoError(t, err)
	assert.Contains(t, out, "http://flag.example:9000")
	assert.Contains(t, out, "flag")
	assert.Contains(t, out, "env")
	assert.Contains(t, out, "hi-IN")
	assert.Contains(t, out, "file")
}

func TestConfigSet_BaseURL(t *testing.T) {
	env := setupTestServices(t)

	out, err := executeCommand(t, "config", "set", "api.base_url", "https://nco.example.org/")

	require.NoError(t, err)
	assert.Contains(t, out, "Set api.base_url")
	assert.Equal(t, "https://nco.example.org", env.store.GetString(services.KeyAPIBaseURL))
}

func TestConfigSet_RejectsBadValues(t *testing.T) {
	setupTestServices(t)

	tests := [][]string{
		{"config", "set", "api.base_url", "not a url"},
		{"config", "set", "api.search_method", "patch"},
		{"config", "set", "api.timeout", "-3s"},
		{"config", "set", "api.rate_limit", "fast"},
		{"config", "set", "unknown.key", "x"},
	}

	for _, args := range tests {
		_, err := executeCommand(t, args...)
		assert.Error(t, err, "%v", args)
	}
}

func TestConfigSet_Timeout(t *testing.T) {
	env := setupTestServices(t)

	_, err := executeCommand(t, "config", "set", "api.timeout", "30")

	require.NoError(t, err)
	settings, err := services.NewSettingsService(env.store).Get()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, settings.API.Timeout)
}

func TestConfigSet_VoiceArgs(t *testing.T) {
	env := setupTestServices(t)

	_, err := executeCommand(t, "config", "set", "voice.args", "--", "-m", "model.bin")

	require.NoError(t, err)
	assert.Equal(t, []string{"-m", "model.bin"}, env.store.GetStringSlice(services.KeyVoiceArgs))
}

func TestConfigSet_WarnsWhenOverridden(t *testing.T) {
	env := setupTestServices(t)
	configView = config.NewEnvOverlay(env.store, func(name string) (string, bool) {
		return "http://env.example", name == "NCO_API_URL"
	})

	out, err := executeCommand(t, "config", "set", "api.base_url", "http://stored.example")

	require.NoError(t, err)
	assert.Contains(t, out, "overridden by an environment variable")
	assert.Equal(t, "http://stored.example", env.store.GetString(services.KeyAPIBaseURL))
}

func TestConfigUnset(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.store.Set(services.KeyVoiceCommand, "whisper-stream"))

	out, err := executeCommand(t, "config", "unset", "voice.command")

	require.NoError(t, err)
	assert.Contains(t, out, "Unset voice.command")
	_, ok := env.store.Get(services.KeyVoiceCommand)
	assert.False(t, ok)

	_, err = executeCommand(t, "config", "unset", "nope")
	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "config", "path")

	require.NoError(t, err)
	assert.Contains(t, out, ":memory:")
}

func TestParseTimeout(t *testing.T) {
	d, err := parseTimeout("1m")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, d)

	d, err = parseTimeout("7")
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, d)

	_, err = parseTimeout("0")
	assert.Error(t, err)
}
