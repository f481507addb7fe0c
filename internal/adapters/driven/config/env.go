package config

import (
	"errors"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ncosearch-cli/internal/logger"
)

// Ensure EnvOverlay implements the interface.
var _ driven.ConfigStore = (*EnvOverlay)(nil)

// EnvBindings maps environment variables to config keys. Earlier entries
// win when two variables target the same key.
var EnvBindings = []EnvBinding{
	{Var: "NCO_API_URL", Key: "api.base_url"},
	{Var: "VITE_API_URL", Key: "api.base_url"},
	{Var: "NCO_API_TIMEOUT", Key: "api.timeout"},
	{Var: "NCO_SEARCH_METHOD", Key: "api.search_method"},
	{Var: "NCO_RATE_LIMIT", Key: "api.rate_limit"},
	{Var: "NCO_VOICE_COMMAND", Key: "voice.command"},
	{Var: "NCO_VOICE_ARGS", Key: "voice.args"},
	{Var: "NCO_VOICE_PROBE", Key: "voice.probe_command"},
	{Var: "NCO_VOICE_LANGUAGE", Key: "voice.language"},
}

// EnvBinding ties one environment variable to one config key.
type EnvBinding struct {
	Var string
	Key string
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are skipped and existing variables are never
// overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		logger.Debug("Loaded environment from %s", p)
	}
	return nil
}

// EnvOverlay reads through to a base store but lets environment variables
// override individual keys. Writes go to the base store only, so an override
// never ends up persisted.
type EnvOverlay struct {
	base      driven.ConfigStore
	overrides map[string]string
}

// NewEnvOverlay captures the current environment using lookup
// (os.LookupEnv when nil).
func NewEnvOverlay(base driven.ConfigStore, lookup func(string) (string, bool)) *EnvOverlay {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	overrides := make(map[string]string)
	for _, b := range EnvBindings {
		if _, taken := overrides[b.Key]; taken {
			continue
		}
		if v, ok := lookup(b.Var); ok && strings.TrimSpace(v) != "" {
			overrides[b.Key] = strings.TrimSpace(v)
			logger.Debug("Config %s overridden by $%s", b.Key, b.Var)
		}
	}

	return &EnvOverlay{base: base, overrides: overrides}
}

// Overridden reports whether key currently comes from the environment.
func (o *EnvOverlay) Overridden(key string) bool {
	_, ok := o.overrides[key]
	return ok
}

// Get retrieves a configuration value by key.
func (o *EnvOverlay) Get(key string) (any, bool) {
	if v, ok := o.overrides[key]; ok {
		return v, true
	}
	return o.base.Get(key)
}

// GetString retrieves a string configuration value.
func (o *EnvOverlay) GetString(key string) string {
	if v, ok := o.overrides[key]; ok {
		return v
	}
	return o.base.GetString(key)
}

// GetInt retrieves an integer configuration value.
func (o *EnvOverlay) GetInt(key string) int {
	if _, ok := o.overrides[key]; ok {
		return int(o.GetFloat(key))
	}
	return o.base.GetInt(key)
}

// GetFloat retrieves a numeric configuration value.
func (o *EnvOverlay) GetFloat(key string) float64 {
	if v, ok := o.overrides[key]; ok {
		return AsFloat(v)
	}
	return o.base.GetFloat(key)
}

// GetBool retrieves a boolean configuration value.
func (o *EnvOverlay) GetBool(key string) bool {
	if v, ok := o.overrides[key]; ok {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		default:
			return false
		}
	}
	return o.base.GetBool(key)
}

// GetStringSlice retrieves a string slice configuration value.
func (o *EnvOverlay) GetStringSlice(key string) []string {
	if v, ok := o.overrides[key]; ok {
		return AsStringSlice(v)
	}
	return o.base.GetStringSlice(key)
}

// Set stores a value in the base store.
func (o *EnvOverlay) Set(key string, value any) error {
	return o.base.Set(key, value)
}

// Unset removes a value from the base store.
func (o *EnvOverlay) Unset(key string) error {
	return o.base.Unset(key)
}

// Keys returns base keys plus overridden keys.
func (o *EnvOverlay) Keys() []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, k := range o.base.Keys() {
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for k := range o.overrides {
		if _, ok := seen[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Save persists the base store.
func (o *EnvOverlay) Save() error {
	return o.base.Save()
}

// Load reloads the base store.
func (o *EnvOverlay) Load() error {
	return o.base.Load()
}

// Path returns the base store path.
func (o *EnvOverlay) Path() string {
	return o.base.Path()
}
