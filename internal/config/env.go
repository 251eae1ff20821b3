package config

import (
	"fmt"
	"strconv"
)

// Environment variables that override the file.
const (
	EnvConfig   = "SCROLLSCENE_CONFIG"
	EnvModel    = "SCROLLSCENE_MODEL"
	EnvScale    = "SCROLLSCENE_MODEL_SCALE"
	EnvLogLevel = "SCROLLSCENE_LOG_LEVEL"
	EnvCacheDir = "SCROLLSCENE_CACHE_DIR"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides cfg from the environment. Unset or empty variables are ignored.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}
	if v, ok := get(EnvModel); ok {
		cfg.Model.Source = v
	}
	if v, ok := get(EnvScale); ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil || f <= 0 {
			return fmt.Errorf("config: %s=%q: want a positive number", EnvScale, v)
		}
		cfg.Model.Scale = float32(f)
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.Log.Level = v
	}
	if v, ok := get(EnvCacheDir); ok {
		cfg.Model.CacheDir = v
	}
	return nil
}
