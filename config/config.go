// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/doschge/call/retry"
)

const envPrefix = "CALL_"

// Load reads configuration from three layers in ascending order of
// precedence: the package defaults, the YAML file at path, and
// CALL_-prefixed environment variables. A missing file is not an
// error; a malformed one is. Pass an empty path to skip the file
// layer.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", transformEnv), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	return finish(k)
}

// FromBytes parses configuration from raw YAML bytes layered over the
// package defaults. The environment is not consulted, which makes it
// the deterministic choice for tests and embedded configuration.
func FromBytes(b []byte) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(rawbytes.Provider(b), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse config bytes: %w", err)
	}

	return finish(k)
}

func finish(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// defaults mirrors the retry package defaults so that a Config loaded
// with no file and no environment produces a client equivalent to the
// zero call.Client.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"retry.status.429": retry.DefaultAttempts,
		"retry.status.502": retry.DefaultAttempts,
		"retry.status.503": retry.DefaultAttempts,
		"retry.status.504": retry.DefaultAttempts,
		"retry.network":    retry.DefaultAttempts,
		"log.level":        "info",
		"log.pretty":       false,
	}
}

// transformEnv maps CALL_RETRY_MAXDELAY to retry.maxdelay. Underscores
// separate key segments, so selectors containing one, such as
// "service_unavailable", cannot be spelled in the environment; use the
// file layer for those.
func transformEnv(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	return strings.ReplaceAll(key, "_", "."), value
}
