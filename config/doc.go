// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads client configuration from YAML files and the
// environment.
//
// Three layers feed a Config, each overriding the one below it:
// package defaults mirroring the zero client, an optional YAML file,
// and CALL_-prefixed environment variables (CALL_RETRY_MAXDELAY=2s
// maps to retry.maxdelay). Loaded configurations are validated before
// use, and Config.Client materializes one into a ready client.
package config
