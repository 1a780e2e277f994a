// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"time"
)

// Config is the file and environment representation of a client
// configuration. Values left at their zero value inherit the package
// defaults, mirroring how a zero call.Client behaves.
type Config struct {
	// BaseURL is joined with every relative call URL.
	BaseURL string `koanf:"baseurl" validate:"omitempty,url"`

	// Origin resolves rooted call URLs when no BaseURL is set.
	Origin string `koanf:"origin" validate:"omitempty,url"`

	// Header holds the default headers applied to every call. Keys are
	// canonicalized when the client is materialized, so environment
	// variables can spell them in any case.
	Header map[string]string `koanf:"header"`

	// Timeout bounds each individual request attempt.
	Timeout time.Duration `koanf:"timeout" validate:"min=0"`

	// Suppress folds call failures into the result instead of
	// returning an error.
	Suppress bool `koanf:"suppress"`

	// Fields selects which result fields calls populate. Empty keeps
	// every field.
	Fields []string `koanf:"fields" validate:"dive,oneof=content status statusText headers url ok redirected method error"`

	// Credentials is the default credentials mode recorded on every
	// request.
	Credentials string `koanf:"credentials" validate:"omitempty,oneof=omit same-origin include"`

	// Token is a static bearer token attached to calls that do not
	// carry an Authorization header of their own.
	Token string `koanf:"token"`

	Log   Log   `koanf:"log"`
	Retry Retry `koanf:"retry"`
}

// Log configures the client logger.
type Log struct {
	// Level is a zerolog level name ("debug", "info", ...).
	Level string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`

	// Pretty switches from JSON lines to the human-readable console
	// format.
	Pretty bool `koanf:"pretty"`
}

// Retry configures the client retry policy. Decisions here carry only
// an attempt count; fixed per-retry delays and delay functions remain
// a code-level concern.
type Retry struct {
	// Status maps status selectors (numeric code, symbolic name, or
	// range wildcard) to the number of additional attempts allowed.
	// Entries merge over the package defaults; set a default selector
	// to 0 to neutralize it.
	Status map[string]int `koanf:"status" validate:"dive,keys,selector,endkeys,min=0"`

	// Network is the number of additional attempts allowed after a
	// network failure. Zero leaves the channel without an opinion.
	Network int `koanf:"network" validate:"min=0"`

	// Parse is the number of additional attempts allowed after a body
	// read or decode failure. Zero leaves the channel without an
	// opinion.
	Parse int `koanf:"parse" validate:"min=0"`

	// MaxDelay caps every computed retry wait.
	MaxDelay time.Duration `koanf:"maxdelay" validate:"min=0"`

	// MaxElapsed is the total time budget for a call.
	MaxElapsed time.Duration `koanf:"maxelapsed" validate:"min=0"`

	// BackoffBase is the base duration of the backoff formula.
	BackoffBase time.Duration `koanf:"backoffbase" validate:"min=0"`

	// RetryAfter states whether Retry-After response headers may supply
	// the retry wait. Unset inherits the package default of honoring
	// them.
	RetryAfter *bool `koanf:"retryafter"`

	// Methods lists the HTTP methods eligible for retry.
	Methods []string `koanf:"methods" validate:"dive,method"`
}
