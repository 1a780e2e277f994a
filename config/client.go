// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/doschge/call"
	"github.com/doschge/call/auth"
	"github.com/doschge/call/request"
	"github.com/doschge/call/retry"
)

// Client materializes cfg into a ready client. Only declarative
// concerns are covered here; handlers, progress channels, and custom
// transports are code-level and must be set on the returned client by
// the caller.
func (cfg *Config) Client() *call.Client {
	return &call.Client{
		BaseURL:     cfg.BaseURL,
		Origin:      cfg.Origin,
		Header:      cfg.header(),
		Timeout:     cfg.Timeout,
		RetryPolicy: cfg.Retry.Policy(),
		Suppress:    cfg.Suppress,
		Fields:      cfg.Fields,
		Credentials: request.CredentialsMode(cfg.Credentials),
		TokenSource: cfg.tokenSource(),
		Logger:      cfg.Log.Logger(),
	}
}

func (cfg *Config) header() http.Header {
	if len(cfg.Header) == 0 {
		return nil
	}
	h := make(http.Header, len(cfg.Header))
	for k, v := range cfg.Header {
		h.Set(k, v)
	}
	return h
}

func (cfg *Config) tokenSource() auth.Source {
	if cfg.Token == "" {
		return nil
	}
	return auth.Static(cfg.Token)
}

// Policy converts the retry section into a retry policy. A section
// left at the package defaults produces a policy equivalent to
// retry.DefaultPolicy. The returned policy shares no state with the
// Config, so reloading a Config never mutates a policy already in use.
func (r *Retry) Policy() *retry.Policy {
	p := &retry.Policy{
		MaxDelay:    r.MaxDelay,
		MaxElapsed:  r.MaxElapsed,
		BackoffBase: r.BackoffBase,
	}
	if len(r.Status) > 0 {
		p.Status = make(map[string]retry.Decision, len(r.Status))
		for sel, n := range r.Status {
			p.Status[sel] = retry.Decision{Attempts: n}
		}
	}
	if r.Network > 0 {
		p.Network = retry.Times(r.Network)
	}
	if r.Parse > 0 {
		p.Parse = retry.Times(r.Parse)
	}
	if r.RetryAfter != nil {
		honor := *r.RetryAfter
		p.RetryAfter = &honor
	}
	if r.Methods != nil {
		p.Methods = append([]string(nil), r.Methods...)
	}
	return p
}

// Logger builds the zerolog logger the client logs through. Level
// names follow zerolog; empty and unknown names fall back to info.
func (l *Log) Logger() zerolog.Logger {
	var out io.Writer = os.Stdout
	if l.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(out).With().Timestamp().Logger().Level(level)
}
