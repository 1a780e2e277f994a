// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package auth

import (
	"context"
)

// A Source supplies the bearer token attached to outgoing requests.
// The client consults its source once per call, before the first
// attempt, so every retry of one call carries the same token.
//
// Token returns the token to attach, or the empty string when no token
// should be attached. A non-nil error aborts the call before any
// request is sent.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Source interface {
	Token(ctx context.Context) (string, error)
}

// SourceFunc adapts an ordinary function to the Source interface.
type SourceFunc func(ctx context.Context) (string, error)

// Token calls f.
func (f SourceFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// Static returns a source that always yields the given token.
func Static(token string) Source {
	return staticSource(token)
}

type staticSource string

func (s staticSource) Token(context.Context) (string, error) {
	return string(s), nil
}

// Bearer formats a token as an Authorization header value.
func Bearer(token string) string {
	return "Bearer " + token
}
