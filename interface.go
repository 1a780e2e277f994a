// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"context"
)

// Caller is the interface that groups Do and the convenience verb
// methods. Client implements Caller, and any other implementation must
// behave substantially the same as Client: one logical call per
// invocation, with the result shaped the way Client.Do shapes it.
//
// Code that only issues calls should depend on Caller rather than on
// *Client, so tests can substitute a fake.
type Caller interface {
	Do(ctx context.Context, method, url string, opts *Options) (Result, error)
	Get(ctx context.Context, url string, opts *Options) (Result, error)
	Head(ctx context.Context, url string, opts *Options) (Result, error)
	Post(ctx context.Context, url string, opts *Options) (Result, error)
	Put(ctx context.Context, url string, opts *Options) (Result, error)
	Patch(ctx context.Context, url string, opts *Options) (Result, error)
	Delete(ctx context.Context, url string, opts *Options) (Result, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes connections which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
type IdleCloser interface {
	CloseIdleConnections()
}

var (
	_ Caller     = (*Client)(nil)
	_ IdleCloser = (*Client)(nil)
)
