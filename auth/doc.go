// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package auth supplies bearer tokens for outgoing requests.
//
// A Source yields one token per call. Static fixes the token at
// construction time, SourceFunc adapts a closure, and Store holds a
// token that other goroutines may swap out while requests are in
// flight. The client attaches the token as an Authorization header,
// and only when the plan does not already carry one.
package auth
