// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
)

// A CredentialsMode states whether stored credentials should accompany
// the request attempts made for a plan. It is advice for the transport
// layer, carried on the attempt's request context: the standard
// net/http client ignores it, but an HTTPDoer that manages its own
// cookie jar or ambient credentials can honor it via
// CredentialsModeFromRequest.
type CredentialsMode string

const (
	// CredentialsOmit asks the transport to strip stored credentials
	// from the attempt.
	CredentialsOmit CredentialsMode = "omit"

	// CredentialsSameOrigin asks the transport to attach stored
	// credentials only when the request stays on the origin the
	// credentials belong to.
	CredentialsSameOrigin CredentialsMode = "same-origin"

	// CredentialsInclude asks the transport to attach stored
	// credentials on every attempt.
	CredentialsInclude CredentialsMode = "include"
)

type credentialsModeKey struct{}

func withCredentialsMode(ctx context.Context, m CredentialsMode) context.Context {
	if m == "" {
		return ctx
	}
	return context.WithValue(ctx, credentialsModeKey{}, m)
}

// CredentialsModeFromRequest returns the credentials mode recorded on
// a request created by Plan.ToRequest. The second return value is
// false when the plan left the mode unspecified, or when the request
// did not come from a Plan at all.
func CredentialsModeFromRequest(r *http.Request) (CredentialsMode, bool) {
	m, ok := r.Context().Value(credentialsModeKey{}).(CredentialsMode)
	return m, ok
}
