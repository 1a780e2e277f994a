// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry decides whether, and after how long a wait, a failed
// request attempt is tried again.
//
// A Policy is declarative: a map of status selectors to decisions,
// one decision slot each for the network and parse failure channels,
// and a handful of scalar knobs. Two policies are in play for every
// call, the per-call override layered over the client's policy, and
// every lookup and knob resolves through both layers before falling
// back to the package defaults:
//
//	policy := &retry.Policy{
//	    Status: map[string]retry.Decision{
//	        "503":       retry.Once,
//	        "too_early": {Attempts: 2},
//	        "5xx":       {Attempts: 3, Delay: 200 * time.Millisecond},
//	    },
//	    Network:    retry.Times(2),
//	    MaxElapsed: 30 * time.Second,
//	}
//
// Decide evaluates the layered lookup and the eligibility gates after
// a failed attempt; Wait turns the resulting Verdict into a concrete
// sleep, preferring an explicit decision delay, then the server's
// Retry-After guidance, then exponential backoff with full jitter.
//
// DefaultPolicy suits common use; Never switches retries off.
package retry
