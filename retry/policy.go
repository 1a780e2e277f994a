// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"
)

// A Decision states whether, and how often, a failed request attempt
// may be retried, and optionally how long to wait before each retry.
//
// Attempts bounds the number of additional attempts after the first
// one: a decision with Attempts == 1 permits one retry (two attempts
// in total), and a decision with Attempts == 0 permits none. A zero
// decision present in a policy map is therefore an explicit "never
// retry", which shadows any decision a lower-precedence policy layer
// would have supplied for the same outcome.
//
// Delay, when positive, fixes the wait before every retry, overriding
// both the server's Retry-After guidance and the backoff formula.
// DelayFunc does the same but receives the zero-based index of the
// attempt that just failed, so the wait can vary per attempt; it wins
// over Delay when both are set. A DelayFunc returning 0 is honored as
// an immediate retry, whereas a zero Delay simply means "no fixed
// delay".
type Decision struct {
	Attempts  int
	Delay     time.Duration
	DelayFunc func(attempt int) time.Duration
}

// Once is the decision permitting exactly one retry. It is the
// equivalent of answering plain "yes" to the retry question.
var Once = Decision{Attempts: 1}

// None is the decision permitting no retry at all. Placing None in a
// policy map differs from omitting the entry: None stops the lookup,
// while an absent entry lets the next layer answer.
var None = Decision{}

// Times returns a decision permitting up to n additional attempts.
// Its pointer return type suits the Network and Parse slots of Policy:
//
//	&retry.Policy{Network: retry.Times(2)}
func Times(n int) *Decision {
	return &Decision{Attempts: n}
}

// A Policy controls if and how retries are done during a request plan
// execution. After every failed attempt the client consults the
// per-call policy layered over the client policy: Decide answers
// whether to retry, and Wait answers how long to sleep first.
//
// Status maps outcome selectors to decisions. A selector is a numeric
// status code ("503"), a symbolic status name ("service_unavailable"),
// or a range wildcard ("5xx"). Network and Parse hold the single
// decision for their respective failure channels.
//
// The scalar fields tune the surrounding machinery rather than any
// one decision. A zero (or nil) scalar field inherits its value from
// the next policy layer, and ultimately from the package defaults, so
// a per-call policy can override just one knob without restating the
// rest.
//
// A Policy must not be mutated once it is in use by a client; share
// freely, copy before changing.
type Policy struct {
	// Status maps status outcome selectors to retry decisions.
	Status map[string]Decision

	// Network is the decision for attempts that failed before an HTTP
	// response was available. nil means no opinion.
	Network *Decision

	// Parse is the decision for attempts whose response body could not
	// be read or decoded. nil means no opinion.
	Parse *Decision

	// MaxDelay caps every computed wait, whatever its source. Zero
	// inherits; the package default is DefaultMaxDelay.
	MaxDelay time.Duration

	// MaxElapsed is the total time budget for the plan execution. Once
	// the execution has run this long no further retry is allowed.
	// Zero inherits; the package default is no budget.
	MaxElapsed time.Duration

	// BackoffBase is the base duration of the exponential backoff
	// formula. Zero inherits; the package default is
	// DefaultBackoffBase.
	BackoffBase time.Duration

	// RetryAfter states whether a Retry-After response header may
	// supply the wait before a retry. nil inherits; the package
	// default is to honor it.
	RetryAfter *bool

	// Methods lists the HTTP methods eligible for retry. A nil slice
	// inherits; an empty non-nil slice makes no method eligible. The
	// package default is DefaultMethods.
	Methods []string
}

const (
	// DefaultAttempts is the number of additional attempts the
	// decisions of DefaultPolicy permit.
	DefaultAttempts = 5

	// DefaultBackoffBase is the backoff base used when no policy layer
	// sets one.
	DefaultBackoffBase = 50 * time.Millisecond

	// DefaultMaxDelay is the wait cap used when no policy layer sets
	// one.
	DefaultMaxDelay = 1 * time.Second
)

// DefaultMethods is the method eligibility list used when no policy
// layer sets one. It contains the idempotent methods; POST and PATCH
// must be opted into retry explicitly.
var DefaultMethods = []string{"GET", "HEAD", "PUT", "DELETE", "OPTIONS", "TRACE"}

// DefaultPolicy is a general-purpose retry policy suitable for common
// use cases. It permits up to DefaultAttempts additional attempts when
// the attempt failed in the network channel, or when a valid HTTP
// response arrived with one of the following status codes: 429 (Too
// Many Requests); 502 (Bad Gateway); 503 (Service Unavailable); or 504
// (Gateway Timeout). It is the policy a client without one falls back
// to.
var DefaultPolicy = &Policy{
	Status: map[string]Decision{
		"429": {Attempts: DefaultAttempts},
		"502": {Attempts: DefaultAttempts},
		"503": {Attempts: DefaultAttempts},
		"504": {Attempts: DefaultAttempts},
	},
	Network: Times(DefaultAttempts),
}

// Never is a policy that never retries. Install it on a client to use
// the other features of the client without retries.
var Never = &Policy{}

// Attempts returns a policy shaped like DefaultPolicy but with every
// decision's attempt budget set to n. It is the terse spelling for
// callers who only care about the retry count:
//
//	opts := &call.Options{Retry: retry.Attempts(2)}
func Attempts(n int) *Policy {
	return &Policy{
		Status: map[string]Decision{
			"429": {Attempts: n},
			"502": {Attempts: n},
			"503": {Attempts: n},
			"504": {Attempts: n},
		},
		Network: Times(n),
	}
}

// Merged knob accessors. Each walks the local layer, the global layer,
// and the package default, in that order.

func maxDelay(local, global *Policy) time.Duration {
	if local != nil && local.MaxDelay > 0 {
		return local.MaxDelay
	}
	if global != nil && global.MaxDelay > 0 {
		return global.MaxDelay
	}
	return DefaultMaxDelay
}

func maxElapsed(local, global *Policy) time.Duration {
	if local != nil && local.MaxElapsed > 0 {
		return local.MaxElapsed
	}
	if global != nil && global.MaxElapsed > 0 {
		return global.MaxElapsed
	}
	return 0
}

func backoffBase(local, global *Policy) time.Duration {
	if local != nil && local.BackoffBase > 0 {
		return local.BackoffBase
	}
	if global != nil && global.BackoffBase > 0 {
		return global.BackoffBase
	}
	return DefaultBackoffBase
}

func honorRetryAfter(local, global *Policy) bool {
	if local != nil && local.RetryAfter != nil {
		return *local.RetryAfter
	}
	if global != nil && global.RetryAfter != nil {
		return *global.RetryAfter
	}
	return true
}

func methods(local, global *Policy) []string {
	if local != nil && local.Methods != nil {
		return local.Methods
	}
	if global != nil && global.Methods != nil {
		return global.Methods
	}
	return DefaultMethods
}
