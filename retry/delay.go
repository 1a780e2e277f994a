// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/doschge/call/request"
)

// Wait computes how long to sleep before the retry a Verdict allowed.
//
// Three sources are consulted in order of precedence. An explicit wait
// carried by the verdict wins outright. Otherwise, when the policy
// layers honor Retry-After and the failed attempt produced a response
// naming one, the server's guidance is used: an integer value counts
// seconds, any other value is parsed as an HTTP date and converted to
// a duration from now, and an unparseable value is ignored. Otherwise
// the wait is exponential backoff with full jitter, a uniformly random
// duration in [0, base·2^attempt), where attempt is the zero-based
// index of the attempt that just failed.
//
// This order lets server guidance override algorithmic backoff, and an
// explicit per-decision wait override both. Whatever the source, the
// result is clamped to [0, MaxDelay] using the merged MaxDelay knob.
//
// The backoff formula is the "Full Jitter" approach described in:
// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter.
func Wait(e *request.Execution, v Verdict, local, global *Policy) time.Duration {
	limit := maxDelay(local, global)
	if v.HasExplicit {
		return clamp(v.Explicit, limit)
	}
	if honorRetryAfter(local, global) && e.Response != nil {
		if d, ok := retryAfterDelay(e.Response, time.Now()); ok {
			return clamp(d, limit)
		}
	}
	return jitter(e.Attempt, backoffBase(local, global), limit)
}

func clamp(d, limit time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > limit {
		return limit
	}
	return d
}

func retryAfterDelay(resp *http.Response, now time.Time) (time.Duration, bool) {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(h); err == nil {
		return time.Duration(secs) * time.Second, true
	}
	if date, err := http.ParseTime(h); err == nil {
		return date.Sub(now), true
	}
	return 0, false
}

var (
	jitterLock sync.Mutex
	jitterRand = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func jitter(attempt int, base, limit time.Duration) time.Duration {
	exp := int64(1) << attempt
	if exp < 1 {
		exp = 1<<63 - 1
	}

	ceil := int64(base) * exp
	if ceil < int64(base) || int64(limit) < ceil {
		ceil = int64(limit)
	}

	duration := int64(0)
	if ceil > 0 {
		jitterLock.Lock()
		defer jitterLock.Unlock()
		duration = jitterRand.Int63n(ceil)
	}

	return time.Duration(duration)
}
