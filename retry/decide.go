// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"strings"
	"time"

	"github.com/doschge/call/request"
	"github.com/doschge/call/status"
)

// A Verdict is the answer the retry policy layers give after a failed
// request attempt.
type Verdict struct {
	// Allow reports whether another attempt may be made.
	Allow bool

	// Explicit is the fixed wait the winning decision supplied. It is
	// meaningful only when HasExplicit is true.
	Explicit time.Duration

	// HasExplicit reports whether the winning decision fixed the wait
	// itself, pre-empting both Retry-After guidance and the backoff
	// formula.
	HasExplicit bool
}

// Decide consults the per-call policy layered over the client policy
// after a failed attempt, and reports whether the attempt may be
// retried. Either policy may be nil.
//
// The decision for the attempt's outcome is located first. For a
// status outcome the lookup walks six tiers and stops at the first
// present entry: the local policy's numeric code entry, its symbolic
// name entry, the global policy's code entry, its name entry, the
// local policy's range wildcard, and finally the global policy's range
// wildcard. Network and parse outcomes each have a single slot per
// policy, local consulted before global. Because the lookup stops at
// the first present entry, an explicit zero decision in a near tier
// shadows a permissive one further out.
//
// A located decision still has to clear every gate before Decide
// allows the retry: the decision's attempt budget must not be
// exhausted, the plan's method must be in the merged eligibility list,
// the plan's body must be replayable, and the execution must still be
// inside the merged total time budget. No decision, or any failed
// gate, means no retry.
//
// When the winning decision carries a DelayFunc, Decide evaluates it
// here so the later wait computation stays deterministic. Decide is a
// pure function of its inputs; ruling out retries whose plan context
// has already been cancelled is the client's job.
func Decide(e *request.Execution, local, global *Policy) Verdict {
	d, ok := decisionFor(e, local, global)
	if !ok {
		return Verdict{}
	}
	if e.Attempt >= d.Attempts {
		return Verdict{}
	}
	if !eligibleMethod(e.Plan.Method, local, global) {
		return Verdict{}
	}
	if !e.Plan.Replayable() {
		return Verdict{}
	}
	if budget := maxElapsed(local, global); budget > 0 && e.Duration() >= budget {
		return Verdict{}
	}
	v := Verdict{Allow: true}
	if d.DelayFunc != nil {
		v.Explicit = d.DelayFunc(e.Attempt)
		v.HasExplicit = true
	} else if d.Delay > 0 {
		v.Explicit = d.Delay
		v.HasExplicit = true
	}
	return v
}

func decisionFor(e *request.Execution, local, global *Policy) (Decision, bool) {
	switch e.Outcome {
	case request.OutcomeStatus:
		return statusDecision(e.StatusCode(), local, global)
	case request.OutcomeNetwork:
		return slotDecision(networkSlot(local), networkSlot(global))
	case request.OutcomeParse:
		return slotDecision(parseSlot(local), parseSlot(global))
	default:
		return Decision{}, false
	}
}

func statusDecision(code int, local, global *Policy) (Decision, bool) {
	key, name, wildcard := status.Selectors(code)
	tiers := []struct {
		p        *Policy
		selector string
	}{
		{local, key},
		{local, name},
		{global, key},
		{global, name},
		{local, wildcard},
		{global, wildcard},
	}
	for _, tier := range tiers {
		if tier.p == nil || tier.selector == "" {
			continue
		}
		if d, ok := tier.p.Status[tier.selector]; ok {
			return d, true
		}
	}
	return Decision{}, false
}

func slotDecision(local, global *Decision) (Decision, bool) {
	if local != nil {
		return *local, true
	}
	if global != nil {
		return *global, true
	}
	return Decision{}, false
}

func networkSlot(p *Policy) *Decision {
	if p == nil {
		return nil
	}
	return p.Network
}

func parseSlot(p *Policy) *Decision {
	if p == nil {
		return nil
	}
	return p.Parse
}

func eligibleMethod(method string, local, global *Policy) bool {
	if method == "" {
		method = "GET"
	}
	for _, m := range methods(local, global) {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}
