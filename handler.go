// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"github.com/doschge/call/request"
	"github.com/doschge/call/status"
)

// Selectors for the two failure events that carry no HTTP status. All
// other selectors are status selectors: a numeric code ("503"), a
// symbolic name ("service_unavailable"), or a range wildcard ("5xx").
const (
	EventNetworkError = "network_error"
	EventParseError   = "parse_error"
)

// A Handler reacts to the outcome of a request attempt. The client
// invokes at most one handler per attempt, chosen by the precedence
// rules documented on HandlerMap, and passes it the live execution
// state.
//
// A panic inside a handler is recovered and logged; it never alters
// the outcome of the call.
type Handler interface {
	Handle(e *request.Execution)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as handlers. If f is a function with the appropriate
// signature, HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(e *request.Execution)

// Handle calls f(e).
func (f HandlerFunc) Handle(e *request.Execution) {
	f(e)
}

// A HandlerMap maps outcome selectors to handlers. Maps can be
// installed on a Client (global) and overridden per call (local); for
// a status outcome the lookup tiers are, most specific first: local
// code, local name, global code, global name, local wildcard, global
// wildcard. The first registered entry wins and later tiers are never
// consulted. The special events EventNetworkError and EventParseError
// know only two tiers, local then global.
//
// The zero value is an empty map ready for registration via On.
type HandlerMap struct {
	// TerminalOnly restricts every handler in this map to the terminal
	// attempt: a handler fires only when the current outcome will not
	// be retried. When false, handlers fire on every attempt,
	// including attempts that are about to be retried.
	TerminalOnly bool

	handlers map[string]Handler
}

// On registers h for the given selector, replacing any handler
// registered for it earlier, and returns m to allow chaining. It
// panics if h is nil or the selector is neither a valid status
// selector nor one of the special event names.
func (m *HandlerMap) On(selector string, h Handler) *HandlerMap {
	if h == nil {
		panic("call: nil handler")
	}
	if !validSelector(selector) {
		panic("call: invalid handler selector: " + selector)
	}
	if m.handlers == nil {
		m.handlers = make(map[string]Handler)
	}
	m.handlers[selector] = h
	return m
}

func validSelector(s string) bool {
	return s == EventNetworkError || s == EventParseError || status.ValidSelector(s)
}

func (m *HandlerMap) handler(selector string) (Handler, bool) {
	if m == nil || m.handlers == nil {
		return nil, false
	}
	h, ok := m.handlers[selector]
	return h, ok
}

// A resolution is the winning handler of a lookup together with the
// firing restriction of the map that supplied it.
type resolution struct {
	handler      Handler
	terminalOnly bool
}

func resolveStatus(code int, local, global *HandlerMap) (resolution, bool) {
	key, name, wildcard := status.Selectors(code)
	tiers := []struct {
		m        *HandlerMap
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
		if tier.selector == "" {
			continue
		}
		if h, ok := tier.m.handler(tier.selector); ok {
			return resolution{handler: h, terminalOnly: tier.m.TerminalOnly}, true
		}
	}
	return resolution{}, false
}

func resolveEvent(event string, local, global *HandlerMap) (resolution, bool) {
	for _, m := range []*HandlerMap{local, global} {
		if h, ok := m.handler(event); ok {
			return resolution{handler: h, terminalOnly: m.TerminalOnly}, true
		}
	}
	return resolution{}, false
}
