// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package call provides a request-orchestration layer on top of a
standard HTTP client: deterministic retries across the three failure
channels (network, parse, status), layered outcome handlers, and a
streaming body reader with progress reporting, behind a simple and
familiar interface.

Create a Client to begin making calls.

	client := &call.Client{BaseURL: "https://api.example.com"}
	res, err := client.Get(ctx, "/users/123", nil)
	...
	res, err := client.Post(ctx, "/users", &call.Options{
		JSON: map[string]string{"name": "ham"},
	})

A call's Result carries the parsed content alongside status, headers,
and the final URL:

	res, err := client.Get(ctx, "/users/123", &call.Options{
		ParseAs: body.TargetJSON,
	})
	if err != nil {
		...
	}
	user := res.Content.(map[string]any)

For control over how requests are sent and responses received, use a
custom HTTPDoer. For example, use a GoLang standard HTTP client:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	client := &call.Client{
		HTTPDoer: doer,
	}

For control over retry decisions and timing, install a retry policy
built from selector-keyed decisions (see package retry):

	client := &call.Client{
		RetryPolicy: &retry.Policy{
			Status:     map[string]retry.Decision{"503": retry.Once, "5xx": {Attempts: 2}},
			Network:    retry.Times(3),
			MaxElapsed: 30 * time.Second,
		},
	}

To react to call outcomes, register handlers keyed by status selector
or by one of the special failure events; the most specific registration
wins, and per-call maps outrank the client's:

	handlers := new(call.HandlerMap).
		On("429", call.HandlerFunc(func(e *request.Execution) {
			log.Printf("throttled on attempt %d", e.Attempt)
		})).
		On(call.EventNetworkError, call.HandlerFunc(func(e *request.Execution) {
			log.Printf("network failure: %v", e.Err)
		}))
	client := &call.Client{
		Handlers: handlers,
	}

Package call also provides the Caller interface, implemented by
*Client, for code that issues calls without caring about the concrete
client, and the IdleCloser interface for transports that can drop their
idle connections.
*/
package call
