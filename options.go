// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/doschge/call/body"
	"github.com/doschge/call/request"
	"github.com/doschge/call/retry"
)

// Options carries the per-call settings of a single Do invocation. The
// zero value (or nil) inherits everything from the client. Fields that
// overlap with client configuration override it for this call only.
type Options struct {
	// Header holds headers applied on top of the client's default
	// headers. A key set here replaces the client's values for that
	// key.
	Header http.Header
	// Query holds query parameters merged into the request URL. A key
	// set here replaces a same-named key already present in the URL.
	Query url.Values
	// Body is the request body: a string, []byte, io.Reader, or
	// io.ReadCloser, sent as-is, or url.Values, sent form-encoded with
	// the matching Content-Type. The body is buffered once before the
	// first attempt and replayed on every retry.
	Body any
	// JSON, when non-nil, is marshaled into the request body with
	// Content-Type application/json. Mutually exclusive with Body and
	// Stream.
	JSON any
	// Stream is a one-shot request body. It is consumed directly by
	// the transport, is never buffered, and makes the call ineligible
	// for retries.
	Stream io.Reader
	// ParseAs selects the target representation of the response body.
	// The default, body.TargetAuto, picks JSON or text from the
	// response's Content-Type.
	ParseAs body.Target
	// Into, when non-nil and the target is JSON, receives the
	// unmarshaled body and becomes the result's Content.
	Into any
	// Timeout bounds each individual attempt. Zero inherits the
	// client's timeout.
	Timeout time.Duration
	// Transform maps the parsed content before the result is built. A
	// Transform error fails the call.
	Transform func(content any) (any, error)
	// OnProgress receives a progress notification after every body
	// chunk of every attempt.
	OnProgress func(p body.Progress)
	// UseProgress opts this call in to the client's shared progress
	// channel.
	UseProgress bool
	// Suppress overrides the client's error suppression setting for
	// this call. Nil inherits.
	Suppress *bool
	// Fields overrides the client's result field selection for this
	// call.
	Fields []string
	// Credentials overrides the client's credentials mode for this
	// call.
	Credentials request.CredentialsMode
	// Token, when non-empty, is used as the bearer token for this call
	// instead of consulting the client's token source.
	Token string
	// Debug lowers the client logger's level to debug for this call.
	Debug bool
	// Handlers is the call's local handler map, consulted before the
	// client's handlers.
	Handlers *HandlerMap
	// Retry is the call's local retry policy, layered over the
	// client's policy.
	Retry *retry.Policy
}

// requestBody materializes the configured body. Exactly one of the
// byte slice and the stream is set when a body is present; contentType
// is non-empty only when the body form implies one.
func (o *Options) requestBody() (b []byte, stream io.Reader, contentType string, err error) {
	set := 0
	if o.Body != nil {
		set++
	}
	if o.JSON != nil {
		set++
	}
	if o.Stream != nil {
		set++
	}
	if set > 1 {
		return nil, nil, "", errors.New("call: conflicting request bodies (set only one of Body, JSON, Stream)")
	}

	switch {
	case o.JSON != nil:
		b, err = json.Marshal(o.JSON)
		if err != nil {
			return nil, nil, "", fmt.Errorf("call: encode json body: %w", err)
		}
		return b, nil, "application/json", nil
	case o.Stream != nil:
		return nil, o.Stream, "", nil
	case o.Body != nil:
		b, err = request.BodyBytes(o.Body)
		if err != nil {
			return nil, nil, "", err
		}
		if _, ok := o.Body.(url.Values); ok {
			return b, nil, "application/x-www-form-urlencoded", nil
		}
		return b, nil, "", nil
	}
	return nil, nil, "", nil
}

// mergedHeader layers the call's headers over the client's defaults.
// Either side may be nil.
func mergedHeader(base, override http.Header) http.Header {
	h := make(http.Header, len(base)+len(override))
	for k, vs := range base {
		h[k] = append([]string(nil), vs...)
	}
	for k, vs := range override {
		h[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	return h
}
