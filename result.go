// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"net/http"
)

// Field names accepted by Result.Select and by the Fields settings on
// Client and Options.
const (
	FieldContent    = "content"
	FieldStatus     = "status"
	FieldStatusText = "statusText"
	FieldHeaders    = "headers"
	FieldURL        = "url"
	FieldOK         = "ok"
	FieldRedirected = "redirected"
	FieldMethod     = "method"
	FieldError      = "error"
)

// A Result is the outcome of a completed call. On success OK is true
// and Content holds the parsed body in the requested target
// representation. With error suppression enabled a failed call also
// produces a Result, with OK false, Err describing the failure, and
// Content still carrying the parsed body when the failing response had
// a readable one.
type Result struct {
	// Content is the parsed response body: a decoded JSON value (or
	// the caller's Into value), a string, a []byte, url.Values, an
	// io.ReadCloser, or the raw *http.Response, depending on the
	// target representation.
	Content any `json:"content,omitempty"`
	// Status is the HTTP status code of the final response.
	Status int `json:"status,omitempty"`
	// StatusText is the reason phrase of the final response.
	StatusText string `json:"statusText,omitempty"`
	// Headers holds the final response headers.
	Headers http.Header `json:"headers,omitempty"`
	// URL is the final URL, after any redirects the transport
	// followed.
	URL string `json:"url,omitempty"`
	// OK reports whether the call succeeded.
	OK bool `json:"ok"`
	// Redirected reports whether the final URL differs from the
	// requested one.
	Redirected bool `json:"redirected"`
	// Method is the HTTP method of the call.
	Method string `json:"method,omitempty"`
	// Err describes the failure of a suppressed call. It is nil when
	// OK is true.
	Err *Error `json:"error,omitempty"`
}

// Select returns a copy of r containing only the named fields, leaving
// every other field at its zero value. With no fields it returns r
// unchanged. Unknown names select nothing.
func (r Result) Select(fields ...string) Result {
	if len(fields) == 0 {
		return r
	}
	var out Result
	for _, f := range fields {
		switch f {
		case FieldContent:
			out.Content = r.Content
		case FieldStatus:
			out.Status = r.Status
		case FieldStatusText:
			out.StatusText = r.StatusText
		case FieldHeaders:
			out.Headers = r.Headers
		case FieldURL:
			out.URL = r.URL
		case FieldOK:
			out.OK = r.OK
		case FieldRedirected:
			out.Redirected = r.Redirected
		case FieldMethod:
			out.Method = r.Method
		case FieldError:
			out.Err = r.Err
		}
	}
	return out
}
