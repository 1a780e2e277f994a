// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/doschge/call/transient"
)

// An Error describes a failed call. Depending on the failure channel
// some fields are unset: a network failure has no Status, Content, or
// Response, and a failure before the first attempt has neither a
// Status nor a Cause from the transport.
//
// With error suppression enabled the same value is delivered inside
// Result.Err instead of being returned as an error.
type Error struct {
	// Message is a short human-readable description of the failure.
	Message string
	// Status is the HTTP status code of the final attempt, or 0 when
	// no response was received.
	Status int
	// URL is the requested URL.
	URL string
	// Method is the HTTP method of the request.
	Method string
	// Content is the parsed response body of the final attempt, in the
	// requested target representation. A status failure whose body was
	// read cleanly carries the server's error payload here; it is nil
	// when no response arrived or its body could not be parsed.
	Content any
	// Response is the final attempt's response, if one was received.
	// Its body has already been consumed unless the call asked for a
	// stream or raw response target.
	Response *http.Response
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("call: ")
	if e.Method != "" {
		b.WriteString(e.Method)
		b.WriteByte(' ')
	}
	if e.URL != "" {
		b.WriteString(e.URL)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause, allowing errors.Is and
// errors.As to see through the call error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Timeout indicates whether the failure was caused by a timeout.
func (e *Error) Timeout() bool {
	return transient.IsTimeout(e.Cause)
}

// MarshalJSON renders the error with its cause flattened to a string,
// so suppressed failures serialize inside a Result. Content and
// Response stay out of the wire shape; a suppressed Result carries the
// content at top level.
func (e *Error) MarshalJSON() ([]byte, error) {
	shape := struct {
		Message string `json:"message"`
		Status  int    `json:"status,omitempty"`
		URL     string `json:"url,omitempty"`
		Method  string `json:"method,omitempty"`
		Cause   string `json:"cause,omitempty"`
	}{
		Message: e.Message,
		Status:  e.Status,
		URL:     e.URL,
		Method:  e.Method,
	}
	if e.Cause != nil {
		shape.Cause = e.Cause.Error()
	}
	return json.Marshal(shape)
}
