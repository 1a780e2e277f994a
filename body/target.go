// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package body

import (
	"mime"
	"net/http"
	"strings"
)

// A Target names the representation a response body should be read
// into.
type Target int

const (
	// TargetAuto picks TargetJSON or TargetText by inspecting the
	// response's Content-Type: a JSON media type (application/json or
	// any +json suffix) reads as JSON, everything else as text.
	TargetAuto Target = iota
	// TargetJSON accumulates the whole body and unmarshals it as JSON,
	// either into the caller's value or into the generic any shape.
	TargetJSON
	// TargetText accumulates the whole body and yields it as a string.
	TargetText
	// TargetBytes accumulates the whole body and yields the raw bytes.
	TargetBytes
	// TargetForm accumulates the whole body and decodes it as form
	// fields, urlencoded or multipart, yielding url.Values.
	TargetForm
	// TargetStream yields the unread response body as an
	// io.ReadCloser. The caller takes over reading and closing; no
	// progress accounting happens.
	TargetStream
	// TargetResponse yields the raw *http.Response with its body
	// untouched. Like TargetStream it bypasses reading, progress, and
	// closing entirely.
	TargetResponse
	// targetSentinel provides the total number of targets typed as a
	// Target.
	targetSentinel

	// numTargets provides the total number of targets as an int.
	numTargets = int(targetSentinel)
)

var targetNames = []string{
	"auto",
	"json",
	"text",
	"bytes",
	"form",
	"stream",
	"response",
}

// Name returns the name of the target.
func (t Target) Name() string {
	return targetNames[int(t)]
}

// String returns the name of the target.
func (t Target) String() string {
	return t.Name()
}

// resolve collapses TargetAuto to a concrete target by sniffing the
// response's declared content type. Any other target resolves to
// itself.
func (t Target) resolve(resp *http.Response) Target {
	if t != TargetAuto {
		return t
	}
	if resp != nil && jsonContentType(resp.Header.Get("Content-Type")) {
		return TargetJSON
	}
	return TargetText
}

func jsonContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
