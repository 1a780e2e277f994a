// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package body

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
)

// chunkSize is the read granularity of the accumulation loop and
// therefore the resolution of progress reporting.
const chunkSize = 32 * 1024

// Read consumes the response body according to the target
// representation and returns the decoded value along with the raw
// bytes it accumulated.
//
// TargetStream and TargetResponse return the unread body, or the raw
// response, without reading, closing, or reporting progress; the
// caller owns the body from then on and no raw bytes are returned.
// Every other target drains the body in fixed-size chunks, closes it,
// and decodes the accumulated bytes once the stream has ended. After
// each chunk the per-call onProgress callback receives a Progress
// value and the channel, when non-nil, receives the completed
// fraction, or an Indeterminate pulse when the response declares no
// length. The channel's Done hook runs exactly once per read, even
// when reading or decoding fails.
//
// For TargetJSON a non-nil into receives the unmarshaled value and is
// returned; otherwise the JSON decodes into the generic any shape.
// Responses without a body yield the zero value of the target and emit
// no progress at all.
//
// On failure the raw bytes survive: a mid-body read error returns the
// prefix that arrived before it, and a decode error returns the
// complete body that would not decode.
func Read(resp *http.Response, t Target, into any, onProgress func(Progress), ch Channel) (any, []byte, error) {
	switch t {
	case TargetResponse:
		return resp, nil, nil
	case TargetStream:
		if resp == nil {
			return nil, nil, nil
		}
		return resp.Body, nil, nil
	}

	t = t.resolve(resp)
	if resp == nil || resp.Body == nil || resp.Body == http.NoBody {
		return zeroValue(t), nil, nil
	}

	defer resp.Body.Close()
	if ch != nil {
		ch.Start()
		defer ch.Done()
	}

	total := resp.ContentLength
	if ch != nil && total < 0 {
		ch.Indeterminate()
	}

	var buf bytes.Buffer
	chunk := make([]byte, chunkSize)
	var loaded int64
	for {
		n, err := resp.Body.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			loaded += int64(n)
			p := Progress{Loaded: loaded, Total: total}
			if onProgress != nil {
				onProgress(p)
			}
			if ch != nil {
				if fraction, ok := p.Percent(); ok {
					ch.Set(fraction)
				} else {
					ch.Indeterminate()
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, buf.Bytes(), fmt.Errorf("call/body: read response body: %w", err)
		}
	}

	content, err := decode(buf.Bytes(), t, into, resp.Header.Get("Content-Type"))
	return content, buf.Bytes(), err
}

func decode(b []byte, t Target, into any, contentType string) (any, error) {
	switch t {
	case TargetBytes:
		return b, nil
	case TargetText:
		return string(b), nil
	case TargetJSON:
		if into != nil {
			if err := json.Unmarshal(b, into); err != nil {
				return nil, fmt.Errorf("call/body: decode json: %w", err)
			}
			return into, nil
		}
		var v any
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, fmt.Errorf("call/body: decode json: %w", err)
		}
		return v, nil
	case TargetForm:
		v, err := formValues(b, contentType)
		if err != nil {
			return nil, fmt.Errorf("call/body: decode form: %w", err)
		}
		return v, nil
	}
	panic(fmt.Sprintf("call/body: unresolved target %s", t))
}

// formValues decodes form fields from either a multipart or an
// urlencoded body. File parts of a multipart body are skipped; only
// plain fields land in the result.
func formValues(b []byte, contentType string) (url.Values, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err == nil && mediaType == "multipart/form-data" {
		boundary := params["boundary"]
		if boundary == "" {
			return nil, fmt.Errorf("multipart body without boundary")
		}
		values := url.Values{}
		mr := multipart.NewReader(bytes.NewReader(b), boundary)
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				return values, nil
			}
			if err != nil {
				return nil, err
			}
			name := part.FormName()
			if name == "" || part.FileName() != "" {
				continue
			}
			value, err := io.ReadAll(part)
			if err != nil {
				return nil, err
			}
			values.Add(name, string(value))
		}
	}
	return url.ParseQuery(string(b))
}

func zeroValue(t Target) any {
	switch t {
	case TargetText:
		return ""
	case TargetBytes:
		return []byte(nil)
	case TargetForm:
		return url.Values(nil)
	}
	return nil
}
