// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package body

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingChannel struct {
	started       int
	done          int
	indeterminate int
	fractions     []float64
}

func (c *recordingChannel) Start()         { c.started++ }
func (c *recordingChannel) Set(f float64)  { c.fractions = append(c.fractions, f) }
func (c *recordingChannel) Indeterminate() { c.indeterminate++ }
func (c *recordingChannel) Done()          { c.done++ }

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

type failingBody struct {
	calls int
}

func (b *failingBody) Read(p []byte) (int, error) {
	b.calls++
	if b.calls == 1 {
		return copy(p, "partial"), nil
	}
	return 0, errors.New("connection reset")
}

func (b *failingBody) Close() error {
	return nil
}

func newResponse(body, contentType string) *http.Response {
	return &http.Response{
		StatusCode:    200,
		Header:        http.Header{"Content-Type": []string{contentType}},
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}

func TestRead_JSON(t *testing.T) {
	t.Run("generic", func(t *testing.T) {
		resp := newResponse(`{"name":"ham","count":3}`, "application/json")

		content, raw, err := Read(resp, TargetJSON, nil, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "ham", "count": 3.0}, content)
		assert.Equal(t, []byte(`{"name":"ham","count":3}`), raw)
	})
	t.Run("into", func(t *testing.T) {
		var into struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}
		resp := newResponse(`{"name":"ham","count":3}`, "application/json")

		content, _, err := Read(resp, TargetJSON, &into, nil, nil)

		require.NoError(t, err)
		assert.Same(t, &into, content)
		assert.Equal(t, "ham", into.Name)
		assert.Equal(t, 3, into.Count)
	})
}

func TestRead_Text(t *testing.T) {
	resp := newResponse("plain old text", "text/plain")

	content, _, err := Read(resp, TargetText, nil, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "plain old text", content)
}

func TestRead_Bytes(t *testing.T) {
	resp := newResponse("\x00\x01\x02", "application/octet-stream")

	content, _, err := Read(resp, TargetBytes, nil, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2}, content)
}

func TestRead_Form(t *testing.T) {
	t.Run("urlencoded", func(t *testing.T) {
		resp := newResponse("a=1&a=2&b=three", "application/x-www-form-urlencoded")

		content, _, err := Read(resp, TargetForm, nil, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, url.Values{"a": {"1", "2"}, "b": {"three"}}, content)
	})
	t.Run("multipart", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("a", "1"))
		require.NoError(t, w.WriteField("b", "three"))
		fw, err := w.CreateFormFile("upload", "ham.txt")
		require.NoError(t, err)
		_, err = fw.Write([]byte("file contents are skipped"))
		require.NoError(t, err)
		require.NoError(t, w.Close())
		resp := newResponse(buf.String(), w.FormDataContentType())

		content, _, err := Read(resp, TargetForm, nil, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, url.Values{"a": {"1"}, "b": {"three"}}, content)
	})
	t.Run("multipart without boundary", func(t *testing.T) {
		resp := newResponse("irrelevant", "multipart/form-data")

		_, raw, err := Read(resp, TargetForm, nil, nil, nil)

		assert.ErrorContains(t, err, "call/body: decode form")
		assert.Equal(t, []byte("irrelevant"), raw)
	})
}

func TestRead_Auto(t *testing.T) {
	t.Run("json content type", func(t *testing.T) {
		resp := newResponse(`[1,2,3]`, "application/json; charset=utf-8")

		content, _, err := Read(resp, TargetAuto, nil, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, []any{1.0, 2.0, 3.0}, content)
	})
	t.Run("text content type", func(t *testing.T) {
		resp := newResponse(`[1,2,3]`, "text/plain")

		content, _, err := Read(resp, TargetAuto, nil, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, "[1,2,3]", content)
	})
}

func TestRead_Progress(t *testing.T) {
	body := strings.Repeat("x", 70*1024)
	resp := newResponse(body, "text/plain")
	ch := &recordingChannel{}
	var reports []Progress

	content, _, err := Read(resp, TargetText, nil, func(p Progress) {
		reports = append(reports, p)
	}, ch)

	require.NoError(t, err)
	assert.Equal(t, body, content)
	require.Len(t, reports, 3)
	assert.Equal(t, Progress{Loaded: 32768, Total: 71680}, reports[0])
	assert.Equal(t, Progress{Loaded: 65536, Total: 71680}, reports[1])
	assert.Equal(t, Progress{Loaded: 71680, Total: 71680}, reports[2])
	assert.Equal(t, 1, ch.started)
	assert.Equal(t, 1, ch.done)
	assert.Equal(t, 0, ch.indeterminate)
	require.Len(t, ch.fractions, 3)
	assert.InDelta(t, 0.4571, ch.fractions[0], 0.001)
	assert.InDelta(t, 0.9142, ch.fractions[1], 0.001)
	assert.InDelta(t, 1.0, ch.fractions[2], 0.0001)
}

func TestRead_IndeterminateLength(t *testing.T) {
	body := strings.Repeat("y", 40*1024)
	resp := newResponse(body, "text/plain")
	resp.ContentLength = -1
	ch := &recordingChannel{}
	var reports []Progress

	content, _, err := Read(resp, TargetText, nil, func(p Progress) {
		reports = append(reports, p)
	}, ch)

	require.NoError(t, err)
	assert.Equal(t, body, content)
	require.Len(t, reports, 2)
	for _, p := range reports {
		assert.Equal(t, int64(-1), p.Total)
		_, known := p.Percent()
		assert.False(t, known)
	}
	assert.Equal(t, 1, ch.started)
	assert.Equal(t, 1, ch.done)
	assert.Empty(t, ch.fractions)
	// One pulse up front plus one per chunk.
	assert.Equal(t, 3, ch.indeterminate)
}

func TestRead_DoneOnFailure(t *testing.T) {
	t.Run("decode failure", func(t *testing.T) {
		resp := newResponse(`{"truncated":`, "application/json")
		ch := &recordingChannel{}

		content, raw, err := Read(resp, TargetJSON, nil, nil, ch)

		assert.ErrorContains(t, err, "call/body: decode json")
		assert.Nil(t, content)
		assert.Equal(t, []byte(`{"truncated":`), raw)
		assert.Equal(t, 1, ch.started)
		assert.Equal(t, 1, ch.done)
	})
	t.Run("read failure", func(t *testing.T) {
		resp := &http.Response{
			StatusCode:    200,
			Header:        http.Header{},
			Body:          &failingBody{},
			ContentLength: -1,
		}
		ch := &recordingChannel{}

		content, raw, err := Read(resp, TargetText, nil, nil, ch)

		assert.ErrorContains(t, err, "call/body: read response body")
		assert.ErrorContains(t, err, "connection reset")
		assert.Nil(t, content)
		assert.Equal(t, []byte("partial"), raw)
		assert.Equal(t, 1, ch.started)
		assert.Equal(t, 1, ch.done)
	})
	t.Run("empty body json", func(t *testing.T) {
		resp := newResponse("", "application/json")

		_, _, err := Read(resp, TargetJSON, nil, nil, nil)

		assert.ErrorContains(t, err, "call/body: decode json")
	})
}

func TestRead_NoBody(t *testing.T) {
	testCases := []struct {
		name     string
		target   Target
		expected any
	}{
		{"json", TargetJSON, nil},
		{"text", TargetText, ""},
		{"bytes", TargetBytes, []byte(nil)},
		{"form", TargetForm, url.Values(nil)},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			resp := &http.Response{
				StatusCode: 204,
				Header:     http.Header{},
				Body:       http.NoBody,
			}
			ch := &recordingChannel{}

			content, raw, err := Read(resp, testCase.target, nil, nil, ch)

			require.NoError(t, err)
			assert.Equal(t, testCase.expected, content)
			assert.Nil(t, raw)
			assert.Zero(t, ch.started)
			assert.Zero(t, ch.done)
		})
	}

	t.Run("nil response", func(t *testing.T) {
		content, _, err := Read(nil, TargetAuto, nil, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, "", content)
	})
}

func TestRead_Stream(t *testing.T) {
	rec := &closeRecorder{Reader: strings.NewReader("streamed")}
	resp := &http.Response{
		StatusCode:    200,
		Header:        http.Header{},
		Body:          rec,
		ContentLength: 8,
	}
	ch := &recordingChannel{}

	content, raw, err := Read(resp, TargetStream, nil, nil, ch)

	require.NoError(t, err)
	require.Same(t, rec, content)
	assert.Nil(t, raw)
	b, err := io.ReadAll(content.(io.ReadCloser))
	require.NoError(t, err)
	assert.Equal(t, "streamed", string(b))
	assert.False(t, rec.closed)
	assert.Zero(t, ch.started)
	assert.Zero(t, ch.done)
}

func TestRead_Response(t *testing.T) {
	rec := &closeRecorder{Reader: strings.NewReader("raw")}
	resp := &http.Response{
		StatusCode: 200,
		Header:     http.Header{},
		Body:       rec,
	}

	content, raw, err := Read(resp, TargetResponse, nil, nil, nil)

	require.NoError(t, err)
	assert.Same(t, resp, content)
	assert.Nil(t, raw)
	assert.False(t, rec.closed)
}

func TestRead_ClosesBody(t *testing.T) {
	rec := &closeRecorder{Reader: strings.NewReader("drained")}
	resp := &http.Response{
		StatusCode:    200,
		Header:        http.Header{},
		Body:          rec,
		ContentLength: 7,
	}

	_, _, err := Read(resp, TargetText, nil, nil, nil)

	require.NoError(t, err)
	assert.True(t, rec.closed)
}
