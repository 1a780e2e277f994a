// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	testCases := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			"status failure",
			&Error{Message: "unexpected status 503 Service Unavailable", Status: 503, URL: "https://api.example.com/users", Method: "GET"},
			"call: GET https://api.example.com/users: unexpected status 503 Service Unavailable",
		},
		{
			"network failure with cause",
			&Error{Message: "request failed", URL: "https://api.example.com", Method: "POST", Cause: errors.New("dial tcp: connection refused")},
			"call: POST https://api.example.com: request failed: dial tcp: connection refused",
		},
		{
			"bare message",
			&Error{Message: "invalid url"},
			"call: invalid url",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.EqualError(t, testCase.err, testCase.expected)
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("outer: %w", context.DeadlineExceeded)
	err := &Error{Message: "request failed", Cause: cause}

	assert.Same(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestError_Timeout(t *testing.T) {
	t.Run("deadline exceeded", func(t *testing.T) {
		err := &Error{Message: "request failed", Cause: fmt.Errorf("attempt: %w", context.DeadlineExceeded)}
		assert.True(t, err.Timeout())
	})
	t.Run("ordinary cause", func(t *testing.T) {
		err := &Error{Message: "request failed", Cause: errors.New("connection refused")}
		assert.False(t, err.Timeout())
	})
	t.Run("no cause", func(t *testing.T) {
		err := &Error{Message: "unexpected status 503 Service Unavailable", Status: 503}
		assert.False(t, err.Timeout())
	})
}

func TestError_MarshalJSON(t *testing.T) {
	err := &Error{
		Message: "request failed",
		Status:  502,
		URL:     "https://api.example.com/users",
		Method:  "GET",
		Cause:   errors.New("upstream hiccup"),
	}

	b, marshalErr := json.Marshal(err)

	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{
		"message": "request failed",
		"status": 502,
		"url": "https://api.example.com/users",
		"method": "GET",
		"cause": "upstream hiccup"
	}`, string(b))

	t.Run("omits empty fields", func(t *testing.T) {
		b, marshalErr := json.Marshal(&Error{Message: "invalid url"})

		require.NoError(t, marshalErr)
		assert.JSONEq(t, `{"message": "invalid url"}`, string(b))
	})
}
