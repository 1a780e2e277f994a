// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package body

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTarget_Name(t *testing.T) {
	expected := []string{"auto", "json", "text", "bytes", "form", "stream", "response"}

	assert.Equal(t, len(expected), numTargets)
	for i, name := range expected {
		target := Target(i)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, target.Name())
			assert.Equal(t, name, target.String())
		})
	}
}

func TestTarget_Resolve(t *testing.T) {
	testCases := []struct {
		name        string
		target      Target
		contentType string
		expected    Target
	}{
		{"auto json", TargetAuto, "application/json", TargetJSON},
		{"auto json charset", TargetAuto, "application/json; charset=utf-8", TargetJSON},
		{"auto json suffix", TargetAuto, "application/vnd.api+json", TargetJSON},
		{"auto html", TargetAuto, "text/html", TargetText},
		{"auto plain", TargetAuto, "text/plain", TargetText},
		{"auto missing", TargetAuto, "", TargetText},
		{"auto malformed", TargetAuto, ";;", TargetText},
		{"explicit json ignores content type", TargetJSON, "text/plain", TargetJSON},
		{"explicit bytes ignores content type", TargetBytes, "application/json", TargetBytes},
		{"explicit form", TargetForm, "application/json", TargetForm},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			resp := &http.Response{Header: http.Header{}}
			if testCase.contentType != "" {
				resp.Header.Set("Content-Type", testCase.contentType)
			}

			assert.Equal(t, testCase.expected, testCase.target.resolve(resp))
		})
	}

	t.Run("auto nil response", func(t *testing.T) {
		assert.Equal(t, TargetText, TargetAuto.resolve(nil))
	})
}
