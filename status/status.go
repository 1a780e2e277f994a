// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package status

import (
	"net/http"
	"strconv"
	"strings"
)

// nameToCode indexes every symbolic name produced by Name back to its
// status code. It is built once at package load from the standard
// library's status text table.
var nameToCode = make(map[string]int)

func init() {
	for code := 100; code <= 599; code++ {
		if name := Name(code); name != "" {
			nameToCode[name] = code
		}
	}
}

// Name returns the symbolic name of an HTTP status code: the standard
// reason phrase lowercased with separators collapsed to underscores.
// For example Name(404) is "not_found" and Name(505) is
// "http_version_not_supported". If the code has no standard reason
// phrase, Name returns the empty string.
func Name(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	pendingSep := false
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
			fallthrough
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == ' ' || r == '-':
			pendingSep = true
		}
	}
	return b.String()
}

// Code returns the status code for a symbolic name produced by Name,
// for example Code("not_found") returns (404, true). The second return
// value is false if the name is not a known symbolic status name.
func Code(name string) (int, bool) {
	code, ok := nameToCode[name]
	return code, ok
}

// Range returns the hundred-range wildcard selector covering an HTTP
// status code, for example Range(503) is "5xx". Codes outside the
// valid 100-599 range produce the empty string.
func Range(code int) string {
	h := code / 100
	if h < 1 || h > 5 {
		return ""
	}
	return string([]byte{byte('0' + h), 'x', 'x'})
}

// Key returns the numeric selector form of an HTTP status code, i.e.
// its decimal string representation.
func Key(code int) string {
	return strconv.Itoa(code)
}

// Selectors returns the three selector forms of a status code in
// decreasing specificity: the numeric key, the symbolic name, and the
// range wildcard. Name and wildcard may be empty for nonstandard or
// out-of-range codes.
func Selectors(code int) (key, name, wildcard string) {
	return Key(code), Name(code), Range(code)
}

// IsSuccess reports whether an HTTP status code counts as success for
// call orchestration purposes, namely any code in the 2xx range.
func IsSuccess(code int) bool {
	return code >= 200 && code <= 299
}

// ValidSelector reports whether s is a well-formed status selector: a
// numeric code between 100 and 599, a known symbolic name, or a range
// wildcard between "1xx" and "5xx".
func ValidSelector(s string) bool {
	if code, err := strconv.Atoi(s); err == nil {
		return code >= 100 && code <= 599
	}
	if len(s) == 3 && s[0] >= '1' && s[0] <= '5' && s[1:] == "xx" {
		return true
	}
	_, ok := nameToCode[s]
	return ok
}
