// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	urlpkg "net/url"
	"strings"
)

// BuildURL assembles the absolute URL for a request plan from the four
// ingredients a caller may supply.
//
// If ref is already absolute it passes through untouched and base and
// origin play no part. Otherwise ref joins base with exactly one slash
// between them, regardless of how many trailing or leading slashes the
// two carry; with no base, a ref starting with "/" resolves against
// origin instead. A scheme-relative ref ("//host/path") adopts the
// scheme of base or origin, falling back to https.
//
// The values in query are merged into the assembled URL's query string
// with percent encoding. A query key replaces any same-named parameter
// already present in ref; other parameters survive the merge.
func BuildURL(base, ref string, query urlpkg.Values, origin string) (*urlpkg.URL, error) {
	u, err := urlpkg.Parse(ref)
	if err != nil {
		return nil, err
	}
	switch {
	case u.IsAbs():
	case u.Host != "":
		u.Scheme = schemeOf(base, origin)
	case base != "":
		u, err = join(base, ref)
	case origin != "" && strings.HasPrefix(ref, "/"):
		u, err = join(origin, ref)
	default:
		err = fmt.Errorf("call/request: relative url %q without base or origin", ref)
	}
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			q[k] = vs
		}
		u.RawQuery = q.Encode()
	}
	return u, nil
}

func join(base, ref string) (*urlpkg.URL, error) {
	s := strings.TrimRight(base, "/")
	if ref != "" {
		s += "/" + strings.TrimLeft(ref, "/")
	}
	u, err := urlpkg.Parse(s)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("call/request: url %q is not absolute", s)
	}
	return u, nil
}

func schemeOf(base, origin string) string {
	for _, s := range []string{base, origin} {
		if u, err := urlpkg.Parse(s); err == nil && u.Scheme != "" {
			return u.Scheme
		}
	}
	return "https"
}
