// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package status tags HTTP status codes with the selector forms used
// by the call library's handler maps and retry policies: the numeric
// key ("404"), the symbolic name ("not_found"), and the hundred-range
// wildcard ("4xx").
//
// Package status depends only on the standard library, so it brings no
// extra dependencies when imported on its own.
package status
