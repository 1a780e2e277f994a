// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package body

// Progress reports how much of a response body has arrived. Read
// delivers one Progress value to the per-call callback after every
// chunk.
type Progress struct {
	// Loaded is the number of body bytes received so far.
	Loaded int64
	// Total is the expected body length taken from the response's
	// Content-Length, or -1 when the length is unknown.
	Total int64
}

// Percent returns the completed fraction of the download in the range
// [0, 1]. The second return value is false when the total length is
// unknown and no fraction can be computed. A zero-length body counts
// as fully complete.
func (p Progress) Percent() (float64, bool) {
	switch {
	case p.Total < 0:
		return 0, false
	case p.Total == 0:
		return 1, true
	default:
		return float64(p.Loaded) / float64(p.Total), true
	}
}

// A Channel receives download lifecycle signals, typically to drive a
// shared progress indicator. Read calls Start when it begins consuming
// a body, then either Set with the completed fraction or Indeterminate
// after each chunk, and finally Done exactly once, on failure as well
// as success.
//
// Targets that hand the unread body to the caller (TargetStream and
// TargetResponse) never touch the channel.
type Channel interface {
	// Start signals that a body read has begun.
	Start()
	// Set reports the completed fraction of the download, in [0, 1].
	Set(fraction float64)
	// Indeterminate signals activity on a body whose length is
	// unknown. It is called once at the start of such a body and again
	// after each chunk.
	Indeterminate()
	// Done signals that the body read has finished. It is called
	// exactly once per read, regardless of success.
	Done()
}
