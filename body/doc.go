// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package body reads HTTP response bodies into caller-chosen
// representations while reporting download progress.
//
// Read drains a response in fixed-size chunks and decodes the result
// as JSON, text, raw bytes, or form fields, or hands the unread body
// straight back for streaming use. Each chunk feeds an optional
// per-call Progress callback and an optional shared Channel, so a
// progress bar can track any download regardless of its target
// representation. Decoding happens only after the stream has ended,
// which keeps multi-byte sequences intact no matter where chunk
// boundaries fall.
package body
