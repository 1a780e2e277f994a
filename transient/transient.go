// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"syscall"
)

// A Category is the transience category of an error from the network
// channel of a call, as reported by Categorize.
//
// The category Not means a retry after this error is very unlikely to
// succeed. Every other category marks the error as transient: a retry
// has some prospect of succeeding.
type Category int

const (
	// Not indicates any non-transient error.
	Not Category = iota
	// Timeout indicates a client-side timeout, either on one attempt
	// or on the whole call. Categorize returns Timeout if the error or
	// any wrapped cause has a Timeout method reporting true.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (POSIX ECONNREFUSED). Refusal is classified transient because it
	// commonly happens while the remote service is restarting and not
	// yet listening on its port.
	ConnRefused
	// ConnReset indicates the remote host reset an active connection
	// (POSIX ECONNRESET), which tends to happen when a service is
	// taken down mid-response or a load balancer rotates its targets.
	// A retry after a reset has a high probability of success.
	ConnReset
)

// Categorize returns the transience category of err. A nil error, and
// any error that is not transient from the perspective of completing a
// call, both produce Not.
//
// Categorize inspects the whole wrapped cause chain, not just err
// itself. It never consults a Temporary method, whose semantics are
// too loose to act on.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Not
}

// IsTimeout reports whether Categorize classifies err as a timeout.
func IsTimeout(err error) bool {
	return Categorize(err) == Timeout
}

var categoryNames = []string{
	"not_transient",
	"timeout",
	"connection_refused",
	"connection_reset",
}

// Name returns the name of the category.
func (c Category) Name() string {
	return categoryNames[int(c)]
}

// String returns the name of the category.
func (c Category) String() string {
	return c.Name()
}

type hasTimeout interface {
	Timeout() bool
}
