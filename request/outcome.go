// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

// An Outcome classifies how the most recent request attempt of an
// execution concluded. The client assigns it after every attempt, and
// both the retry engine and the handler dispatch logic key off it, so
// a failed attempt never travels through the code as a control-flow
// exception.
type Outcome int

const (
	// OutcomePending indicates that no request attempt has concluded
	// yet. It is the zero value, present only between the start of an
	// execution and the end of its first attempt.
	OutcomePending Outcome = iota
	// OutcomeSuccess indicates the attempt produced a response with a
	// 2xx status code and a successfully read body.
	OutcomeSuccess
	// OutcomeNetwork indicates the attempt failed before a response
	// was available: connection errors, timeouts, and cancellation all
	// land here.
	OutcomeNetwork
	// OutcomeParse indicates a response arrived but its body could not
	// be read or decoded into the requested representation.
	OutcomeParse
	// OutcomeStatus indicates a response arrived and was read cleanly,
	// but carried a non-2xx status code.
	OutcomeStatus
	// outcomeSentinel provides the total number of outcomes typed as
	// an Outcome.
	outcomeSentinel

	// numOutcomes provides the total number of outcomes as an int.
	numOutcomes = int(outcomeSentinel)
)

var outcomeNames = []string{
	"pending",
	"success",
	"network_error",
	"parse_error",
	"status",
}

// Outcomes returns a slice containing every outcome an execution can
// report.
func Outcomes() []Outcome {
	return []Outcome{
		OutcomePending,
		OutcomeSuccess,
		OutcomeNetwork,
		OutcomeParse,
		OutcomeStatus,
	}
}

// Name returns the name of the outcome.
func (o Outcome) Name() string {
	return outcomeNames[int(o)]
}

// String returns the name of the outcome.
func (o Outcome) String() string {
	return o.Name()
}
