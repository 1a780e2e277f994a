// Copyright 2026 The call Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package call

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/doschge/call/auth"
	"github.com/doschge/call/body"
	"github.com/doschge/call/request"
	"github.com/doschge/call/retry"
	"github.com/doschge/call/status"
	"github.com/doschge/call/transient"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// A Client orchestrates HTTP calls: it builds the request from
// client-wide defaults plus per-call options, drives the attempt/retry
// loop across the three failure channels (network, parse, status),
// dispatches outcome handlers, and reads the response body into the
// requested target representation with progress accounting. Its zero
// value is a valid configuration.
//
// The zero value client uses http.DefaultClient (from net/http) as the
// HTTPDoer, retry.DefaultPolicy as the retry policy, no per-attempt
// timeout, no handlers, and a silent logger.
//
// Client's HTTPDoer typically has internal state (cached TCP
// connections) so Client instances should be reused instead of created
// as needed. Client is safe for concurrent use by multiple goroutines;
// all per-call state lives in the call's own request.Execution. The
// only state shared across calls is the token source, whose
// last-write-wins contract is documented in package auth.
//
// A Client is higher-level than an HTTPDoer. The HTTPDoer is
// responsible for all details of sending one HTTP request and
// receiving its response, redirects included, while Client builds on
// top of the HTTPDoer's feature set. On top of it, Client adds URL
// assembly from a base URL and query parameters, default headers and
// bearer-token attachment, per-attempt timeouts, retries with
// backoff/Retry-After delays, outcome handler dispatch, body decoding
// with progress, and result shaping with field selection and error
// suppression.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard
	// net/http package is used.
	HTTPDoer HTTPDoer
	// BaseURL, when non-empty, is joined with every relative call URL.
	// Absolute call URLs pass through untouched.
	BaseURL string
	// Origin, when non-empty, resolves rooted call URLs ("/users")
	// when no BaseURL is set.
	Origin string
	// Header holds default headers applied to every call. Per-call
	// headers replace same-named keys.
	Header http.Header
	// Timeout bounds each individual request attempt, not the whole
	// call. Zero means no per-attempt timeout. The timeout does not
	// apply to calls whose target hands the raw body to the caller
	// (body.TargetStream, body.TargetResponse); bound those with the
	// caller's context instead.
	Timeout time.Duration
	// RetryPolicy decides when failed attempts are retried and how
	// long to wait in between. A per-call policy is layered over it.
	//
	// If RetryPolicy is nil, retry.DefaultPolicy is used. Install
	// retry.Never to disable retries.
	RetryPolicy *retry.Policy
	// Handlers is the client-wide handler map, consulted after a
	// call's local map.
	Handlers *HandlerMap
	// Progress is the shared progress channel. Calls opt in via
	// Options.UseProgress.
	Progress body.Channel
	// Suppress folds failures into a Result with OK false instead of
	// returning an error. Per-call Options.Suppress overrides it.
	Suppress bool
	// Fields selects which Result fields calls populate by default.
	// Empty keeps every field.
	Fields []string
	// Credentials is the default credentials mode recorded on every
	// request for transport implementations that honor it.
	Credentials request.CredentialsMode
	// TokenSource supplies the bearer token attached to calls that do
	// not already carry an Authorization header. Nil attaches nothing.
	TokenSource auth.Source
	// Logger receives the client's structured log events. The zero
	// value discards everything; set Options.Debug to lower the level
	// to debug for a single call.
	Logger zerolog.Logger
}

// Do executes one logical HTTP call: at most one request per attempt,
// with retries governed by the layered retry policy, and returns the
// shaped Result.
//
// The url may be absolute, or relative to the client's BaseURL or
// Origin. Options may be nil. The context covers the whole call
// including retry sleeps; canceling it aborts the in-flight attempt
// and forbids further retries.
//
// On failure Do returns a *Error describing the final attempt, unless
// error suppression is enabled, in which case the failure is folded
// into the returned Result and the error is nil.
func (c *Client) Do(ctx context.Context, method, url string, opts *Options) (Result, error) {
	if ctx == nil {
		panic("call: nil context")
	}
	if opts == nil {
		opts = &Options{}
	}
	logger := c.callLogger(opts)
	id := uuid.NewString()
	logger = logger.With().Str("call", id).Logger()

	u, err := request.BuildURL(c.BaseURL, url, opts.Query, c.Origin)
	if err != nil {
		return c.abort("invalid url", url, method, err, opts, logger)
	}

	b, stream, contentType, err := opts.requestBody()
	if err != nil {
		return c.abort("invalid request body", u.String(), method, err, opts, logger)
	}

	p, err := request.NewPlanWithContext(ctx, method, u.String(), b)
	if err != nil {
		return c.abort("invalid request", u.String(), method, err, opts, logger)
	}
	p.Stream = stream
	if opts.Credentials != "" {
		p.Credentials = opts.Credentials
	} else {
		p.Credentials = c.Credentials
	}

	header := mergedHeader(c.Header, opts.Header)
	if contentType != "" && header.Get("Content-Type") == "" {
		header.Set("Content-Type", contentType)
	}
	token := opts.Token
	if token == "" && c.TokenSource != nil {
		token, err = c.TokenSource.Token(ctx)
		if err != nil {
			return c.abort("credential source failed", u.String(), p.Method, err, opts, logger)
		}
	}
	if token != "" && header.Get("Authorization") == "" {
		header.Set("Authorization", auth.Bearer(token))
	}
	p.Header = header

	return c.run(id, p, opts, logger)
}

func (c *Client) run(id string, p *request.Plan, opts *Options, logger zerolog.Logger) (Result, error) {
	doer := c.doer()
	local, global := opts.Retry, c.retryPolicy()
	target := opts.ParseAs
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = c.Timeout
	}
	var ch body.Channel
	if opts.UseProgress {
		ch = c.Progress
	}

	e := request.Execution{ID: id, Plan: p}
	e.Start = time.Now()
	logger.Debug().Str("method", p.Method).Str("url", p.URL.String()).Stringer("target", target).Msg("call started")

	for {
		c.attempt(&e, doer, target, opts, ch, timeout, logger)
		if e.Timeout() {
			e.AttemptTimeouts++
		}

		v := retry.Decide(&e, local, global)
		retrying := v.Allow && p.Context().Err() == nil
		c.dispatch(&e, retrying, opts.Handlers, logger)
		if !retrying {
			break
		}

		wait := retry.Wait(&e, v, local, global)
		logger.Debug().Int("attempt", e.Attempt).Dur("wait", wait).Stringer("outcome", e.Outcome).Msg("retry scheduled")
		if !sleep(p.Context(), wait) {
			break
		}
		// The sleep may have consumed the rest of the elapsed-time
		// budget.
		if again := retry.Decide(&e, local, global); !again.Allow {
			logger.Debug().Int("attempt", e.Attempt).Msg("retry abandoned after wait")
			break
		}

		c.discard(&e, target)
		e.Response = nil
		e.Err = nil
		e.Body = nil
		e.Content = nil
		e.Outcome = request.OutcomePending
		e.Attempt++
	}

	e.End = time.Now()
	return c.finalize(&e, opts, logger)
}

// attempt performs one transport round trip and classifies its
// outcome on e.
func (c *Client) attempt(e *request.Execution, doer HTTPDoer, target body.Target, opts *Options, ch body.Channel, timeout time.Duration, logger zerolog.Logger) {
	p := e.Plan
	ctx := p.Context()
	if timeout > 0 && target != body.TargetStream && target != body.TargetResponse {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	e.Request = p.ToRequest(ctx)
	logger.Debug().Int("attempt", e.Attempt).Msg("attempt started")
	resp, err := doer.Do(e.Request)
	if err != nil {
		e.Err = urlErrorWrap(p, err)
		e.Outcome = request.OutcomeNetwork
		logger.Debug().Int("attempt", e.Attempt).Err(e.Err).Stringer("transience", transient.Categorize(e.Err)).Msg("attempt failed")
		return
	}

	e.Response = resp
	content, raw, err := body.Read(resp, target, opts.Into, opts.OnProgress, ch)
	e.Body = raw
	if err != nil {
		e.Err = err
		e.Outcome = request.OutcomeParse
		logger.Debug().Int("attempt", e.Attempt).Int("status", resp.StatusCode).Err(err).Msg("response body unusable")
		return
	}
	e.Content = content
	if status.IsSuccess(resp.StatusCode) {
		e.Outcome = request.OutcomeSuccess
	} else {
		e.Outcome = request.OutcomeStatus
	}
	logger.Debug().Int("attempt", e.Attempt).Int("status", resp.StatusCode).Stringer("outcome", e.Outcome).Msg("attempt completed")
}

// dispatch resolves and fires the handler for the attempt's outcome.
// retrying reports whether the orchestrator will retry this outcome,
// which terminal-only maps use to hold their fire.
func (c *Client) dispatch(e *request.Execution, retrying bool, local *HandlerMap, logger zerolog.Logger) {
	var res resolution
	var ok bool
	switch e.Outcome {
	case request.OutcomeNetwork:
		res, ok = resolveEvent(EventNetworkError, local, c.Handlers)
	case request.OutcomeParse:
		res, ok = resolveEvent(EventParseError, local, c.Handlers)
	case request.OutcomeStatus, request.OutcomeSuccess:
		if e.Response != nil {
			res, ok = resolveStatus(e.Response.StatusCode, local, c.Handlers)
		}
	}
	if !ok || (res.terminalOnly && retrying) {
		return
	}
	fire(res.handler, e, logger)
}

func fire(h Handler, e *request.Execution, logger zerolog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Int("attempt", e.Attempt).Interface("panic", r).Msg("handler panic recovered")
		}
	}()
	h.Handle(e)
}

// discard closes a response body the attempt left unconsumed. Buffered
// targets drain and close inside body.Read; only the raw stream and
// response targets can leave an open body behind when a retry throws
// the response away.
func (c *Client) discard(e *request.Execution, target body.Target) {
	if e.Response == nil || e.Response.Body == nil {
		return
	}
	if target == body.TargetStream || target == body.TargetResponse {
		_ = e.Response.Body.Close()
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (c *Client) finalize(e *request.Execution, opts *Options, logger zerolog.Logger) (Result, error) {
	if e.Outcome == request.OutcomeSuccess {
		content := e.Content
		if opts.Transform != nil {
			mapped, err := opts.Transform(content)
			if err != nil {
				return c.failure(c.result(e), c.newError(e, "response transform failed", err), opts, logger)
			}
			content = mapped
		}
		r := c.result(e)
		r.Content = content
		r.OK = true
		logger.Debug().Int("attempts", e.Attempt+1).Int("timeouts", e.AttemptTimeouts).Dur("elapsed", e.Duration()).Int("status", r.Status).Msg("call succeeded")
		return r.Select(c.fields(opts)...), nil
	}
	return c.failure(c.result(e), c.errorFor(e), opts, logger)
}

func (c *Client) errorFor(e *request.Execution) *Error {
	switch e.Outcome {
	case request.OutcomeNetwork:
		return c.newError(e, "request failed", e.Err)
	case request.OutcomeParse:
		return c.newError(e, "cannot parse response body", e.Err)
	case request.OutcomeStatus:
		return c.newError(e, "unexpected status "+statusLine(e.Response), nil)
	}
	return c.newError(e, "call aborted", e.Err)
}

func (c *Client) newError(e *request.Execution, message string, cause error) *Error {
	err := &Error{
		Message:  message,
		URL:      e.Plan.URL.String(),
		Method:   e.Plan.Method,
		Content:  e.Content,
		Response: e.Response,
		Cause:    cause,
	}
	if e.Response != nil {
		err.Status = e.Response.StatusCode
		if loc := finalURL(e.Response); loc != "" {
			err.URL = loc
		}
	}
	return err
}

// abort fails a call whose first attempt never went out.
func (c *Client) abort(message, url, method string, cause error, opts *Options, logger zerolog.Logger) (Result, error) {
	callErr := &Error{Message: message, URL: url, Method: method, Cause: cause}
	return c.failure(Result{URL: url, Method: method}, callErr, opts, logger)
}

// failure finishes a failed call: either folds the error into the base
// Result (suppression) or returns it. The folded Result keeps the
// failing response's parsed content alongside the error.
func (c *Client) failure(r Result, callErr *Error, opts *Options, logger zerolog.Logger) (Result, error) {
	suppress := c.Suppress
	if opts.Suppress != nil {
		suppress = *opts.Suppress
	}
	logger.Debug().Err(callErr).Bool("suppressed", suppress).Msg("call failed")
	if !suppress {
		return Result{}, callErr
	}
	r.Content = callErr.Content
	r.Err = callErr
	return r.Select(c.fields(opts)...), nil
}

func (c *Client) result(e *request.Execution) Result {
	r := Result{
		Method: e.Plan.Method,
		URL:    e.Plan.URL.String(),
	}
	if resp := e.Response; resp != nil {
		r.Status = resp.StatusCode
		r.StatusText = statusText(resp)
		r.Headers = resp.Header
		if loc := finalURL(resp); loc != "" {
			r.Redirected = loc != r.URL
			r.URL = loc
		}
	}
	return r
}

// finalURL is the URL of the last request the transport sent, which
// differs from the plan URL when redirects were followed.
func finalURL(resp *http.Response) string {
	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.String()
	}
	return ""
}

func statusText(resp *http.Response) string {
	s := resp.Status
	prefix := strconv.Itoa(resp.StatusCode)
	if strings.HasPrefix(s, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(s, prefix))
	}
	if s != "" {
		return s
	}
	return http.StatusText(resp.StatusCode)
}

func statusLine(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return strconv.Itoa(resp.StatusCode) + " " + http.StatusText(resp.StatusCode)
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do.
func (c *Client) Get(ctx context.Context, url string, opts *Options) (Result, error) {
	return c.Do(ctx, http.MethodGet, url, opts)
}

// Head issues a HEAD to the specified URL, using the same policies
// followed by Do.
func (c *Client) Head(ctx context.Context, url string, opts *Options) (Result, error) {
	return c.Do(ctx, http.MethodHead, url, opts)
}

// Post issues a POST to the specified URL, using the same policies
// followed by Do.
func (c *Client) Post(ctx context.Context, url string, opts *Options) (Result, error) {
	return c.Do(ctx, http.MethodPost, url, opts)
}

// Put issues a PUT to the specified URL, using the same policies
// followed by Do.
func (c *Client) Put(ctx context.Context, url string, opts *Options) (Result, error) {
	return c.Do(ctx, http.MethodPut, url, opts)
}

// Patch issues a PATCH to the specified URL, using the same policies
// followed by Do.
func (c *Client) Patch(ctx context.Context, url string, opts *Options) (Result, error) {
	return c.Do(ctx, http.MethodPatch, url, opts)
}

// Delete issues a DELETE to the specified URL, using the same policies
// followed by Do.
func (c *Client) Delete(ctx context.Context, url string, opts *Options) (Result, error) {
	return c.Do(ctx, http.MethodDelete, url, opts)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	if ic, ok := c.doer().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}
	return c.HTTPDoer
}

func (c *Client) retryPolicy() *retry.Policy {
	if c.RetryPolicy == nil {
		return retry.DefaultPolicy
	}
	return c.RetryPolicy
}

func (c *Client) fields(opts *Options) []string {
	if len(opts.Fields) > 0 {
		return opts.Fields
	}
	return c.Fields
}

func (c *Client) callLogger(opts *Options) zerolog.Logger {
	logger := c.Logger
	if opts.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	}
	return logger
}

func urlErrorWrap(p *request.Plan, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(p.Method),
		URL: p.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
