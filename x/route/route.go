// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	moovhttp "github.com/moov-io/base/http"
	"github.com/moov-io/base/idempotent"
	"github.com/moov-io/base/idempotent/lru"
	opentracing "github.com/opentracing/opentracing-go"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	IdempotentRecorder = lru.New()

	// Prometheus Metrics
	Histogram = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Name: "http_response_duration_seconds",
		Help: "Histogram representing the http response durations",
	}, []string{"route"})
)

type Responder struct {
	XRequestID string

	logger log.Logger

	request *http.Request
	span    opentracing.Span

	writer *moovhttp.ResponseWriter
	err    error
}

func NewResponder(logger log.Logger, w http.ResponseWriter, r *http.Request) *Responder {
	resp := &Responder{
		XRequestID: moovhttp.GetRequestID(r),
		logger:     logger,
		request:    r,
	}
	resp.span = resp.Span()
	writer, err := wrapResponseWriter(logger, w, r)
	resp.writer = writer
	if err != nil {
		// the response was already written
		resp.err = err
		resp.finishSpan()
	}
	return resp
}

// Err returns a non-nil error when the request was answered while creating
// the Responder, for example a replayed X-Idempotency-Key. Handlers must
// stop processing in that case.
func (r *Responder) Err() error {
	if r == nil {
		return nil
	}
	return r.err
}

func (r *Responder) Log(kvpairs ...interface{}) {
	if r == nil || r.logger == nil {
		return
	}
	var args = []interface{}{
		"requestID", r.XRequestID,
	}
	args = append(args, kvpairs...)
	r.logger.Log(args...)
}

// Respond writes the JSON content type and hands the wrapped writer to fn.
func (r *Responder) Respond(fn func(http.ResponseWriter)) {
	if r == nil {
		return
	}
	r.finishSpan()
	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	fn(r.writer)
}

// JSON writes status and the JSON encoding of v.
func (r *Responder) JSON(status int, v interface{}) {
	r.Respond(func(w http.ResponseWriter) {
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(v); err != nil {
			r.Log("route", fmt.Sprintf("problem encoding %T: %v", v, err))
		}
	})
}

func (r *Responder) Problem(err error) {
	if r == nil {
		return
	}
	r.finishSpan()
	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	moovhttp.Problem(r.writer, err)
}

func (r *Responder) finishSpan() {
	if r == nil || r.span == nil {
		return
	}
	r.span.Finish()
	r.span = nil
}

func wrapResponseWriter(logger log.Logger, w http.ResponseWriter, r *http.Request) (*moovhttp.ResponseWriter, error) {
	name := fmt.Sprintf("%s-%s", strings.ToLower(r.Method), CleanPath(r.URL.Path))
	ww := moovhttp.Wrap(logger, Histogram.With("route", name), w, r)

	if _, seen := idempotent.FromRequest(r, IdempotentRecorder); seen {
		idempotent.SeenBefore(ww)
		return ww, idempotent.ErrSeenBefore
	}

	return ww, nil
}

var accountIDRegex = regexp.MustCompile(`^[A-Z]-[0-9]{4}$`)

// CleanPath takes a URL path and formats it for Prometheus metrics
//
// This method replaces /'s with -'s and strips out account identifiers from URL path slugs.
func CleanPath(path string) string {
	parts := strings.Split(path, "/")
	var out []string
	for i := range parts {
		if parts[i] == "" || accountIDRegex.MatchString(parts[i]) {
			continue
		}
		out = append(out, parts[i])
	}
	return strings.Join(out, "-")
}
