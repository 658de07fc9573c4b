// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package trace

import (
	"net/http"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// DecorateHttpRequest injects span into the outgoing request headers.
func DecorateHttpRequest(req *http.Request, span opentracing.Span) *http.Request {
	tracer := opentracing.GlobalTracer()

	ext.SpanKindRPCClient.Set(span)
	ext.HTTPUrl.Set(span, req.URL.String())
	ext.HTTPMethod.Set(span, req.Method)

	tracer.Inject(
		span.Context(),
		opentracing.HTTPHeaders,
		opentracing.HTTPHeadersCarrier(req.Header),
	)

	return req
}

// FromRequest starts a server span, joining the caller's trace when the
// request carries one.
func FromRequest(name string, req *http.Request) opentracing.Span {
	tracer := opentracing.GlobalTracer()

	ctx, err := tracer.Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(req.Header))
	if err != nil {
		return tracer.StartSpan(name)
	}
	return tracer.StartSpan(name, ext.RPCServerOption(ctx))
}
