// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package trace

import (
	"fmt"
	"io"

	"github.com/go-kit/kit/log"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegermetrics "github.com/uber/jaeger-lib/metrics/prometheus"
)

// NewConstantTracer returns an opentracer.Tracer from Jaeger that always records spans for recording.
//
// This method uses the opentracing singleton and Prometheus DefaultRegisterer singleton.
func NewConstantTracer(logger log.Logger, serviceName string) (opentracing.Tracer, io.Closer, error) {
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1.0,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans: true,
		},
	}
	return setupTracer(logger, cfg)
}

// NewProbabilisticTracer returns an opentracer.Tracer from Jaeger that records approximately
// the given percentage of spans for recording.
func NewProbabilisticTracer(logger log.Logger, serviceName string, rate float64) (opentracing.Tracer, io.Closer, error) {
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeProbabilistic,
			Param: rate,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans: true,
		},
	}
	return setupTracer(logger, cfg)
}

var (
	// wrappedPrometheusRegisterer is a singleton so we only register opentracing metrics once
	wrappedPrometheusRegisterer = jaegermetrics.New(jaegermetrics.WithRegisterer(prometheus.DefaultRegisterer))
)

func setupTracer(logger log.Logger, cfg jaegercfg.Configuration) (opentracing.Tracer, io.Closer, error) {
	tracer, closer, err := cfg.NewTracer(
		jaegercfg.Logger(&jaegerLogger{inner: logger}),
		jaegercfg.Metrics(wrappedPrometheusRegisterer),
	)
	if err != nil {
		return nil, nil, err
	}

	opentracing.SetGlobalTracer(tracer)

	return tracer, closer, nil
}

var _ jaeger.Logger = (*jaegerLogger)(nil)

// adapter for jaeger.Logger
type jaegerLogger struct {
	inner log.Logger
}

func (l *jaegerLogger) Error(msg string) {
	l.inner.Log("tracing", msg, "level", "error")
}

func (l *jaegerLogger) Infof(msg string, args ...interface{}) {
	l.inner.Log("tracing", fmt.Sprintf(msg, args...))
}
