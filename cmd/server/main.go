// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moov-io/base/admin"
	"github.com/moov-io/billing/internal/version"
	"github.com/moov-io/billing/pkg/accounts"
	"github.com/moov-io/billing/pkg/config"
	cfgadmin "github.com/moov-io/billing/pkg/config/admin"
	"github.com/moov-io/billing/pkg/events"
	"github.com/moov-io/billing/pkg/payments"
	"github.com/moov-io/billing/pkg/stream"
	"github.com/moov-io/billing/pkg/util"
	"github.com/moov-io/billing/x/route"
	"github.com/moov-io/billing/x/trace"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
	"gocloud.dev/pubsub"
)

var (
	flagConfigFile = flag.String("config", "", "Filepath for config file to load")
	flagLogFormat  = flag.String("log.format", "", "Format for log lines (Options: json, plain")
)

func main() {
	flag.Parse()

	configFilepath := util.Or(os.Getenv("CONFIG_FILE"), *flagConfigFile)
	cfg, err := config.LoadConfig(configFilepath, flagLogFormat)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	cfg.Logger.Log("startup", fmt.Sprintf("Starting billing server version %s", version.Version))

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	// Listen for application termination.
	errs := make(chan error)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	// Spin up admin HTTP server
	adminServer := admin.NewServer(cfg.Admin.BindAddress)
	adminServer.AddVersionHandler(version.Version) // Setup 'GET /version'
	cfgadmin.RegisterRoutes(adminServer, cfg)
	go func() {
		cfg.Logger.Log("admin", fmt.Sprintf("listening on %s", adminServer.BindAddr()))
		if err := adminServer.Listen(); err != nil {
			err = fmt.Errorf("problem starting admin http: %v", err)
			cfg.Logger.Log("admin", err)
			errs <- err
		}
	}()
	defer adminServer.Shutdown()

	tracer := setupTracing(cfg)
	if tracer != nil {
		defer tracer.Close()
	}

	topic, err := setupTopic(ctx, cfg)
	if err != nil {
		panic(fmt.Sprintf("problem opening events topic: %v", err))
	}
	if topic != nil {
		defer topic.Shutdown(context.Background())
	}
	emitter := events.NewEmitter(cfg.Logger, topic)

	accountRepo := accounts.NewInMemoryRepository(accounts.Seed())

	processor, err := setupProcessor(cfg, accountRepo, emitter)
	if err != nil {
		panic(fmt.Sprintf("problem creating payment processor: %v", err))
	}

	handler := setupRouter(cfg, accountRepo, processor)

	// Create main HTTP server
	serve := &http.Server{
		Addr:         cfg.Http.BindAddress,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	shutdownServer := func() {
		if err := serve.Shutdown(context.TODO()); err != nil {
			cfg.Logger.Log("shutdown", err)
		}
	}
	defer shutdownServer()

	// Start main HTTP server
	go func() {
		if certFile, keyFile := os.Getenv("HTTPS_CERT_FILE"), os.Getenv("HTTPS_KEY_FILE"); certFile != "" && keyFile != "" {
			cfg.Logger.Log("startup", fmt.Sprintf("binding to %s for secure HTTP server", cfg.Http.BindAddress))
			if err := serve.ListenAndServeTLS(certFile, keyFile); err != nil {
				cfg.Logger.Log("exit", err)
			}
		} else {
			cfg.Logger.Log("startup", fmt.Sprintf("binding to %s for HTTP server", cfg.Http.BindAddress))
			if err := serve.ListenAndServe(); err != nil {
				cfg.Logger.Log("exit", err)
			}
		}
	}()

	if err := <-errs; err != nil {
		cfg.Logger.Log("exit", err)
	}
}

func setupTracing(cfg *config.Config) io.Closer {
	if !cfg.Tracing.Enabled {
		return nil
	}

	var closer io.Closer
	var err error
	if cfg.Tracing.SampleRate >= 1.0 {
		_, closer, err = trace.NewConstantTracer(cfg.Logger, cfg.Tracing.ServiceName)
	} else {
		_, closer, err = trace.NewProbabilisticTracer(cfg.Logger, cfg.Tracing.ServiceName, cfg.Tracing.SampleRate)
	}
	if err != nil {
		panic(fmt.Sprintf("problem creating tracer: %v", err))
	}
	cfg.Logger.Log("tracing", fmt.Sprintf("sending %s spans", cfg.Tracing.ServiceName))
	return closer
}

func setupTopic(ctx context.Context, cfg *config.Config) (*pubsub.Topic, error) {
	if cfg.Events.Disabled {
		cfg.Logger.Log("events", "payment events are disabled")
		return nil, nil
	}
	return stream.OpenTopic(ctx, cfg.Events.Stream)
}

func setupProcessor(cfg *config.Config, repo accounts.Repository, emitter events.Emitter) (payments.Processor, error) {
	ids, err := payments.NewTransactionIDs(cfg.Payments.TransactionIDs)
	if err != nil {
		return nil, err
	}
	processor := payments.NewProcessor(cfg.Logger, repo, ids, emitter, payments.Options{
		Delay: cfg.Payments.ProcessingDelay,
	})
	return payments.Chain(processor,
		payments.LoggingMiddleware(log.With(cfg.Logger, "component", "payments")),
		payments.InstrumentingMiddleware(),
	), nil
}

func setupRouter(cfg *config.Config, repo accounts.Repository, processor payments.Processor) *mux.Router {
	handler := mux.NewRouter()
	route.PingRoute(cfg.Logger, handler)

	accounts.NewRouter(cfg.Logger, repo, cfg.Accounts.ListDelay).RegisterRoutes(handler)
	payments.NewRouter(cfg.Logger, processor).RegisterRoutes(handler)

	return handler
}
