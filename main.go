package main

import (
	"context"
	"github.com/gorilla/mux"
	"github.com/opentracing/opentracing-go"
	"github.com/osstotalsoft/asanarelay/audit"
	"github.com/osstotalsoft/asanarelay/audit/nats"
	"github.com/osstotalsoft/asanarelay/config"
	"github.com/osstotalsoft/asanarelay/handler"
	"github.com/osstotalsoft/asanarelay/handler/asanaproxy"
	"github.com/osstotalsoft/asanarelay/httputils"
	"github.com/osstotalsoft/asanarelay/log"
	"github.com/osstotalsoft/asanarelay/middleware/cors"
	"github.com/osstotalsoft/asanarelay/relay"
	"github.com/osstotalsoft/asanarelay/tracing"
	"go.uber.org/zap"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		bootstrap, _ := zap.NewProduction()
		bootstrap.Fatal("failed to load configuration", zap.Error(err))
	}

	logger, err := log.NewZapLogger(cfg.LogLevel)
	if err != nil {
		bootstrap, _ := zap.NewProduction()
		bootstrap.Fatal("invalid log level", zap.String("log_level", cfg.LogLevel), zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Tracing.Enabled {
		tracer, closer, err := tracing.NewJaegerTracer(cfg.Tracing.ServiceName, logger)
		if err != nil {
			logger.Fatal("failed to create tracer", zap.Error(err))
		}
		defer closer.Close()
		opentracing.SetGlobalTracer(tracer)
	}

	loggerFactory := tracing.SpanLoggerFactory(logger)

	if cfg.AsanaAPIURL == "" || cfg.AsanaAccessToken == "" {
		logger.Warn("ASANA_API_URL or ASANA_ACCESS_TOKEN is not set, upstream calls will fail")
	}

	publisher := audit.Nop
	auditConfig := nats.Config(cfg.Audit)
	if auditConfig.Enabled() {
		natsPublisher, err := nats.NewPublisher(auditConfig, loggerFactory)
		if err != nil {
			logger.Fatal("failed to connect the audit publisher", zap.Error(err))
		}
		defer func() {
			if err := natsPublisher.Close(); err != nil {
				logger.Error("failed to close the audit publisher", zap.Error(err))
			}
		}()
		publisher = natsPublisher
	}

	client := &http.Client{
		Transport: tracing.NewRoundTripper(http.DefaultTransport),
		Timeout:   cfg.UpstreamTimeout,
	}
	rl := relay.New(relay.Upstream{BaseURL: cfg.AsanaAPIURL, Credential: cfg.AsanaAccessToken}, client, loggerFactory)

	server := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: newHandler(cfg, rl, publisher, loggerFactory),
	}

	go func() {
		logger.Info("Server is running", zap.Int("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server exited unexpectedly", zap.Error(err))
		}
	}()

	waitForShutdown(server, cfg, logger)
}

func newHandler(cfg *config.Config, rl asanaproxy.Relayer, publisher audit.Publisher, loggerFactory log.Factory) http.Handler {
	router := mux.NewRouter()
	router.Handle("/", handler.Health(loggerFactory)).Methods(http.MethodGet)
	router.Handle(asanaproxy.Path, asanaproxy.New(rl, publisher, loggerFactory)).Methods(http.MethodPost)

	return httputils.Compose(
		httputils.RecoveryHandler(loggerFactory),
		cors.CORSFilter(cors.Options(cfg.Cors)),
		tracing.SpanWrapper,
		httputils.RequestID,
	)(router)
}

func waitForShutdown(server *http.Server, cfg *config.Config, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		_ = server.Close()
	}
}
