package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"ProductTrac/internal/config"
	"ProductTrac/internal/productapi"
	"ProductTrac/internal/productview"
	"ProductTrac/internal/web"
	"ProductTrac/pkg/kit"
)

func main() {
	service := "producttrac"

	envErr := godotenv.Load()
	cfg := config.LoadEnv()

	log := kit.NewLogger(service, kit.LogConfig{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	defer func() { _ = log.Sync() }()

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn("load .env failed", zap.Error(envErr))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	clientMetrics := kit.NewClientMetrics(reg)

	api := productapi.NewClient(cfg.Backend.URL,
		productapi.WithTimeout(cfg.Backend.Timeout),
		productapi.WithTransport(clientMetrics.Transport(nil)),
	)
	view := productview.New(api, log.Named("view"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Server.FetchOnStart {
		if err := view.FetchAll(ctx); err != nil {
			log.Warn("initial fetch failed", zap.Error(err))
		}
	}

	s := &web.Server{
		View:    view,
		Backend: api,
		Log:     log,
	}
	h := web.NewHandler(s, web.HTTPDeps{
		Log:             log,
		Service:         service,
		Registry:        reg,
		MetricsEnabled:  cfg.Metrics.Enabled,
		MetricsToken:    cfg.Metrics.Token,
		RateLimitPerMin: cfg.RateLimit.PerMinute,
		TrustedProxies:  cfg.RateLimit.TrustedProxies,
	})

	log.Info("backend configured",
		zap.String("url", cfg.Backend.URL),
		zap.Duration("timeout", cfg.Backend.Timeout),
	)

	if err := kit.RunHTTPServer(ctx, ":"+cfg.Server.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
