package serverfx

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/joeydtaylor/steeze-students/pkg/codec"
	"github.com/joeydtaylor/steeze-students/pkg/config"
	"github.com/joeydtaylor/steeze-students/pkg/core"
	"github.com/joeydtaylor/steeze-students/pkg/electrician"
	"github.com/joeydtaylor/steeze-students/pkg/middleware/logger"
	"github.com/joeydtaylor/steeze-students/pkg/middleware/metrics"
	"github.com/joeydtaylor/steeze-students/pkg/repository"
	"github.com/joeydtaylor/steeze-students/pkg/transport/httpx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ---- Config ----

type loadedConfig struct {
	fx.Out
	Config config.Config
	Source configSource
}

type configSource struct {
	Path  string
	Found bool
}

func provideConfig(o Options) (loadedConfig, error) {
	path := envOr(o.ConfigEnv, o.DefaultConfig)
	cfg, found, err := config.LoadOrDefault(path)
	if err != nil {
		return loadedConfig{}, err
	}
	if v := os.Getenv(o.ListenAddrEnv); v != "" {
		cfg.Server.Listen = v
	}
	return loadedConfig{Config: cfg, Source: configSource{Path: path, Found: found}}, nil
}

func provideLoggerOptions(cfg config.Config) logger.Options {
	return logger.Options{Dir: cfg.Log.Dir}
}

// ---- Domain ----

func provideStore(cfg config.Config) (*repository.Students, error) {
	s := repository.NewStudents(cfg.Store.SeedCount)
	if err := metrics.RegisterStoreGauge(s.Len); err != nil {
		return nil, err
	}
	return s, nil
}

func provideCodec(cfg config.Config) (codec.StudentCodec, error) {
	df, err := cfg.DateFormat()
	if err != nil {
		return codec.StudentCodec{}, err
	}
	return codec.NewStudentCodec(df), nil
}

// ---- electrician.RelayClient -> core.RelayClient adapter ----

type relayAdapter struct {
	inner electrician.RelayClient
}

func (a relayAdapter) Publish(ctx context.Context, rr core.RelayRequest) error {
	return a.inner.Publish(ctx, electrician.RelayRequest{
		Topic: rr.Topic,
		Body:  rr.Body,
	})
}

// provideRelay builds the relay for the configured topic and stops it with the app.
func provideRelay(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (core.RelayClient, error) {
	ec, err := electrician.NewRelayFromEnv(cfg.Relay.Topic)
	if err != nil {
		return nil, err
	}
	if electrician.IsNoop(ec) {
		log.Info("student events disabled", zap.String("reason", "ELECTRICIAN_TARGET unset"))
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			log.Info("relay stopping", zap.String("topic", cfg.Relay.Topic))
			return ec.Close()
		},
	})
	return relayAdapter{inner: ec}, nil
}

func provideDispatcher(cfg config.Config, s *repository.Students, c codec.StudentCodec, rel core.RelayClient, log *zap.Logger) *core.Dispatcher {
	return core.NewDispatcher(s, c,
		core.WithLogger(log),
		core.WithEvents(core.RelayPublisher{Relay: rel, Topic: cfg.Relay.Topic}),
	)
}

// ---- Router ----

type routerDeps struct {
	fx.In

	Config     config.Config
	Dispatcher *core.Dispatcher
	LogMW      *logger.Middleware
	Metrics    http.Handler `name:"metrics"`
	R          httpx.Router
}

func provideRouter(d routerDeps) http.Handler {
	metrics.SetPathNormalizer(core.MetricsPath)
	return core.BuildRouter(core.BuildDeps{
		Dispatcher:     d.Dispatcher,
		LogMW:          d.LogMW,
		Metrics:        d.Metrics,
		Router:         d.R,
		RequestTimeout: d.Config.RequestTimeout(),
	})
}

// ---- Server lifecycle ----

type serverDeps struct {
	fx.In
	Opts   Options
	Config config.Config
	Source configSource
	Logger *zap.Logger
	App    http.Handler `name:"app"`
}

func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS13, MaxVersion: tls.VersionTLS13},
	}
}

func registerHooks(lc fx.Lifecycle, d serverDeps) {
	addr := d.Config.Server.Listen
	cert := os.Getenv(d.Opts.TLSCertEnv)
	key := os.Getenv(d.Opts.TLSKeyEnv)

	srv := newServer(addr, d.App)
	useTLS := fileExists(cert) && fileExists(key)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			d.Logger.Info("config loaded",
				zap.String("path", d.Source.Path),
				zap.Bool("found", d.Source.Found),
				zap.Int("seedCount", d.Config.Store.SeedCount),
				zap.String("dateFormat", d.Config.Codec.DateFormat),
			)

			if useTLS {
				d.Logger.Info("server starting (TLS)",
					zap.String("service", d.Config.Server.Service),
					zap.String("addr", addr),
					zap.String("cert", cert),
				)
				go func() {
					if err := srv.ListenAndServeTLS(cert, key); err != nil && !errors.Is(err, http.ErrServerClosed) {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
				return nil
			}

			d.Logger.Info("server starting (PLAINTEXT)",
				zap.String("service", d.Config.Server.Service),
				zap.String("addr", addr),
			)
			srv.TLSConfig = nil
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					d.Logger.Fatal("server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Logger.Info("server stopping", zap.String("service", d.Config.Server.Service))
			return srv.Shutdown(ctx)
		},
	})
}

// ---- helpers ----

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
