package serverfx

import (
	"github.com/joeydtaylor/steeze-students/pkg/bundlefx"
	"github.com/joeydtaylor/steeze-students/pkg/transport/httpx"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Options allow per-deployment env keys/defaults without code changes.
type Options struct {
	ConfigEnv     string // e.g. "STUDENTS_CONFIG"
	DefaultConfig string // e.g. "students.toml"
	ListenAddrEnv string // e.g. "SERVER_LISTEN_ADDRESS"
	TLSCertEnv    string // e.g. "SSL_SERVER_CERTIFICATE"
	TLSKeyEnv     string // e.g. "SSL_SERVER_KEY"
}

func DefaultOptions() Options {
	return Options{
		ConfigEnv:     "STUDENTS_CONFIG",
		DefaultConfig: "students.toml",
		ListenAddrEnv: "SERVER_LISTEN_ADDRESS",
		TLSCertEnv:    "SSL_SERVER_CERTIFICATE",
		TLSKeyEnv:     "SSL_SERVER_KEY",
	}
}

// Module returns the complete Fx option set for the students service.
func Module(opts Options) fx.Option {
	return fx.Options(
		fx.Supply(opts),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger { return &fxevent.ZapLogger{Logger: l} }),

		// Config, and what the middleware bundle needs from it.
		fx.Provide(provideConfig, provideLoggerOptions),
		bundlefx.Module,

		// Domain
		fx.Provide(provideStore, provideCodec, provideRelay, provideDispatcher),

		// Router implementation
		fx.Provide(httpx.NewChi),

		// Router (named "app")
		fx.Provide(fx.Annotate(provideRouter, fx.ResultTags(`name:"app"`))),

		// App lifecycle
		fx.Invoke(registerHooks),
	)
}
