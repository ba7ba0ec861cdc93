package logger

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Options locate the log files.
type Options struct {
	Dir string
}

func ProvideLogger(o Options) *zap.Logger { return NewLog(o.Dir, "system.log") }

func ProvideLoggerMiddleware(o Options) *Middleware {
	return NewMiddleware(NewLog(o.Dir, "http-access.log"))
}

var Module = fx.Options(
	fx.Provide(ProvideLoggerMiddleware),
	fx.Provide(ProvideLogger),
)
