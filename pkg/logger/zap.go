// Package logger wraps zap behind the ports.Logger contract. Outer
// layers format with printf-style calls; structured fields stay a zap
// concern at the call sites that need them via Base/Sugared.
package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/Sardaar2003/fortigatex-sub001/pkg/ctxmeta"
)

type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

// NewZapLogger builds a dev or prod logger plus a cleanup func that
// flushes buffered entries.
func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, nil, err
	}

	loggerWrap := &ZapLogger{
		base:   logger,
		sugar:  logger.Sugar(),
		isProd: isProd,
	}

	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
}

// withMeta prefixes the message with the request id when present, so
// every line of one request can be correlated without structured
// logging in the hot path.
func (z *ZapLogger) withMeta(ctx context.Context, format string) string {
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		return "rid=" + rid + " " + format
	}
	return format
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.sugar.Infof(z.withMeta(ctx, format), args...)
}

func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.sugar.Warnf(z.withMeta(ctx, format), args...)
}

func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.sugar.Errorf(z.withMeta(ctx, format), args...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }
