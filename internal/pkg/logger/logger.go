package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

var global = func() *zap.SugaredLogger {
	l, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	return l.Sugar()
}()

// WithRequestID stores a request id that every log line for this request
// will carry.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

func fromCtx(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if requestID, ok := ctx.Value(ctxKey{}).(string); ok {
			return global.With("request_id", requestID)
		}
	}
	return global
}

func Sync() {
	_ = global.Sync()
}

func Info(ctx context.Context, args ...interface{}) {
	fromCtx(ctx).Info(args...)
}

func Infof(ctx context.Context, template string, args ...interface{}) {
	fromCtx(ctx).Infof(template, args...)
}

func Warn(ctx context.Context, args ...interface{}) {
	fromCtx(ctx).Warn(args...)
}

func Warnf(ctx context.Context, template string, args ...interface{}) {
	fromCtx(ctx).Warnf(template, args...)
}

func Error(ctx context.Context, args ...interface{}) {
	fromCtx(ctx).Error(args...)
}

func Errorf(ctx context.Context, template string, args ...interface{}) {
	fromCtx(ctx).Errorf(template, args...)
}

func Fatal(ctx context.Context, args ...interface{}) {
	fromCtx(ctx).Fatal(args...)
}
