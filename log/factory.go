package log

import (
	"context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey struct{}

var requestIDKey = contextKey{}

//Factory returns a Logger bound to the request carried by ctx
type Factory func(ctx context.Context) Logger

func ZapLoggerFactory(logger *zap.Logger) Factory {
	return func(ctx context.Context) Logger {
		return zapLogger{logger.With(ContextFields(ctx)...)}
	}
}

//WithRequestID stores the request id into the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

//RequestIDFromContext returns the request id stored by WithRequestID
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

//ContextFields returns the log fields carried by ctx
func ContextFields(ctx context.Context) []zapcore.Field {
	if id, ok := RequestIDFromContext(ctx); ok {
		return []zapcore.Field{zap.String("request_id", id)}
	}
	return nil
}
