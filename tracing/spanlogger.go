package tracing

import (
	"context"
	"github.com/opentracing/opentracing-go"
	tag "github.com/opentracing/opentracing-go/ext"
	otlog "github.com/opentracing/opentracing-go/log"
	"github.com/osstotalsoft/asanarelay/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"sort"
)

//SpanLoggerFactory is a wrapper over zap.Logger with OpenTracing.
//Every line logged while a span is active is also recorded on the span.
func SpanLoggerFactory(logger *zap.Logger) log.Factory {
	plain := log.ZapLoggerFactory(logger)
	return func(ctx context.Context) log.Logger {
		if ctx != nil {
			if span := opentracing.SpanFromContext(ctx); span != nil {
				return spanLogger{logger: plain(ctx), span: span}
			}
		}
		return plain(ctx)
	}
}

type spanLogger struct {
	logger log.Logger
	span   opentracing.Span
}

func (sl spanLogger) Info(msg string, fields ...zapcore.Field) {
	sl.logToSpan("info", msg, fields...)
	sl.logger.Info(msg, fields...)
}

func (sl spanLogger) Error(msg string, fields ...zapcore.Field) {
	sl.logToSpan("error", msg, fields...)
	tag.Error.Set(sl.span, true)
	sl.logger.Error(msg, fields...)
}

func (sl spanLogger) Debug(msg string, fields ...zapcore.Field) {
	sl.logToSpan("debug", msg, fields...)
	sl.logger.Debug(msg, fields...)
}

func (sl spanLogger) Warn(msg string, fields ...zapcore.Field) {
	sl.logToSpan("warn", msg, fields...)
	sl.logger.Warn(msg, fields...)
}

func (sl spanLogger) Fatal(msg string, fields ...zapcore.Field) {
	sl.logToSpan("fatal", msg, fields...)
	tag.Error.Set(sl.span, true)
	sl.logger.Fatal(msg, fields...)
}

func (sl spanLogger) With(fields ...zapcore.Field) log.Logger {
	return spanLogger{logger: sl.logger.With(fields...), span: sl.span}
}

func (sl spanLogger) logToSpan(level string, msg string, fields ...zapcore.Field) {
	enc := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		field.AddTo(enc)
	}

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	otFields := make([]otlog.Field, 0, 2+len(keys))
	otFields = append(otFields, otlog.String("event", msg), otlog.String("level", level))
	for _, k := range keys {
		otFields = append(otFields, otlog.Object(k, enc.Fields[k]))
	}
	sl.span.LogFields(otFields...)
}
