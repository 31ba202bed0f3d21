package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKey struct{}

// WithLogger stores logger in ctx. Later LoggerFromContext calls, the Log
// helpers and RequestLogger all build on it.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext returns the logger stored by WithLogger or RequestLogger,
// else the process logger.
func LoggerFromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return Logger()
}

func LogDebug(ctx context.Context, msg string, fields ...zap.Field) {
	emit(ctx, zapcore.DebugLevel, msg, nil, fields)
}

func LogInfo(ctx context.Context, msg string, fields ...zap.Field) {
	emit(ctx, zapcore.InfoLevel, msg, nil, fields)
}

func LogWarn(ctx context.Context, msg string, fields ...zap.Field) {
	emit(ctx, zapcore.WarnLevel, msg, nil, fields)
}

// LogError attaches err as the "error" field when non-nil.
func LogError(ctx context.Context, msg string, err error, fields ...zap.Field) {
	emit(ctx, zapcore.ErrorLevel, msg, err, fields)
}

// LogFatal writes the entry and exits the process.
func LogFatal(ctx context.Context, msg string, err error, fields ...zap.Field) {
	emit(ctx, zapcore.FatalLevel, msg, err, fields)
}

// emit goes through Check so disabled levels cost no field encoding; one
// caller skip keeps the reported caller at the Log* call site.
func emit(ctx context.Context, lvl zapcore.Level, msg string, err error, fields []zap.Field) {
	ce := LoggerFromContext(ctx).WithOptions(zap.AddCallerSkip(2)).Check(lvl, msg)
	if ce == nil {
		return
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	ce.Write(fields...)
}
