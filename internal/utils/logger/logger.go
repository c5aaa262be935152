// internal/utils/logger/logger.go
package logger

import (
	"errors"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zap.Logger with operation helpers.
type Logger struct {
	*zap.Logger
	config *Config
}

// New builds a logger that writes human-readable lines to stderr and JSON lines to a
// rotated file. Stdout is never used: it carries the MCP stdio protocol.
func New(cfg *Config) (*Logger, error) {
	return newWithConsole(cfg, os.Stderr)
}

func newWithConsole(cfg *Config, console io.Writer) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cfg.Development {
		level.SetLevel(zapcore.DebugLevel)
	}
	encCfg := encoderConfig(cfg.Development)

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(console), level),
	}
	if sink := fileSink(cfg); sink != nil {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level))
	}

	return &Logger{
		Logger: zap.New(zapcore.NewTee(cores...),
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
		),
		config: cfg,
	}, nil
}

func encoderConfig(development bool) zapcore.EncoderConfig {
	enc := zap.NewProductionEncoderConfig()
	if development {
		enc = zap.NewDevelopmentEncoderConfig()
	}
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder
	enc.EncodeCaller = zapcore.ShortCallerEncoder
	return enc
}

// fileSink returns the rotated JSON sink, or nil when file logging is disabled.
func fileSink(cfg *Config) zapcore.WriteSyncer {
	if cfg.LogFile == "" {
		return nil
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	})
}

// WithOperation returns a logger tagged with the operation name and a fresh correlation id.
func (l *Logger) WithOperation(operation string) *zap.Logger {
	return WithOperation(l.Logger, operation)
}

// WithOperation is the free-function form used by components that only hold a *zap.Logger.
func WithOperation(base *zap.Logger, operation string) *zap.Logger {
	return base.With(
		zap.String("operation", operation),
		zap.String("correlation_id", uuid.New().String()),
	)
}

// WithComponent adds the component name.
func (l *Logger) WithComponent(component string) *zap.Logger {
	return l.With(zap.String("component", component))
}

// LogError logs err with extra context.
func (l *Logger) LogError(msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.Error(msg, fields...)
}

// Sync flushes buffers. Terminals and pipes reject fsync on stderr with EINVAL or ENOTTY;
// those errors are ignored.
func (l *Logger) Sync() error {
	err := l.Logger.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}

// TrackPerformance logs the duration of an operation at debug level when the returned func runs.
func TrackPerformance(opLogger *zap.Logger, operation string) (end func()) {
	start := time.Now()
	opLogger.Debug("Starting operation", zap.String("operation", operation))

	return func() {
		duration := time.Since(start)
		opLogger.Debug("Operation completed",
			zap.String("operation", operation),
			zap.Duration("duration", duration),
			zap.Float64("duration_ms", float64(duration.Microseconds())/1000),
		)
	}
}
