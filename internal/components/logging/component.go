package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/VanGog06-SoftUni/ToDAI/internal/core"
)

// LoggerComponent wraps a zap logger behind the component lifecycle
// so the rest of the container can depend on it by name.
type LoggerComponent struct {
	*core.BaseComponent
	config *LoggingConfig
	logger *zap.Logger
	writer *intervalRotatingWriter
}

func NewLoggerComponent(name string, cfg *LoggingConfig) *LoggerComponent {
	return &LoggerComponent{
		BaseComponent: core.NewBaseComponent(name),
		config:        cfg,
	}
}

func (l *LoggerComponent) Start(ctx context.Context) error {
	if l.config == nil || !l.config.Enabled {
		l.logger = zap.NewNop()
		l.SetActive(true)
		return nil
	}

	encoder, err := l.buildEncoder()
	if err != nil {
		return fmt.Errorf("build log encoder: %w", err)
	}
	syncer, err := l.buildWriteSyncer()
	if err != nil {
		return fmt.Errorf("build log writer: %w", err)
	}
	level, err := parseLevel(l.config.Level)
	if err != nil {
		return err
	}

	core := zapcore.NewCore(encoder, syncer, level)
	l.logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	SetGlobalLogger(l)
	l.SetActive(true)
	return nil
}

func (l *LoggerComponent) Stop(ctx context.Context) error {
	if l.logger != nil {
		_ = l.logger.Sync()
	}
	if l.writer != nil {
		_ = l.writer.Close()
	}
	l.SetActive(false)
	return nil
}

func (l *LoggerComponent) HealthCheck() error {
	if !l.IsActive() {
		return fmt.Errorf("logger component not active")
	}
	return nil
}

func (l *LoggerComponent) buildEncoder() (zapcore.Encoder, error) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	encCfg.EncodeDuration = zapcore.StringDurationEncoder

	switch strings.ToLower(l.config.Format) {
	case "", "json":
		return zapcore.NewJSONEncoder(encCfg), nil
	case "console":
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encCfg), nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s", l.config.Format)
	}
}

func (l *LoggerComponent) buildWriteSyncer() (zapcore.WriteSyncer, error) {
	switch strings.ToLower(l.config.Output) {
	case "", "stdout":
		return zapcore.AddSync(os.Stdout), nil
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil
	case "file":
		return l.buildFileSyncer()
	default:
		// treat as a literal file path
		lj := &lumberjack.Logger{
			Filename:   l.config.Output,
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   true,
		}
		return zapcore.AddSync(lj), nil
	}
}

func (l *LoggerComponent) buildFileSyncer() (zapcore.WriteSyncer, error) {
	fc := l.config.FileConfig
	if fc == nil || fc.Dir == "" || fc.Filename == "" {
		return nil, fmt.Errorf("file output requires file_config.dir and file_config.filename")
	}
	if err := os.MkdirAll(fc.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", fc.Dir, err)
	}

	if rc := l.config.RotateConfig; rc != nil && rc.Enabled {
		w, err := newIntervalRotatingWriter(fc.Dir, fc.Filename, rc)
		if err != nil {
			return nil, err
		}
		l.writer = w
		return zapcore.AddSync(w), nil
	}

	lj := &lumberjack.Logger{
		Filename:   filepath.Join(fc.Dir, fc.Filename),
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   true,
	}
	return zapcore.AddSync(lj), nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unsupported log level: %s", level)
	}
}

// logWithContext appends trace correlation fields when the context
// carries a recording span.
func (l *LoggerComponent) logWithContext(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return fields
	}
	if !hasField(fields, "trace_id") {
		fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
	}
	if !hasField(fields, "span_id") {
		fields = append(fields, zap.String("span_id", sc.SpanID().String()))
	}
	return fields
}

func hasField(fields []zap.Field, key string) bool {
	for _, f := range fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

func (l *LoggerComponent) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Debug(msg, l.logWithContext(ctx, fields)...)
}

func (l *LoggerComponent) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Info(msg, l.logWithContext(ctx, fields)...)
}

func (l *LoggerComponent) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Warn(msg, l.logWithContext(ctx, fields)...)
}

func (l *LoggerComponent) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Error(msg, l.logWithContext(ctx, fields)...)
}

func (l *LoggerComponent) Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Fatal(msg, l.logWithContext(ctx, fields)...)
}

// With returns a child zap logger carrying the extra fields.
func (l *LoggerComponent) With(fields ...zap.Field) *zap.Logger {
	return l.logger.With(fields...)
}

func (l *LoggerComponent) GetZapLogger() *zap.Logger {
	return l.logger
}

func (l *LoggerComponent) Sync() error {
	return l.logger.Sync()
}
