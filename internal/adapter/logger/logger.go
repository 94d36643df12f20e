package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Info(action, message, requestID string, details map[string]interface{})
	Debug(action, message, requestID string, details map[string]interface{})
	Error(action, message, requestID string, details map[string]interface{}, err error)
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// New builds a JSON logger tagged with the service name and hostname.
func New(service string) Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncoderConfig.MessageKey = "message"

	hostname, _ := os.Hostname()
	base := zap.Must(cfg.Build(zap.WithCaller(false)))

	return &zapLogger{
		sugar: base.Sugar().With("service", service, "hostname", hostname),
	}
}

// NewNop returns a logger that discards everything. Meant for tests.
func NewNop() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *zapLogger) Info(action, message, requestID string, details map[string]interface{}) {
	l.sugar.Infow(message, fields(action, requestID, details)...)
}

func (l *zapLogger) Debug(action, message, requestID string, details map[string]interface{}) {
	l.sugar.Debugw(message, fields(action, requestID, details)...)
}

func (l *zapLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
	kv := fields(action, requestID, details)
	if err != nil {
		kv = append(kv, "error", err.Error())
	}
	l.sugar.Errorw(message, kv...)
}

func fields(action, requestID string, details map[string]interface{}) []interface{} {
	kv := []interface{}{"action", action}
	if requestID != "" {
		kv = append(kv, "request_id", requestID)
	}
	if len(details) > 0 {
		kv = append(kv, "details", details)
	}
	return kv
}
