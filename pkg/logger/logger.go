// Package logger builds the structured logger every biscuitidx subsystem
// shares. It is a thin wrapper around zap, named per service the way the
// engine this index core's plumbing was modeled on constructs its own
// logger at startup.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a development-friendly *zap.SugaredLogger tagged with
// service, suitable for a single index instance's lifetime. Development
// encoding is chosen over production JSON because the core runs embedded in
// a host process rather than behind its own log-shipping pipeline.
func New(service string) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	log, err := cfg.Build()
	if err != nil {
		// Configuration above is static and always valid; a build failure
		// here means zap itself is broken, not anything the caller did.
		panic(err)
	}

	return log.Named(service).Sugar()
}

// Noop returns a logger that discards everything, for tests and callers
// that don't want instance-level logging.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
