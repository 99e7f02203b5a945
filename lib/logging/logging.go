// Package logging is a thin wrapper of zap logging library.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the environment variable that selects the default log level.
// A per-package override is EnvPrefix + "_" + pkg.
const EnvPrefix = "ASN1C_LOG"

var root = func() *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		os.Stderr,
		zap.DebugLevel,
	)
	return zap.New(core)
}()

// Named creates a named logger without level initialization.
func Named(pkg string) *zap.Logger {
	return root.Named(pkg)
}

// New creates a logger initialized with configured log level.
//
// By convention, this should appear in the same .go file as the package docstring:
//
//	var logger = logging.New("Foo")
func New(pkg string) *zap.Logger {
	return Named(pkg).WithOptions(zap.IncreaseLevel(zap.NewAtomicLevelAt(ParseLevel(GetLevel(pkg)))))
}

// GetLevel returns configured log level of a package as a letter.
func GetLevel(pkg string) rune {
	lvl, ok := os.LookupEnv(EnvPrefix + "_" + pkg)
	if !ok {
		lvl, ok = os.LookupEnv(EnvPrefix)
	}
	if !ok || len(lvl) == 0 {
		return 0
	}
	return rune(lvl[0])
}

// ParseLevel converts a level letter to zap level.
// Unrecognized letters map to warning, keeping the codecs quiet by default.
func ParseLevel(lvl rune) zapcore.Level {
	switch lvl {
	case 'V', 'D':
		return zapcore.DebugLevel
	case 'I':
		return zapcore.InfoLevel
	case 'W':
		return zapcore.WarnLevel
	case 'E':
		return zapcore.ErrorLevel
	case 'F', 'N':
		return zapcore.DPanicLevel
	}
	return zapcore.WarnLevel
}
