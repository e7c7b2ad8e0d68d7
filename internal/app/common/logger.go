package common

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger writing to w (os.Stderr when nil).
// Production mode only reports warnings, without stack traces, so stderr stays readable next to transcripts.
func NewLogger(development bool, w io.Writer) *zap.Logger {
	var config zap.Config

	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		config.DisableStacktrace = true
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if w == nil {
		w = os.Stderr
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config.EncoderConfig), zapcore.AddSync(w), config.Level)

	options := []zap.Option{zap.AddCaller()}
	if development {
		options = append(options, zap.Development())
	}
	if !config.DisableStacktrace {
		options = append(options, zap.AddStacktrace(zap.ErrorLevel))
	}
	return zap.New(core, options...)
}
