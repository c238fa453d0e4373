package logging

import (
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Factory interface {
	Logger() logr.Logger
}

// ZapFactory builds development-style zap loggers writing to the given stream.
// Verbosity v enables logr's V(1)..V(v) lines
type ZapFactory struct {
	out       io.Writer
	verbosity int
}

func NewZapFactory(out io.Writer, verbosity int) *ZapFactory {
	return &ZapFactory{out: out, verbosity: verbosity}
}

func (factory *ZapFactory) Logger() logr.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(factory.out),
		zap.NewAtomicLevelAt(zapcore.Level(-factory.verbosity)), // logr's V(n) maps to zap level -n
	)
	return zapr.NewLogger(zap.New(core))
}
