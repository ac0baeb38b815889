// Package logger builds the CLI's structured logger: JSON lines written to a
// rotating file under a log directory, optionally teed to stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the log file created inside the log directory.
const FileName = "goinput.log"

// Options selects the sinks.
type Options struct {
	// Dir receives FileName. Empty disables the file sink.
	Dir string
	// Console tees human-readable lines to Stderr.
	Console bool
	// Stderr overrides os.Stderr for the console sink.
	Stderr io.Writer
	// Debug lowers the level from info to debug.
	Debug bool
}

var encCfg = zapcore.EncoderConfig{
	TimeKey:      "ts",
	LevelKey:     "level",
	MessageKey:   "msg",
	CallerKey:    "caller",
	EncodeTime:   zapcore.ISO8601TimeEncoder,
	EncodeLevel:  zapcore.LowercaseLevelEncoder,
	EncodeCaller: zapcore.ShortCallerEncoder,
}

// New returns a logger writing to the configured sinks and installs it as
// the process-wide default so zap.S() works everywhere. Without any sink it
// returns a no-op logger. The returned func restores the previous globals,
// flushes, and closes the file.
func New(opt Options) (*zap.Logger, func(), error) {
	level := zap.InfoLevel
	if opt.Debug {
		level = zap.DebugLevel
	}

	var (
		cores   []zapcore.Core
		closers []io.Closer
		errOut  zapcore.WriteSyncer = zapcore.AddSync(io.Discard)
	)
	if opt.Dir != "" {
		if err := os.MkdirAll(opt.Dir, 0o755); err != nil {
			return nil, nil, err
		}
		fileSink := &lumberjack.Logger{
			Filename:   filepath.Join(opt.Dir, FileName),
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
			Compress:   true,
		}
		closers = append(closers, fileSink)
		errOut = zapcore.AddSync(fileSink)
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(fileSink), level))
	}
	if opt.Console {
		w := opt.Stderr
		if w == nil {
			w = os.Stderr
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level))
	}
	if len(cores) == 0 {
		return zap.NewNop(), func() {}, nil
	}

	z := zap.New(zapcore.NewTee(cores...), zap.ErrorOutput(errOut))
	undo := zap.ReplaceGlobals(z)
	z.Debug("logger online", zap.Bool("console", opt.Console), zap.String("dir", opt.Dir))
	return z, func() {
		undo()
		_ = z.Sync()
		for _, c := range closers {
			_ = c.Close()
		}
	}, nil
}
