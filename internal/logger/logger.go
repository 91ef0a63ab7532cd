// Package logger builds the crawler's zap logger: human-readable console
// output plus an optional logfile sink carrying debug-level detail.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a sugared logger writing to stdout and, when logFile is not
// empty, to logFile as well. The console core stays at info unless verbose
// is set; the file core always records debug so selector misses can be
// inspected after a run.
func New(logFile string, verbose bool) (*zap.SugaredLogger, error) {
	consoleLevel := zap.InfoLevel
	if verbose {
		consoleLevel = zap.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.AddSync(os.Stdout),
			consoleLevel,
		),
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileCfg),
			zapcore.AddSync(f),
			zap.DebugLevel,
		))
	}

	return zap.New(zapcore.NewTee(cores...)).Sugar(), nil
}
