// Package logger builds the zap logger used across fincert.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/fincert/internal/config"
)

// New builds a logger from the log section of cfg. Output goes to
// cfg.Log.File when set, otherwise to stderr.
func New(cfg config.Log) (*zap.Logger, error) {
	var zc zap.Config
	if strings.EqualFold(cfg.Format, "json") {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	} else {
		zc.OutputPaths = []string{"stderr"}
		zc.ErrorOutputPaths = []string{"stderr"}
	}

	return zc.Build()
}

// ForTUI builds a logger that never writes to the terminal, since the screen
// owns stdout and stderr. Without a configured file it logs to
// fincert.log under the user cache directory.
func ForTUI(cfg config.Log) (*zap.Logger, error) {
	if cfg.File == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return zap.NewNop(), nil
		}
		cfg.File = filepath.Join(dir, "fincert", "fincert.log")
	}
	return New(cfg)
}
