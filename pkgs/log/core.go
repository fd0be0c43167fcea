package mlog

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CoreConfig describes one log destination.
type CoreConfig struct {
	// OutputType is "console" or "file".
	OutputType string
	// OutputPath is "stdout" or "stderr" for consoles, a file path otherwise.
	OutputPath  string
	Level       string
	EncodeType  string
	EncodeColor bool
}

var (
	mu          sync.Mutex
	coreConfigs []CoreConfig
)

func SetOutputTypes(configs ...CoreConfig) {
	mu.Lock()
	defer mu.Unlock()
	coreConfigs = append(coreConfigs, configs...)
}

// NewCore tees one core per configured destination. Without configuration it
// logs warnings and above to stderr, keeping stdout for program output.
func NewCore() zapcore.Core {
	mu.Lock()
	configs := append([]CoreConfig(nil), coreConfigs...)
	mu.Unlock()

	cores := make([]zapcore.Core, 0, len(configs))
	for _, cfg := range configs {
		var core zapcore.Core
		switch cfg.OutputType {
		case "file":
			core = FileCore(cfg)
		case "console":
			core = ConsoleCore(cfg)
		}

		if core != nil {
			cores = append(cores, core)
		}
	}

	if len(cores) == 0 {
		cores = append(cores, ConsoleCore(CoreConfig{Level: "warn", OutputPath: "stderr", EncodeColor: true}))
	}
	return zapcore.NewTee(cores...)
}

func ConsoleCore(cfg CoreConfig) zapcore.Core {
	out := "stderr"
	if strings.ToLower(cfg.OutputPath) == "stdout" {
		out = "stdout"
	}
	writer, _, err := zap.Open(out)
	if err != nil {
		return nil
	}
	return zapcore.NewCore(newEncoder(cfg, true), writer, parseLevel(cfg.Level))
}

func FileCore(cfg CoreConfig) zapcore.Core {
	if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0o755); err != nil {
		return nil
	}
	writer, _, err := zap.Open(cfg.OutputPath)
	if err != nil {
		return nil
	}
	return zapcore.NewCore(newEncoder(cfg, false), writer, parseLevel(cfg.Level))
}

func newEncoder(cfg CoreConfig, caller bool) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		// Keys can be anything except the empty string.
		TimeKey:          "T",
		LevelKey:         "L",
		NameKey:          "N",
		FunctionKey:      zapcore.OmitKey,
		MessageKey:       "M",
		StacktraceKey:    "S",
		EncodeTime:       zapcore.RFC3339TimeEncoder,
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: "\t",
	}
	if caller {
		encoderConfig.CallerKey = "C"
		encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}
	if cfg.EncodeColor && cfg.EncodeType != "json" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if cfg.EncodeType == "json" {
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func parseLevel(level string) zap.AtomicLevel {
	l, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return l
}
