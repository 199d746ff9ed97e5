package app

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOptions параметры логгера из конфигурации
type LoggerOptions struct {
	Environment string
	// Level пустой: debug в development, info в production
	Level string
	// OutputPaths по умолчанию stdout
	OutputPaths []string
}

// NewLogger создаёт zap-логгер: JSON в production, цветная консоль иначе.
// Каждая запись несёт имя сервиса и окружение.
func NewLogger(opts LoggerOptions) (*zap.Logger, error) {
	var config zap.Config

	if opts.Environment == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.EncoderConfig.TimeKey = "time"
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if opts.Level != "" {
		level, err := zap.ParseAtomicLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		config.Level = level
	}

	config.OutputPaths = []string{"stdout"}
	if len(opts.OutputPaths) > 0 {
		config.OutputPaths = opts.OutputPaths
	}
	config.InitialFields = map[string]interface{}{
		"service": "lesson_scheduler",
		"env":     opts.Environment,
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger, nil
}
