package mlog

import (
	"go.uber.org/zap"
)

type Logger struct {
	*zap.SugaredLogger
}

// New returns a logger named name writing to the configured destinations.
func New(name string) *Logger {
	logger := zap.New(NewCore(), zap.AddCaller())
	return &Logger{logger.Sugar().Named(name)}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}
