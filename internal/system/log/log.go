/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package log provides a structured wrapper around the zap logger.
package log

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *Logger
	once   sync.Once
)

// Logger is a wrapper around the zap logger.
type Logger struct {
	internal *zap.Logger
}

// Options holds the settings used to build the logger.
type Options struct {
	// Level is the minimum level to log. Defaults to info.
	Level string
	// File is an optional log file path. When set, logs are also written to a rotating file.
	File string
	// MaxSizeMB is the size in megabytes a log file can reach before it is rotated.
	MaxSizeMB int
	// MaxBackups is the number of rotated log files to retain.
	MaxBackups int
	// MaxAgeDays is the number of days to retain rotated log files.
	MaxAgeDays int
}

// GetLogger returns the singleton logger instance. If InitLogger was not called,
// the logger is created with the level read from the environment.
func GetLogger() *Logger {
	once.Do(func() {
		if logger != nil {
			return
		}
		l, err := newLogger(Options{Level: os.Getenv(LogLevelEnvironmentVariable)}, os.Stdout)
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
		logger = l
	})
	return logger
}

// InitLogger initializes the singleton logger with the given options.
func InitLogger(opts Options) error {
	l, err := newLogger(opts, os.Stdout)
	if err != nil {
		return err
	}
	logger = l
	once.Do(func() {})
	return nil
}

// Sync flushes any buffered log entries.
func Sync() {
	if logger != nil {
		_ = logger.internal.Sync()
	}
}

// newLogger builds a logger writing plain text to the console and, optionally, JSON to a rotating file.
func newLogger(opts Options, console io.Writer) (*Logger, error) {
	level, err := parseLogLevel(opts.Level)
	if err != nil {
		return nil, errors.New("error parsing log level: " + err.Error())
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(zapcore.AddSync(console)), level),
	}
	if opts.File != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    valueOrDefault(opts.MaxSizeMB, DefaultMaxSizeMB),
			MaxBackups: valueOrDefault(opts.MaxBackups, DefaultMaxBackups),
			MaxAge:     valueOrDefault(opts.MaxAgeDays, DefaultMaxAgeDays),
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), fileWriter, level))
	}

	return &Logger{
		internal: zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)),
	}, nil
}

// With creates a new logger instance with additional fields.
func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{
		internal: l.internal.With(fields...),
	}
}

// IsDebugEnabled checks if the logger is set to debug level.
func (l *Logger) IsDebugEnabled() bool {
	return l.internal.Core().Enabled(zapcore.DebugLevel)
}

// Info logs an informational message with custom fields.
func (l *Logger) Info(msg string, fields ...Field) {
	l.internal.Info(msg, fields...)
}

// Debug logs a debug message with custom fields.
func (l *Logger) Debug(msg string, fields ...Field) {
	l.internal.Debug(msg, fields...)
}

// Warn logs a warning message with custom fields.
func (l *Logger) Warn(msg string, fields ...Field) {
	l.internal.Warn(msg, fields...)
}

// Error logs an error message with custom fields.
func (l *Logger) Error(msg string, fields ...Field) {
	l.internal.Error(msg, fields...)
}

// parseLogLevel parses the log level string and returns the corresponding zap level.
func parseLogLevel(logLevel string) (zapcore.Level, error) {
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}
	return zapcore.ParseLevel(strings.ToLower(logLevel))
}

func valueOrDefault(value, def int) int {
	if value <= 0 {
		return def
	}
	return value
}
