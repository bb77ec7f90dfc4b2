// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package observability provides structured logging for status-embed.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the structured logger interface.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Field represents a log field.
type Field struct {
	Key   string
	Value any
}

// Option configures a logger created by NewLogger.
type Option func(*options)

type options struct {
	out    io.Writer
	masked []string
}

// WithOutput sets the destination of log records. Defaults to stderr so
// that stdout stays free for dry-run output.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithMaskedValues registers secrets that must never appear in log output.
// Empty values are ignored.
func WithMaskedValues(values ...string) Option {
	return func(o *options) {
		for _, v := range values {
			if v != "" {
				o.masked = append(o.masked, v)
			}
		}
	}
}

// logger is the slog-backed implementation.
type logger struct {
	sl *slog.Logger
}

// NewLogger creates a new logger writing text records at the given level.
func NewLogger(level string, opts ...Option) Logger {
	o := &options{out: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}

	var handler slog.Handler = slog.NewTextHandler(o.out, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	if len(o.masked) > 0 {
		handler = &maskingHandler{inner: handler, masked: o.masked}
	}

	return &logger{sl: slog.New(handler)}
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return &logger{sl: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))}
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *logger) Debug(msg string, fields ...Field) {
	l.log(slog.LevelDebug, msg, fields)
}

func (l *logger) Info(msg string, fields ...Field) {
	l.log(slog.LevelInfo, msg, fields)
}

func (l *logger) Warn(msg string, fields ...Field) {
	l.log(slog.LevelWarn, msg, fields)
}

func (l *logger) Error(msg string, fields ...Field) {
	l.log(slog.LevelError, msg, fields)
}

func (l *logger) With(fields ...Field) Logger {
	return &logger{sl: slog.New(l.sl.Handler().WithAttrs(toAttrs(fields)))}
}

func (l *logger) log(level slog.Level, msg string, fields []Field) {
	l.sl.LogAttrs(context.Background(), level, msg, toAttrs(fields)...)
}

func toAttrs(fields []Field) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	return attrs
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Strings creates a string slice field.
func Strings(key string, value []string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field.
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}
