// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package observability

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// MaskPlaceholder replaces every registered secret in log output.
const MaskPlaceholder = "<masked value>"

// maskingHandler rewrites record messages and attribute values so that
// registered secrets never reach the wrapped handler.
type maskingHandler struct {
	inner  slog.Handler
	masked []string
}

func (h *maskingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *maskingHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, h.mask(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.maskAttr(a))
		return true
	})
	return h.inner.Handle(ctx, out)
}

func (h *maskingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		masked = append(masked, h.maskAttr(a))
	}
	return &maskingHandler{inner: h.inner.WithAttrs(masked), masked: h.masked}
}

func (h *maskingHandler) WithGroup(name string) slog.Handler {
	return &maskingHandler{inner: h.inner.WithGroup(name), masked: h.masked}
}

func (h *maskingHandler) maskAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()

	switch v.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.mask(v.String()))
	case slog.KindGroup:
		group := v.Group()
		masked := make([]any, 0, len(group))
		for _, ga := range group {
			masked = append(masked, h.maskAttr(ga))
		}
		return slog.Group(a.Key, masked...)
	case slog.KindAny:
		var s string
		switch val := v.Any().(type) {
		case error:
			s = val.Error()
		default:
			s = fmt.Sprint(val)
		}
		if masked := h.mask(s); masked != s {
			return slog.String(a.Key, masked)
		}
		return slog.Attr{Key: a.Key, Value: v}
	default:
		return slog.Attr{Key: a.Key, Value: v}
	}
}

func (h *maskingHandler) mask(s string) string {
	for _, secret := range h.masked {
		s = strings.ReplaceAll(s, secret, MaskPlaceholder)
	}
	return s
}
