// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"fmt"
	"io"
	"strings"
)

// Annotator emits workflow commands that GitHub Actions renders as
// annotations on the run summary. On any other platform it writes nothing.
type Annotator struct {
	w       io.Writer
	enabled bool
}

// NewAnnotator creates an annotator for the given platform name.
func NewAnnotator(w io.Writer, platform string) *Annotator {
	return &Annotator{w: w, enabled: platform == GitHub}
}

// Enabled reports whether annotations are written.
func (a *Annotator) Enabled() bool {
	return a != nil && a.enabled
}

// Error emits an ::error:: command.
func (a *Annotator) Error(title, message string) {
	a.emit("error", title, message)
}

// Warning emits a ::warning:: command.
func (a *Annotator) Warning(title, message string) {
	a.emit("warning", title, message)
}

// Notice emits a ::notice:: command.
func (a *Annotator) Notice(title, message string) {
	a.emit("notice", title, message)
}

func (a *Annotator) emit(command, title, message string) {
	if !a.Enabled() {
		return
	}
	if title != "" {
		fmt.Fprintf(a.w, "::%s title=%s::%s\n", command, escapeProperty(title), escapeData(message))
		return
	}
	fmt.Fprintf(a.w, "::%s::%s\n", command, escapeData(message))
}

// escapeData escapes a workflow command message.
func escapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}

// escapeProperty escapes a workflow command property value.
func escapeProperty(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C").Replace(s)
}
