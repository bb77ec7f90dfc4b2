// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package output

import (
	"fmt"

	"github.com/cicd-ai-toolkit/status-embed/pkg/errors"
	"github.com/cicd-ai-toolkit/status-embed/pkg/workflow"
)

// Appearance is how a run status is rendered.
type Appearance struct {
	Color int    // embed sidebar color, 0xRRGGBB
	Label string // short title suffix
	Icon  string // leading title glyph
	Verb  string // completes "Workflow run N ..."
}

var appearances = [...]Appearance{
	workflow.StatusSuccess:   {Color: 0x009800, Label: "Success", Icon: "✅", Verb: "succeeded"},
	workflow.StatusFailure:   {Color: 0xFC2929, Label: "Failure", Icon: "❌", Verb: "failed"},
	workflow.StatusCancelled: {Color: 0x664544, Label: "Cancelled", Icon: "🚫", Verb: "was cancelled"},
}

// Fails to compile unless there is exactly one entry per workflow.Status.
var _ = [1]int{}[len(appearances)-workflow.NumStatuses]

// AppearanceFor returns the rendering of s. An error is always an
// ErrInternal: every Status has an entry.
func AppearanceFor(s workflow.Status) (Appearance, error) {
	if int(s) >= len(appearances) {
		return Appearance{}, errors.InternalError(fmt.Sprintf("no appearance for status %d", s))
	}
	a := appearances[s]
	if a.Label == "" || a.Icon == "" || a.Verb == "" {
		return Appearance{}, errors.InternalError(fmt.Sprintf("incomplete appearance for status %s", s))
	}
	return a, nil
}
