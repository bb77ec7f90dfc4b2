// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package workflow

import "strings"

// Status is the conclusion of a workflow run.
type Status uint8

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusCancelled

	// NumStatuses is the number of Status values. Tables indexed by Status
	// assert their length against it.
	NumStatuses = int(iota)
)

var statusNames = [NumStatuses]string{
	StatusSuccess:   "success",
	StatusFailure:   "failure",
	StatusCancelled: "cancelled",
}

// String returns the canonical lowercase name.
func (s Status) String() string {
	if int(s) < NumStatuses {
		return statusNames[s]
	}
	return "unknown"
}

// ParseStatus matches s case-insensitively against the known statuses.
func ParseStatus(s string) (Status, bool) {
	for i, name := range statusNames {
		if strings.EqualFold(s, name) {
			return Status(i), true
		}
	}
	return 0, false
}

// AllowedStatuses returns the canonical names accepted by ParseStatus.
func AllowedStatuses() []string {
	return append([]string(nil), statusNames[:]...)
}
