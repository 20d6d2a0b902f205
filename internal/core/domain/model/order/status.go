package order

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

// Status is the processing state of an order.
//
//	New ──> Processing ──> Done
//
// Transitions are linear and monotonic. An order that failed midway stays in
// Processing; nothing moves it back to New.
type Status int

const (
	// Unknown is the zero value and never a valid status.
	Unknown Status = iota
	New
	Processing
	Done
)

var statusNames = map[Status]string{
	Unknown:    "unknown",
	New:        "new",
	Processing: "processing",
	Done:       "done",
}

// ParseStatus maps a persisted name back onto a Status.
func ParseStatus(name string) (Status, error) {
	for status, n := range statusNames {
		if n == name && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}

func (s Status) Validate() error {
	if s != New && s != Processing && s != Done {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lower-case name used in storage and backups.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// Start moves New to Processing.
func (s Status) Start() (Status, error) {
	if s != New {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start processing", s),
		)
	}
	return Processing, nil
}

// Finish moves Processing to Done.
func (s Status) Finish() (Status, error) {
	if s != Processing {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to finish", s),
		)
	}
	return Done, nil
}
