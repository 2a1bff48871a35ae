// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package status defines the structured errors returned by the layout, window and kernel selection
// code: each error carries a Kind and a message, and a stack trace (see github.com/pkg/errors).
//
// Errors are deterministic functions of their inputs, so none of them is worth retrying: they are
// meant to be reported at configure/validate time, before anything runs.
package status

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an Error.
type Kind int

const (
	// Unknown is used for errors that were not created by this package.
	Unknown Kind = iota

	// Layout errors: padding extension on a locked or non-resizable descriptor, inconsistent
	// format/data type/channels, coordinates beyond the rank.
	Layout

	// Shape errors: operands with mismatched shapes, data types, quantization or layouts.
	Shape

	// Selection errors: no kernel matches the selection key.
	Selection

	// Window errors: a (sub-)window outside its reference window, or a malformed window.
	Window

	// Config errors: malformed configuration strings.
	Config
)

var kindNames = map[Kind]string{
	Unknown:   "unknown",
	Layout:    "layout",
	Shape:     "shape",
	Selection: "selection",
	Window:    "window",
	Config:    "config",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if name, found := kindNames[k]; found {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the structured error: a kind and a message.
type Error struct {
	Kind Kind
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Kind.String() + " error: " + e.Msg
}

// Errorf creates a new error of the given kind, with a stack trace.
func Errorf(kind Kind, format string, args ...any) error {
	return errors.WithStack(&Error{Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

// KindOf returns the Kind of the first *Error in err's chain, or Unknown if there is none.
// It returns Unknown for a nil error.
func KindOf(err error) Kind {
	var statusErr *Error
	if errors.As(err, &statusErr) {
		return statusErr.Kind
	}
	return Unknown
}

// Is returns whether err is (or wraps) an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
