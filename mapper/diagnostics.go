/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapper

import (
	stderrors "errors"
	"fmt"
)

// Direction tells which engine path produced a diagnostic.
type Direction int

const (
	DirectionWrite Direction = iota
	DirectionRead
)

func (d Direction) String() string {
	if d == DirectionRead {
		return "read"
	}
	return "write"
}

// Severity grades a diagnostic. Errors mean the field was skipped; warnings
// mean it was converted with a caveat.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic reports a problem converting a single field.
type Diagnostic struct {
	Field     string
	Direction Direction
	Strategy  Strategy
	Severity  Severity
	Err       error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s %q (%s): %v", d.Severity, d.Direction, d.Field, d.Strategy, d.Err)
}

// Diagnostics is the per-call list of field problems. A conversion never
// stops at a bad field; callers decide whether the list is fatal.
type Diagnostics []Diagnostic

func (ds *Diagnostics) add(f *field, dir Direction, s Strategy, sev Severity, err error) {
	*ds = append(*ds, Diagnostic{Field: f.name, Direction: dir, Strategy: s, Severity: sev, Err: err})
}

// HasErrors reports whether any field was skipped.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings returns the warning diagnostics.
func (ds Diagnostics) Warnings() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// Err joins the errors of all error-severity diagnostics, or returns nil.
func (ds Diagnostics) Err() error {
	var errs []error
	for _, d := range ds {
		if d.Severity == SeverityError {
			errs = append(errs, fmt.Errorf("%s %q: %w", d.Direction, d.Field, d.Err))
		}
	}
	return stderrors.Join(errs...)
}
