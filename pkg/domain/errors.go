package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotRegistered is matched (errors.Is) by every LookupError.
var ErrNotRegistered = errors.New("not registered")

// ErrDuplicateCapability is returned when an entity defines the same capability key twice.
var ErrDuplicateCapability = errors.New("duplicate capability key")

// ErrUnknownTileset is returned when a ruleset is requested for a tileset that was not loaded.
var ErrUnknownTileset = errors.New("unknown tileset")

// ErrTreeNotFound is returned by tree stores for unknown keys.
var ErrTreeNotFound = errors.New("tree not found")

// LookupError reports a definition key with no registered factory.
type LookupError struct {
	Kind string // "capability", "warhead", "projectile"
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q is %s", e.Kind, e.Name, ErrNotRegistered)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrNotRegistered
}

// UnresolvedPrerequisiteError is returned when the capabilities of an entity
// cannot be put in construction order. The cause may be a cycle or a
// prerequisite that never becomes available; the two are not distinguished.
type UnresolvedPrerequisiteError struct {
	Entity    string
	Remaining []string
}

func (e *UnresolvedPrerequisiteError) Error() string {
	return fmt.Sprintf("entity %q: unresolved prerequisites (possible cycle) among: %s",
		e.Entity, strings.Join(e.Remaining, ", "))
}

// RulesetError wraps a post-load validation failure with the name of the
// entity or weapon that raised it.
type RulesetError struct {
	Owner string
	Err   error
}

func (e *RulesetError) Error() string {
	return e.Owner + ": " + e.Err.Error()
}

func (e *RulesetError) Unwrap() error {
	return e.Err
}

// AggregateError collects independent failures, e.g. one per entity when
// validating a whole mod.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Errors returns the collected errors if err is an AggregateError, or nil.
func Errors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
