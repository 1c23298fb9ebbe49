// Package bipserrors wraps engine, precheck, and validator failures in a
// consistent goerrors category so a caller (the CLI) can branch its exit
// code on Category alone, the way internal/commands/errors.go does for
// command execution failures.
package bipserrors

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	// CategoryInput marks a pre-run (§4.7) input violation: corrupted or
	// self-contradictory snapshot data. Fatal; the run aborts before any
	// scheduling work.
	CategoryInput goerrors.Category = "bips_input"

	// CategoryInvariant marks a post-run (§4.8) invariant violation: an
	// engine bug or an input anomaly the precheck didn't catch. Fatal.
	CategoryInvariant goerrors.Category = "bips_invariant"
)

const (
	inputViolationCode     = "BIPS_INPUT_VIOLATION"
	invariantViolationCode = "BIPS_INVARIANT_VIOLATION"
)

// WrapInput attaches CategoryInput to a pre-run input violation.
func WrapInput(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, CategoryInput, "input violation").
		WithTextCode(inputViolationCode)
}

// WrapInvariant attaches CategoryInvariant to a post-run invariant violation.
func WrapInvariant(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, CategoryInvariant, "invariant violation").
		WithTextCode(invariantViolationCode)
}

// IsInput reports whether err was produced by WrapInput (or otherwise
// carries CategoryInput).
func IsInput(err error) bool {
	return goerrors.IsCategory(err, CategoryInput)
}

// IsInvariant reports whether err was produced by WrapInvariant (or
// otherwise carries CategoryInvariant).
func IsInvariant(err error) bool {
	return goerrors.IsCategory(err, CategoryInvariant)
}
