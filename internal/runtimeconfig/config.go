// Package runtimeconfig carries the tunable constants a scheduling run is
// parameterised on: the PRNG seed, travel buffer, continuous-work and
// break-length thresholds (spec §4.3/§4.4), plus operator-facing toggles
// for the CLI surface.
package runtimeconfig

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config aggregates the constants the engine, selector, and report layers
// are built against. Fields use simple types so a host CLI can populate
// them from flags or environment variables without an intermediate layer.
type Config struct {
	// Seed drives the selector's deterministic tier-permutation shuffling.
	Seed int64

	// TravelTime is the minimum gap required between interviews an
	// interviewer holds in different rooms.
	TravelTime time.Duration

	// MaxContinuousWork is the longest unbroken stretch of interviewing an
	// interviewer may be scheduled for before a break is required.
	MaxContinuousWork time.Duration

	// BreakLength is the minimum gap that resets the continuous-work
	// stretch counter.
	BreakLength time.Duration

	// Silent suppresses the commit confirmation prompt in cmd/bips,
	// committing the run unconditionally.
	Silent bool

	// InterviewerLoadThreshold is the per-interviewer interview count above
	// which the report flags a load warning (spec §6.4's load summary).
	InterviewerLoadThreshold int
}

// DefaultConfig returns the constants used by the reference scheduling
// round: a 30 minute travel buffer, a 4 hour continuous-work ceiling, a 20
// minute break, and a load-warning threshold of 10 interviews.
func DefaultConfig() Config {
	return Config{
		Seed:                     0,
		TravelTime:               30 * time.Minute,
		MaxContinuousWork:        4 * time.Hour,
		BreakLength:              20 * time.Minute,
		Silent:                   false,
		InterviewerLoadThreshold: 10,
	}
}

// Validate performs high-level consistency checks on the configuration,
// returning a validation.Errors map keyed by field name.
func (cfg Config) Validate() error {
	errs := validation.Errors{}
	if cfg.TravelTime < 0 {
		errs["travel_time"] = validation.NewError("bips.config.travel_time_negative", "travel time must not be negative")
	}
	if cfg.MaxContinuousWork <= 0 {
		errs["max_continuous_work"] = validation.NewError("bips.config.max_continuous_work_invalid", "max continuous work must be positive")
	}
	if cfg.BreakLength <= 0 {
		errs["break_length"] = validation.NewError("bips.config.break_length_invalid", "break length must be positive")
	}
	if cfg.InterviewerLoadThreshold <= 0 {
		errs["interviewer_load_threshold"] = validation.NewError("bips.config.load_threshold_invalid", "interviewer load threshold must be positive")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
