package canopy

import "errors"

var (
	// ErrNegativeTimeScale is returned when a timer is given a time scale below zero.
	ErrNegativeTimeScale = errors.New("canopy: negative time scale")

	// ErrNegativeDuration is returned for timer durations or timed holds below zero.
	ErrNegativeDuration = errors.New("canopy: negative duration")

	// ErrInvalidTheme wraps theme validation failures.
	ErrInvalidTheme = errors.New("canopy: invalid theme")
)
