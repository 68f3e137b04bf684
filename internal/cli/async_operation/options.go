// Package async_operation runs remote calls behind a progress spinner and
// retries them with exponential backoff.
package async_operation

import (
	"time"

	"github.com/sierrasoftworks/humane-errors-go"
)

// SpinnerStyle is the animation of the progress spinner.
type SpinnerStyle int

const (
	Dot SpinnerStyle = iota
	Line
	MiniDot
	Points
	Meter
	// Silent disables the animation.
	Silent
)

type spinnerOptions struct {
	maxAttempts       int
	inProgressMessage string
	doneMessage       string
	timeoutMessage    string
	keepProgressAfter time.Duration
	delay             time.Duration
	style             SpinnerStyle
	quiet             bool
	retryable         func(humane.Error) bool
}

// PollModelOption configures a Spinner.
type PollModelOption func(*spinnerOptions)

func WithInProgressMessage(msg string) PollModelOption {
	return func(s *spinnerOptions) {
		s.inProgressMessage = msg
	}
}

func WithDoneMessage(msg string) PollModelOption {
	return func(s *spinnerOptions) {
		s.doneMessage = msg
	}
}

// WithMaxAttempts bounds the number of calls, including the first one.
func WithMaxAttempts(attempts int) PollModelOption {
	return func(s *spinnerOptions) {
		if attempts < 1 {
			attempts = 1
		}
		s.maxAttempts = attempts
	}
}

// WithDelay sets the initial backoff. It doubles after every failed attempt.
func WithDelay(delay time.Duration) PollModelOption {
	return func(s *spinnerOptions) {
		s.delay = delay
	}
}

// WithKeepProgressAfter shows the done message only when the operation took longer than duration.
func WithKeepProgressAfter(duration time.Duration) PollModelOption {
	return func(s *spinnerOptions) {
		s.keepProgressAfter = duration
	}
}

func WithSpinnerStyle(style SpinnerStyle) PollModelOption {
	return func(s *spinnerOptions) {
		s.style = style
	}
}

// WithRetryable decides which errors are worth another attempt.
func WithRetryable(retryable func(humane.Error) bool) PollModelOption {
	return func(s *spinnerOptions) {
		if retryable != nil {
			s.retryable = retryable
		}
	}
}

// WithQuiet suppresses all progress output.
func WithQuiet(quiet bool) PollModelOption {
	return func(s *spinnerOptions) {
		s.quiet = quiet
		if quiet {
			s.style = Silent
		}
	}
}

func defaultOptions() spinnerOptions {
	return spinnerOptions{
		maxAttempts:       5,
		inProgressMessage: "Waiting...",
		doneMessage:       "Done!",
		timeoutMessage:    "Operation cancelled",
		keepProgressAfter: 500 * time.Millisecond,
		delay:             200 * time.Millisecond,
		style:             Dot,
		retryable:         func(humane.Error) bool { return true },
	}
}
