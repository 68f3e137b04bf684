package async_operation

import (
	"context"
	"time"

	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spechtlabs/ecsview/internal/cli/pretty_print"
)

// Spinner runs a PollFunc until it succeeds, fails permanently or runs out of attempts.
type Spinner[T any] interface {
	Run(context.Context) (*T, humane.Error)
}

// PollFunc performs one attempt of a remote operation.
type PollFunc[T any] func(ctx context.Context) (T, humane.Error)

type pollResultMsg[T any] struct {
	result      T
	err         humane.Error
	shouldRetry bool
}

type poller[T any] struct {
	pollFunc PollFunc[T]
	opts     *spinnerOptions
	attempt  int
	delay    time.Duration
}

func newPoller[T any](pollFunc PollFunc[T], opts *spinnerOptions) *poller[T] {
	return &poller[T]{
		pollFunc: pollFunc,
		opts:     opts,
		delay:    opts.delay,
	}
}

// poll runs a single attempt and classifies its outcome.
func (p *poller[T]) poll(ctx context.Context) pollResultMsg[T] {
	p.attempt++

	if ctx.Err() != nil {
		return pollResultMsg[T]{err: humane.Wrap(context.Cause(ctx), p.opts.timeoutMessage)}
	}

	result, err := p.pollFunc(ctx)
	if err == nil {
		return pollResultMsg[T]{result: result}
	}

	return pollResultMsg[T]{
		err:         err,
		shouldRetry: ctx.Err() == nil && p.attempt < p.opts.maxAttempts && p.opts.retryable(err),
	}
}

// backoff returns the delay before the next attempt and doubles it.
func (p *poller[T]) backoff() time.Duration {
	d := p.delay
	p.delay *= 2
	return d
}

// NewSpinner returns an animated spinner on a terminal and a line based one otherwise.
func NewSpinner[T any](pollFunc PollFunc[T], opts ...PollModelOption) Spinner[T] {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	if pretty_print.IsTerminal() && !options.quiet {
		return newTeaSpinner(pollFunc, &options)
	}
	return newTextSpinner(pollFunc, &options)
}
