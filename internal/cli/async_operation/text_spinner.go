package async_operation

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spechtlabs/ecsview/internal/cli/pretty_print"
)

// textPollModel reports progress line by line on stderr for pipes and dumb terminals.
type textPollModel[T any] struct {
	opts   *spinnerOptions
	poller *poller[T]
}

func newTextSpinner[T any](pollFunc PollFunc[T], opts *spinnerOptions) *textPollModel[T] {
	return &textPollModel[T]{
		opts:   opts,
		poller: newPoller(pollFunc, opts),
	}
}

func (m *textPollModel[T]) Run(ctx context.Context) (*T, humane.Error) {
	startedAt := time.Now()
	m.print(pretty_print.FormatInfo(m.opts.inProgressMessage))

	for {
		msg := m.poller.poll(ctx)
		if msg.err == nil {
			if time.Since(startedAt) > m.opts.keepProgressAfter {
				m.print(pretty_print.FormatOk(m.opts.doneMessage))
			}
			return &msg.result, nil
		}

		if !msg.shouldRetry {
			return nil, msg.err
		}

		delay := m.poller.backoff()
		m.print(pretty_print.FormatWarn(fmt.Sprintf("Attempt %d failed, retrying in %s", m.poller.attempt, delay), msg.err.Error()))

		select {
		case <-ctx.Done():
			return nil, humane.Wrap(context.Cause(ctx), m.opts.timeoutMessage)
		case <-time.After(delay):
		}
	}
}

func (m *textPollModel[T]) print(s string) {
	if m.opts.quiet {
		return
	}
	_, _ = fmt.Fprint(os.Stderr, s)
}
