package async_operation

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spechtlabs/ecsview/internal/cli/pretty_print"
)

type pollTriggerMsg struct{}

type teaPollModel[T any] struct {
	ctx       context.Context
	cancel    context.CancelFunc
	s         spinner.Model
	opts      *spinnerOptions
	poller    *poller[T]
	startedAt time.Time

	done   bool
	result T
	err    humane.Error
}

func newTeaSpinner[T any](pollFunc PollFunc[T], opts *spinnerOptions) *teaPollModel[T] {
	s := spinner.New()

	switch opts.style {
	case Line:
		s.Spinner = spinner.Line
	case MiniDot:
		s.Spinner = spinner.MiniDot
	case Points:
		s.Spinner = spinner.Points
	case Meter:
		s.Spinner = spinner.Meter
	default:
		s.Spinner = spinner.Dot
	}

	return &teaPollModel[T]{
		s:      s,
		opts:   opts,
		poller: newPoller(pollFunc, opts),
	}
}

func (m teaPollModel[T]) Run(ctx context.Context) (*T, humane.Error) {
	m.ctx, m.cancel = context.WithCancel(ctx)
	defer m.cancel()
	m.startedAt = time.Now()

	finalModel, err := tea.NewProgram(m, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return nil, humane.Wrap(err, "UI error while waiting for the server")
	}

	final := finalModel.(teaPollModel[T])
	if final.err != nil {
		return nil, final.err
	}
	if !final.done {
		return nil, humane.New(m.opts.timeoutMessage, "the operation was interrupted before it completed")
	}

	return &final.result, nil
}

func (m teaPollModel[T]) Init() tea.Cmd {
	return tea.Batch(m.s.Tick, m.pollCmd())
}

func (m teaPollModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.s, cmd = m.s.Update(msg)
		return m, cmd

	case pollTriggerMsg:
		return m, m.pollCmd()

	case pollResultMsg[T]:
		if msg.err == nil {
			m.done = true
			m.result = msg.result
			return m, tea.Quit
		}

		if msg.shouldRetry {
			return m, tea.Tick(m.poller.backoff(), func(time.Time) tea.Msg {
				return pollTriggerMsg{}
			})
		}

		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

func (m teaPollModel[T]) View() string {
	switch {
	case m.done:
		if time.Since(m.startedAt) > m.opts.keepProgressAfter {
			return pretty_print.FormatOk(m.opts.doneMessage)
		}
		return ""

	case m.err != nil:
		return ""

	default:
		icon := strings.TrimSpace(m.s.View())
		return pretty_print.FormatWithOptions(pretty_print.InfoLvl, m.opts.inProgressMessage, nil, pretty_print.WithIcon(pretty_print.InfoLvl, icon))
	}
}

func (m teaPollModel[T]) pollCmd() tea.Cmd {
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	return func() tea.Msg {
		return m.poller.poll(ctx)
	}
}
