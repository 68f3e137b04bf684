package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spechtlabs/go-otel-utils/otelzap"
	"go.uber.org/zap"
)

// ErrInterrupted is the cancellation cause set by InterruptHandler.
var ErrInterrupted = errors.New("interrupted")

// InterruptHandler cancels ctx with an ErrInterrupted cause on SIGINT, SIGTERM or SIGQUIT.
// It stops listening once ctx is done.
func InterruptHandler(ctx context.Context, cancelCtx context.CancelCauseFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)

		select {
		case <-ctx.Done():
			return

		case sig := <-sigs:
			otelzap.L().InfoContext(ctx, "Received signal, initiating graceful shutdown", zap.String("signal", sig.String()))
			cancelCtx(fmt.Errorf("%w: %s", ErrInterrupted, sig))
		}
	}()
}
