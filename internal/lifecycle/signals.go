package lifecycle

import (
	"context"
	"mintlog/internal/global"
	"mintlog/internal/logctx"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// Anything holding messages that can be published on demand
type Flusher interface {
	Flush(ctx context.Context) (err error)
}

// Handles incoming signals until a termination signal arrives or ctx ends.
// SIGHUP and SIGUSR1 flush target immediately and keep waiting.
// Returns the terminating signal, nil when ctx ended first.
func SignalHandler(ctx context.Context, target Flusher) (received os.Signal) {
	// Channel for handling interrupt signals
	sigChan := make(chan os.Signal, 10)
	signal.Notify(sigChan, unix.SIGINT, unix.SIGQUIT, unix.SIGTERM, unix.SIGHUP, unix.SIGUSR1)
	defer signal.Stop(sigChan)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigChan:
			logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog, "Received signal: %v\n", sig)

			if sig == unix.SIGHUP || sig == unix.SIGUSR1 {
				err := target.Flush(ctx)
				if err != nil {
					logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "Flush on %v: %v\n", sig, err)
				}
				continue
			}

			received = sig
			return
		}
	}
}
