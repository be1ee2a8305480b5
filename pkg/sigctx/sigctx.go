// Package sigctx derives contexts canceled by process termination signals.
package sigctx

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT}

// NotifyContext returns a context canceled on the first shutdown signal.
func NotifyContext() (context.Context, context.CancelFunc) {
	return WithShutdown(context.Background())
}

func WithShutdown(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
