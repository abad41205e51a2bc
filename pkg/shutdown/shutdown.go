package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithSignals returns a context cancelled on SIGINT/SIGTERM. The second
// signal is left to the default handler, so a stuck shutdown can still be
// killed with a repeated Ctrl-C.
func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
