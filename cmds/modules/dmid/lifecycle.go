package dmid

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/dmi/pkg/capacity"
)

// terminateSignals stop the daemon. SIGCHLD and friends are left alone.
var terminateSignals = []os.Signal{
	syscall.SIGTERM, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT,
}

// withSignal returns a context canceled on the first termination signal
func withSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(ctx, terminateSignals...)
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
	}()

	return ctx, stop
}

// loadTables reads the tables once, retrying every interval until it works
// or ctx is done. The source can be missing for a short while early at boot.
// loaded is closed on success.
func loadTables(ctx context.Context, oracle *capacity.ResourceOracle, interval time.Duration, loaded chan<- struct{}) error {
	for {
		_, err := oracle.Refresh()
		if err == nil {
			close(loaded)
			return nil
		}

		log.Warn().Err(err).Msg("smbios tables not available yet")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// waitLoaded blocks until loaded is closed or ctx is done
func waitLoaded(ctx context.Context, loaded <-chan struct{}) error {
	select {
	case <-loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
