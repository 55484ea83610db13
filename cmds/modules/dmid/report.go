package dmid

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/dmi/pkg/capacity"
	"github.com/threefoldtech/dmi/pkg/environment"
)

func stores(cfg environment.Config) ([]capacity.Store, func(), error) {
	var (
		out     []capacity.Store
		closers []func() error
	)

	if cfg.Report.URL != "" {
		out = append(out, capacity.NewHTTPStore(cfg.Report.URL))
	}

	if cfg.Report.Redis != "" {
		store, err := capacity.NewRedisStore(cfg.Report.Redis, cfg.Report.Channel)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, store)
		closers = append(closers, store.Close)
	}

	return out, func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Error().Err(err).Msg("failed to close store")
			}
		}
	}, nil
}

// report pushes the hardware report to all configured stores
func report(ctx context.Context, cfg environment.Config, oracle *capacity.ResourceOracle) error {
	r, err := capacity.NewReport(oracle)
	if err != nil {
		return err
	}

	log.Debug().
		Uint64("cru", r.Capacity.CRU).
		Uint64("mru", r.Capacity.MRU).
		Uint64("installed", r.Inventory.InstalledMemory).
		Str("node", r.Node()).
		Msg("node hardware")

	list, closer, err := stores(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to create report stores")
	}
	defer closer()

	for _, store := range list {
		if err := capacity.Push(ctx, store, r, cfg.Report.Timeout); err != nil {
			return err
		}
	}

	return nil
}
