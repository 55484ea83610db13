package dmid

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/dmi/pkg/app"
	"github.com/threefoldtech/dmi/pkg/capacity"
	"github.com/threefoldtech/dmi/pkg/environment"
	"github.com/urfave/cli/v2"
)

const (
	module = "dmid"

	retryInterval = 10 * time.Second
)

// Module is entry point for module
var Module cli.Command = cli.Command{
	Name:  module,
	Usage: "serves the decoded smbios tables and reports the node hardware",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "listen",
			Usage: "listen `ADDRESS` of the http api (overrides config)",
		},
		&cli.StringFlag{
			Name:  "flags",
			Usage: "`DIR` where daemon flags are kept",
			Value: app.FlagsDir,
		},
		&cli.BoolFlag{
			Name:  "force",
			Usage: "push the hardware report even if it was already accepted",
		},
	},
	Action: action,
}

func action(c *cli.Context) error {
	cfg, err := environment.Load(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	if c.IsSet("listen") {
		cfg.Listen = c.String("listen")
	}

	ctx, stop := withSignal(context.Background())
	defer stop()

	oracle := capacity.NewResourceOracle(capacity.SourceFor(cfg.Source.Root, cfg.Source.Dump), cfg.Source.TTL)
	loaded := make(chan struct{})

	go func() {
		if err := loadTables(ctx, oracle, retryInterval, loaded); err != nil {
			log.Error().Err(err).Msg("failed to load smbios tables")
		}
	}()

	if cfg.Reporting() {
		flags := c.String("flags")
		if c.Bool("force") {
			if err := app.DeleteFlag(flags, app.Reported); err != nil {
				return errors.Wrap(err, "failed to reset reported flag")
			}
		}

		if app.CheckFlag(flags, app.Reported) {
			log.Info().Msg("hardware report already pushed, use --force to push again")
		} else {
			go func() {
				if err := waitLoaded(ctx, loaded); err != nil {
					return
				}

				if err := report(ctx, cfg, oracle); err != nil {
					log.Error().Err(err).Msg("failed to push hardware report")
					return
				}

				if err := app.SetFlag(flags, app.Reported); err != nil {
					log.Error().Err(err).Msg("failed to set reported flag")
				}
			}()
		}
	}

	return serve(ctx, cfg.Listen, oracle)
}

func serve(ctx context.Context, listen string, oracle *capacity.ResourceOracle) error {
	server := http.Server{
		Addr:    listen,
		Handler: capacity.Router(oracle),
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Msg("failed to shutdown http server")
		}
	}()

	log.Info().Str("listen", listen).Msg("serving smbios api")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server failed")
	}

	return nil
}
