package ctatracker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/trainboard/pkg/config"
	"github.com/travigo/trainboard/pkg/ctdf"
	"github.com/travigo/trainboard/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "cta-tracker",
		Usage: "Publish CTA Train Tracker arrivals to Geckoboard widgets",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "fetch arrivals and push every line widget once",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "exit with an error if any line fails to publish",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(util.GetEnvironmentVariables())
					if err != nil {
						return err
					}

					summary := NewTrackerManager(cfg).Run(c.Context)

					if c.Bool("strict") && summary.Failed() {
						return fmt.Errorf("arrivals run %s failed: %d lines failed, %d stations failed", summary.RunID, summary.LinesFailed, summary.StationsFailed)
					}

					return nil
				},
			},
			{
				Name:  "watch",
				Usage: "push every line widget on the refresh interval until stopped",
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(util.GetEnvironmentVariables())
					if err != nil {
						return err
					}

					ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
					defer stop()

					NewTrackerManager(cfg).Watch(ctx, cfg.RefreshInterval)

					log.Info().Msg("Stopped CTA arrivals tracker")

					return nil
				},
			},
			{
				Name:  "arrivals",
				Usage: "print the grouped arrivals without publishing",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "line",
						Usage: "only print this line code",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.LoadReadOnly(util.GetEnvironmentVariables())
					if err != nil {
						return err
					}

					return printArrivals(c.Context, NewTrackerManager(cfg), c.String("line"))
				},
			},
		},
	}
}

func printArrivals(ctx context.Context, trackerManager *TrackerManager, lineCode string) error {
	lines := trackerManager.Config.Lines
	if lineCode != "" {
		line, ok := trackerManager.Config.GetLine(lineCode)
		if !ok {
			return fmt.Errorf("unknown line %q", lineCode)
		}
		lines = []ctdf.Line{line}
	}

	arrivals := trackerManager.Board(ctx)

	for _, line := range lines {
		fmt.Printf("%s (%s)\n", line.Name, line.Code)
		pretty.Println(ctdf.GroupArrivalsByDirection(arrivals, line.Code))
	}

	return nil
}
