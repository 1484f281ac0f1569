package api

import (
	"github.com/travigo/trainboard/pkg/config"
	"github.com/travigo/trainboard/pkg/ctatracker"
	"github.com/travigo/trainboard/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Preview the line widgets without pushing them",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.LoadReadOnly(util.GetEnvironmentVariables())
					if err != nil {
						return err
					}

					return SetupServer(c.String("listen"), cfg.Lines, ctatracker.NewTrackerManager(cfg))
				},
			},
		},
	}
}
