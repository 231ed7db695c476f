// Command phraseproc answers phrase queries against a document collection
// under two index strategies (standard and nextword) and writes one results
// file per strategy, plus a run report, under the output directory. An
// external harness diffs the two results files to assert the strategies
// agree.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/searchkit/phraseproc/internal/processor"
	"github.com/searchkit/phraseproc/pkg/config"
	apperrors "github.com/searchkit/phraseproc/pkg/errors"
	"github.com/searchkit/phraseproc/pkg/logger"
)

var (
	appName    = "phraseproc"
	appVersion = "populated-at-link-time"
)

func main() {
	if err := makeApp().Run(os.Args); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func makeApp() *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Version = appVersion
	app.Usage = "evaluate phrase queries under standard and nextword index strategies"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:     "collection-file, c",
			Usage:    "path to the collection input file",
			Required: true,
		},
		cli.StringFlag{
			Name:     "query-file, q",
			Usage:    "path to the query input file",
			Required: true,
		},
		cli.StringFlag{
			Name:     "output-dir, d",
			Usage:    "directory for per-strategy results and the run report",
			Required: true,
		},
		cli.BoolFlag{
			Name:  "stem, s",
			Usage: "enable suffix stemming during tokenization",
		},
		cli.BoolFlag{
			Name:  "regenerate, R",
			Usage: "re-evaluate strategies whose results files already exist",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "log per-query matches at debug level",
		},
		cli.StringFlag{
			Name:   "config",
			Usage:  "path to a YAML config file",
			EnvVar: "PHRASEPROC_CONFIG",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "bound on concurrent query evaluation (overrides config)",
		},
	}
	app.Action = run
	return app
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return apperrors.Newf(apperrors.ErrIO, apperrors.ExitIO, "loading config: %v", err)
	}
	if c.Bool("stem") {
		cfg.Processor.Stem = true
	}
	if workers := c.Int("workers"); workers > 0 {
		cfg.Processor.Workers = workers
	}
	if c.Bool("verbose") {
		cfg.Logging.Level = "debug"
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	opts := processor.Options{
		CollectionFile: c.String("collection-file"),
		QueryFile:      c.String("query-file"),
		OutputDir:      c.String("output-dir"),
		Regenerate:     c.Bool("regenerate"),
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return apperrors.Newf(apperrors.ErrIO, apperrors.ExitIO,
			"creating output directory %s: %v", opts.OutputDir, err)
	}
	slog.Info("starting run",
		"collection", opts.CollectionFile,
		"queries", opts.QueryFile,
		"output", opts.OutputDir,
		"workers", cfg.Processor.Workers,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return processor.New(cfg).Run(ctx, opts)
}
