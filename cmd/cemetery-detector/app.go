package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ironsheep/cemetery-detector/internal/cemetery"
	"github.com/ironsheep/cemetery-detector/internal/config"
	"github.com/ironsheep/cemetery-detector/internal/cvbackend"
	apperrors "github.com/ironsheep/cemetery-detector/internal/errors"
	"github.com/ironsheep/cemetery-detector/internal/logger"
	"github.com/ironsheep/cemetery-detector/internal/server"
)

// errUnranked marks a strict ranking that finished with failed images. The
// ranking itself has already been printed.
var errUnranked = errors.New("some images could not be analyzed")

const usage = `cemetery-detector - score aerial images for planned cemetery layouts

Usage:
  cemetery-detector                         Run the MCP server on stdin/stdout
  cemetery-detector score <image>           Score one image
  cemetery-detector compare <a> <b>         Compare two images
  cemetery-detector rank [--lenient] <dir|image>...
                                            Rank images, highest score first

Options:
  --version, -v    Print version information
  --help, -h       Print this help message

Environment variables (also read from .env):
  LOG_LEVEL=debug|info|warn|error     Log level (logs go to stderr)
  CEMETERY_PERIODICITY=lines|frequency
  CEMETERY_BACKEND=native|gocv        gocv needs a -tags gocv build
  CEMETERY_MAX_DIMENSION=0            Downscale larger images (0 = never)
  CEMETERY_WORKERS=0                  Batch workers (0 = one per CPU)
  CEMETERY_BATCH_MODE=strict|lenient
`

// run executes one invocation and writes its output to out.
func run(args []string, out io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(out, "cemetery-detector %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
			return nil
		case "--help", "-h", "help":
			fmt.Fprint(out, usage)
			return nil
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return apperrors.NewValidationError("configuration", err)
	}
	logger.SetLevel(cfg.LogLevel)

	analyzer, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		logger.WithField("version", Version).Info("starting MCP server")
		return server.New(analyzer, Version).Run()
	}

	switch args[0] {
	case "score":
		if len(args) != 2 {
			return usageError("score takes exactly one image")
		}
		result, err := analyzer.Score(args[1])
		if err != nil {
			return err
		}
		return writeJSON(out, result)

	case "compare":
		if len(args) != 3 {
			return usageError("compare takes exactly two images")
		}
		report, err := analyzer.Compare(args[1], args[2])
		if err != nil {
			return err
		}
		return writeJSON(out, report)

	case "rank":
		return runRank(analyzer, args[1:], out)

	default:
		return usageError(fmt.Sprintf("unknown command %q", args[0]))
	}
}

func runRank(analyzer *cemetery.Analyzer, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("rank", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	lenient := fs.Bool("lenient", false, "rank failed images with score 0")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}
	if fs.NArg() == 0 {
		return usageError("rank needs at least one directory or image")
	}

	if *lenient && !analyzer.Options().Lenient {
		var err error
		if analyzer, err = cemetery.NewAnalyzer(analyzer.Options().WithLenientBatch()); err != nil {
			return err
		}
	}

	paths, err := cemetery.CollectImages(fs.Args())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return printRanking(ctx, analyzer, paths, out)
}

// printRanking writes the ranking even when ctx ends early, so an
// interrupted run still reports the images it finished.
func printRanking(ctx context.Context, analyzer *cemetery.Analyzer, paths []string, out io.Writer) error {
	ranking, rankErr := analyzer.Rank(ctx, paths)
	if err := writeJSON(out, ranking); err != nil {
		return err
	}
	if rankErr != nil {
		return rankErr
	}
	if !ranking.Lenient && ranking.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", errUnranked, ranking.Failed, ranking.Total)
	}
	return nil
}

// newAnalyzer maps the runtime configuration onto analyzer options.
func newAnalyzer(cfg *config.Config) (*cemetery.Analyzer, error) {
	strategy, err := cemetery.ParsePeriodicityStrategy(cfg.Periodicity)
	if err != nil {
		return nil, err
	}

	opts := cemetery.DefaultOptions().
		WithPeriodicity(strategy).
		WithMaxDimension(cfg.MaxDimension).
		WithWorkers(cfg.WorkerCount())
	if cfg.Lenient() {
		opts = opts.WithLenientBatch()
	}

	if cfg.Backend == config.BackendGoCV {
		toolkit, err := cvbackend.Toolkit()
		if err != nil {
			return nil, err
		}
		opts = opts.WithToolkit(toolkit)
	}

	logger.WithField("backend", cfg.Backend).
		WithField("periodicity", cfg.Periodicity).
		Debug("analyzer configured")
	return cemetery.NewAnalyzer(opts)
}

func usageError(msg string) error {
	return apperrors.NewValidationError(msg+" (see --help)", nil)
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
