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
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/player-locator/internal/config"
	"github.com/ironsheep/player-locator/internal/detection"
	"github.com/ironsheep/player-locator/internal/imaging"
	"github.com/ironsheep/player-locator/internal/logging"
	"github.com/ironsheep/player-locator/internal/render"
	"github.com/ironsheep/player-locator/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process exit. It returns 0 on success, 1 when the
// image cannot be loaded or an output cannot be written, and 2 on bad usage.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("player-locator", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		imagePath   = fs.String("image", "", "path of the top-down image to analyse")
		expected    = fs.Int("expected", 0, "number of players to look for (default from config, 22)")
		debug       = fs.Bool("debug", false, "log per-stage candidate counts at info level")
		asJSON      = fs.Bool("json", false, "print the full result as JSON")
		plotPath    = fs.String("plot", "", "save a chart of the players to this file")
		overlayPath = fs.String("overlay", "", "save the image with players drawn on it to this file")
		mcp         = fs.Bool("mcp", false, "serve MCP tools over stdin/stdout instead of a one-shot run")
		envFile     = fs.String("env", "", "read settings from this env file instead of ./.env")
		version     = fs.Bool("version", false, "print version information")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "player-locator - locate circular player markers in a top-down image")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  player-locator -image pitch.png [-expected 22] [-json] [-plot out.png] [-overlay out.png]")
		fmt.Fprintln(stderr, "  player-locator -mcp")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Environment variables (also read from .env):")
		for _, k := range []string{config.EnvExpected, config.EnvDebug, config.EnvLogLevel, config.EnvLogFile, config.EnvTeamAColor, config.EnvTeamBColor} {
			fmt.Fprintf(stderr, "  %s\n", k)
		}
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *version {
		fmt.Fprintf(stdout, "player-locator %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		fmt.Fprintf(stdout, "  Backend:    %s\n", detection.DefaultBackend().Name())
		return 0
	}

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}
	if *expected != 0 {
		cfg.Expected = *expected
	}
	if *debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Stderr: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "logging: %v\n", err)
		return 2
	}
	palette, err := render.ParsePalette(cfg.TeamAColor, cfg.TeamBColor)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}

	if *mcp {
		logger.WithFields(logrus.Fields{"version": Version, "built": BuildTime, "commit": GitCommit}).Debug("starting")
		srv := server.New(
			server.WithLogger(logger),
			server.WithExpected(cfg.Expected),
			server.WithDebug(cfg.Debug),
			server.WithPalette(palette),
			server.WithVersion(Version),
		)
		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.WithError(err).Error("server stopped")
			return 1
		}
		return 0
	}

	if *imagePath == "" {
		fs.Usage()
		return 2
	}

	cache := imaging.NewImageCache()
	detector := detection.NewDetector(
		detection.WithLogger(logger),
		detection.WithExpected(cfg.Expected),
		detection.WithDebug(cfg.Debug),
	)
	result, err := detector.DetectFile(cache, *imagePath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	} else {
		printPlayers(stdout, result)
	}

	if *overlayPath != "" {
		img, err := cache.Load(*imagePath)
		if err == nil {
			err = render.Save(render.Overlay(img, result, palette), *overlayPath)
		}
		if err != nil {
			fmt.Fprintf(stderr, "overlay: %v\n", err)
			return 1
		}
		logger.WithField("path", *overlayPath).Info("overlay saved")
	}

	if *plotPath != "" {
		opts := render.ResultPlotOptions(result)
		opts.Palette = palette
		if err := render.Plot(result.Detected, opts, *plotPath); err != nil {
			fmt.Fprintf(stderr, "plot: %v\n", err)
			return 1
		}
		logger.WithField("path", *plotPath).Info("plot saved")
	}
	return 0
}

func printPlayers(w io.Writer, r *detection.DetectionResult) {
	fmt.Fprintf(w, "Detected %d of %d players (%dx%d, origin lower left)\n",
		len(r.Detected), r.Expected, r.ImageWidth, r.ImageHeight)
	for _, p := range r.Detected {
		fmt.Fprintf(w, "ID %02d: x=%.1f, y=%.1f, r=%.1f\n", p.ID, p.X, p.Y, p.Radius)
	}
}
