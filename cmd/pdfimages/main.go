package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/GravityPDF/gravity-pdf-images/internal/config"
	"github.com/GravityPDF/gravity-pdf-images/internal/security"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	// a missing .env file is fine, the environment still applies
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)

	app := &cli.Command{
		Name:    "pdfimages",
		Usage:   "Resize uploaded images and render them into PDF field markup",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP API with the resize worker",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Value: cfg.ServerAddr,
						Usage: "Address to listen on",
					},
					&cli.BoolFlag{
						Name:    "watch",
						Value:   cfg.WatchUploads,
						Usage:   "Queue resize jobs for images written to the upload directory",
						Sources: cli.EnvVars("WATCH_UPLOADS"),
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg.ServerAddr = cmd.String("addr")
					cfg.WatchUploads = cmd.Bool("watch")
					return serve(ctx, cfg, logger)
				},
			},
			{
				Name:  "resize",
				Usage: "Resize every image uploaded to an entry",
				Flags: entryFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return resizeEntry(ctx, cmd, cfg, logger)
				},
			},
			{
				Name:  "render",
				Usage: "Print the PDF markup of an entry",
				Flags: append(entryFlags(),
					&cli.StringFlag{
						Name:  "pdf-id",
						Usage: "Use the saved settings of this PDF",
					},
					&cli.StringSliceFlag{
						Name:  "set",
						Usage: "Override a setting, e.g. --set display_uploaded_images=Yes",
					},
					&cli.BoolFlag{
						Name:  "preview",
						Usage: "Swap uploaded images for the placeholder",
					},
					&cli.BoolFlag{
						Name:  "no-placeholders",
						Usage: "Keep uploaded images in previews",
					},
					&cli.BoolFlag{
						Name:  "show-empty",
						Usage: "Render fields without a value",
					},
					&cli.BoolFlag{
						Name:  "form-data",
						Usage: "Print the entry export as JSON instead of markup",
					},
				),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return renderEntry(cmd, cfg)
				},
			},
			{
				Name:  "token",
				Usage: "Generate a random API token",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					token, err := security.GenerateAPIToken()
					if err != nil {
						return err
					}
					fmt.Println(token)
					return nil
				},
			},
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Printf("pdfimages version %s\n", Version)
					fmt.Printf("Commit: %s\n", Commit)
					fmt.Printf("Built: %s\n", BuildDate)
					return nil
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// setupLogger configures the global zerolog logger and returns it.
func setupLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return log.Logger
}
