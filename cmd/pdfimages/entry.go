package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/GravityPDF/gravity-pdf-images/internal/config"
	"github.com/GravityPDF/gravity-pdf-images/internal/form"
	"github.com/GravityPDF/gravity-pdf-images/internal/pipeline"
	"github.com/GravityPDF/gravity-pdf-images/internal/render"
	"github.com/GravityPDF/gravity-pdf-images/internal/resize"
	"github.com/GravityPDF/gravity-pdf-images/internal/settings"
	"github.com/GravityPDF/gravity-pdf-images/internal/storage"
)

func entryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "form",
			Usage:    "Path to the form definition JSON",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "entry",
			Usage:    "Path to the entry JSON",
			Required: true,
		},
	}
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadEntry(cmd *cli.Command) (form.Form, form.Entry, error) {
	var (
		f form.Form
		e form.Entry
	)
	if err := readJSON(cmd.String("form"), &f); err != nil {
		return f, e, err
	}
	if err := readJSON(cmd.String("entry"), &e); err != nil {
		return f, e, err
	}
	return f, e, nil
}

func resizeEntry(ctx context.Context, cmd *cli.Command, cfg *config.Config, logger zerolog.Logger) error {
	f, e, err := loadEntry(cmd)
	if err != nil {
		return err
	}

	resolver := storage.NewResolver(cfg.UploadDir, cfg.UploadURL)
	resizer := resize.New(pipeline.NewFileCodec(), resolver, cfg.ImageConstraint, logger)

	failed := 0
	for _, res := range resizer.ResizeEntry(ctx, f, e) {
		fmt.Printf("%-8s %s\n", res.Status, res.Path)
		if res.Status == resize.Failed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d image(s) could not be resized", failed)
	}
	return nil
}

func renderEntry(cmd *cli.Command, cfg *config.Config) error {
	f, e, err := loadEntry(cmd)
	if err != nil {
		return err
	}

	display, err := displaySettings(cmd, cfg)
	if err != nil {
		return err
	}
	deps := render.Deps{Resolver: storage.NewResolver(cfg.UploadDir, cfg.UploadURL)}

	if cmd.Bool("form-data") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(render.BuildFormData(f, e, display, deps))
	}

	fmt.Print(render.Document(f, e, render.Options{
		Settings:            display,
		ShowEmpty:           cmd.Bool("show-empty"),
		Preview:             cmd.Bool("preview"),
		DisablePlaceholders: cmd.Bool("no-placeholders"),
		PlaceholderURL:      cfg.PlaceholderURL,
	}, deps))
	return nil
}

// displaySettings starts from the saved settings of --pdf-id and applies
// every --set key=value on top.
func displaySettings(cmd *cli.Command, cfg *config.Config) (settings.Display, error) {
	store, err := settings.LoadFile(cfg.SettingsFile)
	if err != nil {
		return settings.Display{}, err
	}
	raw := store.Get(cmd.String("pdf-id")).Raw()
	for _, kv := range cmd.StringSlice("set") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return settings.Display{}, fmt.Errorf("invalid --set %q, expected key=value", kv)
		}
		raw[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return settings.FromRaw(raw), nil
}
