// Package batch runs the per-record pipeline: URL, encode, compose, save.
// Records are processed one after another; a failing record is logged and
// skipped.
package batch

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/arran4/event-barcodes/internal/domain"
	"github.com/arran4/event-barcodes/internal/encoder"
	"github.com/arran4/event-barcodes/internal/logo"
	"github.com/arran4/event-barcodes/internal/render"
	"github.com/arran4/event-barcodes/internal/roster"
)

// Generator holds everything a run needs. Logos may be nil to skip logos.
type Generator struct {
	Kind        domain.Kind
	AppURL      string
	OutputDir   string
	Level       encoder.Level
	DefaultLogo string

	Encoder  encoder.Encoder
	Renderer *render.Renderer
	Logos    *logo.Store
	Logger   zerolog.Logger
	Now      func() time.Time
}

// Result is the outcome for one record.
type Result struct {
	Record domain.Record
	URL    string
	File   string
	Err    error
}

// Summary counts what a run produced.
type Summary struct {
	Generated int
	Failed    int
	Results   []Result
	Manifest  string
}

// Run generates one PNG per record into OutputDir and writes the manifest.
// Per-record failures are logged and counted; the returned error is only set
// when the output directory or manifest cannot be written or ctx is done.
func (g *Generator) Run(ctx context.Context, records []domain.Record) (Summary, error) {
	var sum Summary
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return sum, &domain.OpError{Op: "batch.mkdir", Kind: domain.KindIO, Path: g.OutputDir, Err: err}
	}

	g.Logger.Info().
		Str("kind", g.Kind.String()).
		Str("app_url", g.AppURL).
		Str("output_dir", g.OutputDir).
		Str("encoder", g.Encoder.Name()).
		Int("records", len(records)).
		Msg("starting batch")

	seen := make(map[string]string, len(records))
	var runErr error
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		res := g.Generate(rec)
		sum.Results = append(sum.Results, res)
		if res.Err != nil {
			sum.Failed++
			g.Logger.Error().Err(res.Err).Str("id", rec.ID).Str("name", rec.Name).Msg("failed to generate")
			continue
		}

		if prev, ok := seen[res.File]; ok {
			g.Logger.Warn().Str("file", res.File).Str("id", rec.ID).Str("previous_id", prev).Msg("output file overwritten")
		}
		seen[res.File] = rec.ID
		sum.Generated++
		g.Logger.Info().Str("id", rec.ID).Str("file", filepath.Base(res.File)).Msg("generated")
	}

	path, err := WriteManifest(g.OutputDir, g.manifest(sum.Results))
	if err != nil {
		return sum, err
	}
	sum.Manifest = path

	g.Logger.Info().Int("generated", sum.Generated).Int("failed", sum.Failed).Str("output_dir", g.OutputDir).Msg("batch finished")
	return sum, runErr
}

// Generate runs the pipeline for one record and saves the PNG.
func (g *Generator) Generate(rec domain.Record) Result {
	res := Result{Record: rec}
	if rec.ID == "" {
		res.Err = &domain.OpError{Op: "batch.generate", Kind: domain.KindInvalidInput, Err: domain.ErrInvalidRecord}
		return res
	}

	url, err := roster.BuildURL(g.AppURL, g.Kind, rec.ID)
	if err != nil {
		res.Err = err
		return res
	}
	res.URL = url

	logoImg, err := g.logoFor(rec)
	if err != nil {
		res.Err = err
		return res
	}

	level := g.Level
	if logoImg != nil && level < encoder.LevelH {
		// The logo hides the centre modules.
		level = encoder.LevelH
	}

	m, err := g.Encoder.Encode(url, level)
	if err != nil {
		res.Err = err
		return res
	}

	img, err := g.Renderer.Compose(m, logoImg, rec.CaptionLines(g.Kind))
	if err != nil {
		res.Err = err
		return res
	}

	path := filepath.Join(g.OutputDir, roster.FileName(g.Kind, rec))
	if err := imaging.Save(img, path); err != nil {
		res.Err = &domain.OpError{Op: "batch.save", Kind: domain.KindIO, Path: path, Err: err}
		return res
	}
	res.File = path
	return res
}

func (g *Generator) logoFor(rec domain.Record) (image.Image, error) {
	if g.Logos == nil {
		return nil, nil
	}
	key := rec.LogoKey
	if key == "" {
		key = g.DefaultLogo
	}
	img, err := g.Logos.Get(key)
	if err != nil {
		return nil, fmt.Errorf("logo %q: %w", key, err)
	}
	return img, nil
}

func (g *Generator) manifest(results []Result) Manifest {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	m := Manifest{
		Kind:        g.Kind.String(),
		AppURL:      g.AppURL,
		GeneratedAt: now().UTC(),
	}
	// A file written twice only shows the record that wrote it last.
	last := make(map[string]int, len(results))
	for i, res := range results {
		if res.Err == nil {
			last[res.File] = i
		}
	}
	for i, res := range results {
		if res.Err != nil || last[res.File] != i {
			continue
		}
		m.Entries = append(m.Entries, ManifestEntry{
			ID:    res.Record.ID,
			Name:  res.Record.Name,
			Group: res.Record.Group,
			URL:   res.URL,
			File:  filepath.Base(res.File),
		})
	}
	return m
}
