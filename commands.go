package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/mdp/qrterminal/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arran4/event-barcodes/internal/batch"
	"github.com/arran4/event-barcodes/internal/buildinfo"
	"github.com/arran4/event-barcodes/internal/domain"
	"github.com/arran4/event-barcodes/internal/encoder"
	"github.com/arran4/event-barcodes/internal/logo"
	"github.com/arran4/event-barcodes/internal/render"
	"github.com/arran4/event-barcodes/internal/roster"
	"github.com/arran4/event-barcodes/internal/sheet"
)

var errNothingGenerated = errors.New("no codes were generated")

// kindsFromArgs returns the kind named in args, or every kind when args is empty.
func kindsFromArgs(args []string) ([]domain.Kind, error) {
	if len(args) == 0 {
		return domain.Kinds, nil
	}
	kind, err := domain.ParseKind(args[0])
	if err != nil {
		return nil, err
	}
	return []domain.Kind{kind}, nil
}

// --- generate ---------------------------------------------------------------

type generateOptions struct {
	outDir    string
	level     string
	noLogo    bool
	noCaption bool
	sheet     string
}

func newGenerateCmd(a *app) *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:       "generate [events|students]",
		Short:     "Generate one PNG per roster entry (all rosters when no kind is given)",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"events", "students"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := kindsFromArgs(args)
			if err != nil {
				return err
			}
			if opts.outDir != "" && len(kinds) > 1 {
				return fmt.Errorf("--out needs a single kind")
			}
			if opts.sheet != "" && opts.sheet != "png" && opts.sheet != "pdf" {
				return fmt.Errorf("--sheet must be png or pdf, got %q", opts.sheet)
			}
			for _, kind := range kinds {
				if err := runGenerate(cmd, a, kind, opts); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Output folder (default from profile)")
	cmd.Flags().StringVar(&opts.level, "level", "", "Error correction level L, M, Q or H (default from profile)")
	cmd.Flags().BoolVar(&opts.noLogo, "no-logo", false, "Skip logos even when the roster names one")
	cmd.Flags().BoolVar(&opts.noCaption, "no-caption", false, "Do not print caption text under the code")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Also write printable sheets: png or pdf")
	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, kind domain.Kind, opts generateOptions) error {
	profile := a.cfg.Profile(kind)
	if opts.outDir != "" {
		profile.OutputDir = opts.outDir
	}
	if opts.level != "" {
		profile.Level = opts.level
	}
	if opts.noCaption {
		profile.Caption.Enabled = false
	}

	level, err := profile.ErrorLevel()
	if err != nil {
		return err
	}
	enc, err := encoder.New(a.cfg.Encoder)
	if err != nil {
		return err
	}
	renderer, err := render.NewRenderer(profile.Style())
	if err != nil {
		return err
	}
	records, err := roster.Load(kind)
	if err != nil {
		return err
	}

	g := &batch.Generator{
		Kind:        kind,
		AppURL:      a.cfg.AppURL,
		OutputDir:   profile.OutputDir,
		Level:       level,
		DefaultLogo: profile.DefaultLogo,
		Encoder:     enc,
		Renderer:    renderer,
		Logger:      log.Logger.With().Str("kind", kind.String()).Logger(),
	}
	if !opts.noLogo {
		g.Logos = logo.NewStore(a.cfg.LogoDir)
	}

	sum, err := g.Run(cmd.Context(), records)
	if err != nil {
		return err
	}
	if sum.Generated == 0 {
		return fmt.Errorf("%s: %w (%d failed)", kind, errNothingGenerated, sum.Failed)
	}

	if opts.sheet != "" {
		return writeSheets(cmd, a, profile.OutputDir, opts.sheet, "")
	}
	return nil
}

// --- list -------------------------------------------------------------------

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [events|students]",
		Short: "Print the embedded roster with the URL each code will carry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := kindsFromArgs(args)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tID\tNAME\tGROUP\tLOGO\tURL")
			for _, kind := range kinds {
				records, err := roster.Load(kind)
				if err != nil {
					return err
				}
				for _, rec := range records {
					url, err := roster.BuildURL(a.cfg.AppURL, kind, rec.ID)
					if err != nil {
						return err
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", kind, rec.ID, rec.Name, rec.Group, rec.LogoKey, url)
				}
			}
			return tw.Flush()
		},
	}
}

// --- preview ----------------------------------------------------------------

func newPreviewCmd(a *app) *cobra.Command {
	var kindName string
	cmd := &cobra.Command{
		Use:   "preview <id>",
		Short: "Show a record's code in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseKind(kindName)
			if err != nil {
				return err
			}
			records, err := roster.Load(kind)
			if err != nil {
				return err
			}
			rec, err := roster.Find(records, args[0])
			if err != nil {
				return err
			}
			url, err := roster.BuildURL(a.cfg.AppURL, kind, rec.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n%s\n", rec.ID, rec.Name, url)
			qrterminal.GenerateHalfBlock(url, qrterminal.M, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kindName, "kind", "k", "students", "Roster to look in (events, students)")
	return cmd
}

// --- sheet ------------------------------------------------------------------

func newSheetCmd(a *app) *cobra.Command {
	var (
		kindName string
		dir      string
		format   string
		out      string
	)
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Lay generated codes out on A4 pages for printing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				kind, err := domain.ParseKind(kindName)
				if err != nil {
					return err
				}
				dir = a.cfg.Profile(kind).OutputDir
			}
			return writeSheets(cmd, a, dir, format, out)
		},
	}
	cmd.Flags().StringVarP(&kindName, "kind", "k", "students", "Roster whose output folder is used when --dir is empty")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Folder holding generated codes and manifest.yaml")
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "Sheet format: png or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (pdf) or folder (png); defaults to the codes folder")
	cmd.Flags().String("title", "", "Page title (default from config)")
	return cmd
}

func writeSheets(cmd *cobra.Command, a *app, dir, format, out string) error {
	m, err := batch.ReadManifest(dir)
	if err != nil {
		return err
	}
	items, err := sheet.FromManifest(dir, m)
	if err != nil {
		return err
	}

	opts := sheet.Options{
		Columns:     a.cfg.Sheet.Columns,
		RowsPerPage: a.cfg.Sheet.RowsPerPage,
		Title:       a.cfg.Sheet.Title,
	}
	if a.cfg.Sheet.Footer {
		opts.Footer = m.AppURL
	}
	pages, err := sheet.RenderPages(items, opts)
	if err != nil {
		return err
	}

	switch format {
	case "pdf":
		if out == "" {
			out = filepath.Join(dir, "sheet.pdf")
		}
		if err := sheet.WritePDF(out, pages); err != nil {
			return err
		}
		log.Info().Str("file", out).Int("pages", len(pages)).Msg("sheet written")
	case "png":
		if out == "" {
			out = filepath.Join(dir, "sheets")
		}
		paths, err := sheet.WritePNG(out, pages)
		if err != nil {
			return err
		}
		log.Info().Strs("files", paths).Msg("sheets written")
	default:
		return &domain.OpError{Op: "sheet", Kind: domain.KindInvalidInput, Err: fmt.Errorf("unknown sheet format %q (want png or pdf)", format)}
	}
	return nil
}

// --- version ----------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		// The config is not needed to print the version.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
