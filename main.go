package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arran4/event-barcodes/internal/config"
	"github.com/arran4/event-barcodes/internal/logging"
)

// app is shared by the subcommands once the root has loaded the config.
type app struct {
	configPath string
	envFile    string
	cfg        *config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "event-barcodes",
		Short:        "Batch QR codes for event stalls and student badges",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.Options{
				ConfigFile: a.configPath,
				EnvFile:    a.envFile,
				Flags:      cmd.Flags(),
			})
			if err != nil {
				return err
			}
			a.cfg = cfg
			logging.Init(cfg.Log, cmd.ErrOrStderr())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "Path to config file (yaml, toml, json)")
	pf.StringVar(&a.envFile, "env-file", ".env", "Path to .env file; ignored when missing")
	pf.String("app-url", "", "Base URL of the web app encoded into every code")
	pf.String("logo-dir", "", "Directory holding logo images")
	pf.String("encoder", "", "QR encoder backend (boombuler, rsc, skip2)")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("log-format", "", "Log format (text, json)")

	root.AddCommand(
		newGenerateCmd(a),
		newListCmd(a),
		newPreviewCmd(a),
		newSheetCmd(a),
		newVersionCmd(),
	)
	return root
}
