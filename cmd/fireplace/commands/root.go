package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fireplace/internal/app"
	"fireplace/internal/logging"
)

var (
	home       string
	configPath string
	backend    string
	logLevel   string
	appCtx     *app.Wire
)

// Execute runs the CLI against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "fireplace",
		Short:        "Device identity and gateway token custody",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := app.DefaultHome()
				if err != nil {
					return err
				}
				home = dir
			}
			if configPath == "" {
				configPath = filepath.Join(home, app.ConfigFileName)
			}

			cfg, err := app.LoadConfig(configPath, app.DefaultConfig(home))
			if err != nil {
				return err
			}
			cfg.ApplyEnv(os.Getenv)
			if cmd.Flags().Changed("backend") {
				cfg.Backend = app.Backend(backend)
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log)
			if err != nil {
				return err
			}
			appCtx, err = app.NewWire(cfg, logger)
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.fireplace)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <home>/config.yaml)")
	root.PersistentFlags().StringVar(&backend, "backend", "", "secure store: auto, keyring, file, memory or unsupported")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(publicKeyCmd(), deviceIDCmd(), signCmd(), tokenCmd(), platformCmd())
	return root
}
