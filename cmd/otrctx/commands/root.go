package commands

import (
	"github.com/spf13/cobra"

	"otrctx/internal/app"
)

var (
	home       string
	configPath string
	logLevel   string
	wire       *app.Wire
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Flags override the config file and
// the environment.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "otrctx",
		Short:         "Inspect and exercise OTR conversation state",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if home != "" {
				cfg.Home = home
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			wire, err = app.NewWire(cfg, cmd.ErrOrStderr())
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.otrctx)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(instagCmd(), tlvCmd(), fingerprintCmd(), sessionCmd())
	return root
}
