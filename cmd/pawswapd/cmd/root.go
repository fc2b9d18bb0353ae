package cmd

import (
	"context"
	"errors"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/app"
)

const (
	flagHome       = "home"
	flagChainID    = "chain-id"
	flagLogLevel   = "log-level"
	flagFrom       = "from"
	flagFunds      = "funds"
	flagLabel      = "label"
	flagAdmin      = "admin"
	flagOverwrite  = "overwrite"
	flagFactory    = "factory"
	flagStartAfter = "start-after"
	flagLimit      = "limit"
)

type cliContextKey struct{}

// cliContext is resolved once per invocation by the root command.
type cliContext struct {
	Home   string
	Config Config
	Logger log.Logger

	shutdownTracing func(context.Context) error
}

func getCLIContext(cmd *cobra.Command) (*cliContext, error) {
	if ctx := cmd.Context(); ctx != nil {
		if cc, ok := ctx.Value(cliContextKey{}).(*cliContext); ok {
			return cc, nil
		}
	}
	return nil, errors.New("command context not initialized")
}

// NewRootCmd creates the pawswapd root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           app.Name + "d",
		Short:         "PAW swap factory and pair engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			home, err := cmd.Flags().GetString(flagHome)
			if err != nil {
				return err
			}

			v := newViper(home)
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			filter, err := log.ParseLogLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger := log.NewLogger(cmd.ErrOrStderr(), log.FilterOption(filter), log.ColorOption(false))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			shutdown, err := setupTracing(ctx, cfg)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(ctx, cliContextKey{}, &cliContext{
				Home:            home,
				Config:          cfg,
				Logger:          logger.With("module", "cli"),
				shutdownTracing: shutdown,
			}))
			return nil
		},
	}

	rootCmd.PersistentFlags().String(flagHome, DefaultNodeHome(), "directory for config and data")
	rootCmd.PersistentFlags().String(flagChainID, "", "chain id, overrides app.toml")
	rootCmd.PersistentFlags().String(flagLogLevel, "", "log level (debug|info|warn|error), overrides app.toml")

	rootCmd.AddCommand(
		InitCmd(),
		TxCmd(),
		QueryCmd(),
		BankCmd(),
	)
	return rootCmd
}
