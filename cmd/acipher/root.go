package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/acipher/cmd/acipher/commands"
	"github.com/walteh/acipher/cmd/acipher/opts"
	"github.com/walteh/acipher/pkg/config"
	"github.com/walteh/acipher/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd builds the command tree around the shared options
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	rootCmd := commands.NewCipherCmd(o)
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// usage and help belong on stderr with the other diagnostics
	rootCmd.SetOut(o.Stderr)
	rootCmd.SetErr(o.Stderr)
	rootCmd.SetIn(o.Stdin)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return commands.UsageError(err)
	})

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		setupLogging(o)
		ctx := o.Logger.WithContext(cmd.Context())
		ctx = log.NewContext(ctx, o.Console)
		cmd.SetContext(ctx)

		cfg, err := loadConfig(cmd, o)
		if err != nil {
			return err
		}
		o.Config = cfg
		o.Logger.Debug().Str("config", cfg.String()).Msg("configuration resolved")
		return nil
	}

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewKeysCmd(o),
		commands.NewCrackCmd(o),
		newVersionCmd(o),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "defaults file (.json, .yaml, .yml or .hcl)")
	cmd.PersistentFlags().BoolVar(&o.Debug, "debug", false, "enable debug logging on stderr")
}

// setupLogging configures zerolog based on flags. Structured logs stay quiet unless --debug
// is given, so stderr only carries the console messages.
func setupLogging(o *opts.RootOpts) {
	level := zerolog.Disabled
	if o.Debug {
		level = zerolog.DebugLevel
	}
	o.Logger = zerolog.New(zerolog.ConsoleWriter{Out: o.Stderr}).Level(level).With().Timestamp().Logger()
	o.Console = log.New(o.Stderr, o.Logger)
}

func loadConfig(cmd *cobra.Command, o *opts.RootOpts) (*config.Config, error) {
	if o.ConfigFile == "" {
		return &config.Config{}, nil
	}
	cfg, err := config.Load(cmd.Context(), o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// fallbackConsole is used when a command fails before logging is set up.
func fallbackConsole(stderr io.Writer) *log.Logger {
	return log.New(stderr, zerolog.Nop())
}
