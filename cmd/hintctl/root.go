package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "hintctl",
		Short: "hintctl - hint overlay tooling",
		Long:  "hintctl renders element files the way the service combines them and inspects published payloads",
		Example: `  hintctl render elements.yaml
  hintctl inspect elements.yaml
  hintctl parse '<size=+10>big</size>\nnext line'
  hintctl watch alice`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if flags.verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				Level(level).
				With().Timestamp().Logger()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newExampleCmd())
	cmd.AddCommand(newWatchCmd())

	return cmd
}
