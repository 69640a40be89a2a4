package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type renderFlags struct {
	raw         bool
	payloadPath string
}

func newRenderCmd() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <file.yaml>",
		Short: "Print the content a viewer would see for an element file",
		Long:  "Print the combined content with text parameters substituted. Placeholders of other parameter kinds are kept.",
		Args:  cobra.ExactArgs(1),
		RunE:  flags.runRenderCommand,
	}

	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Print the content as sent, without substituting parameters")
	cmd.Flags().StringVar(&flags.payloadPath, "payload", "", "Also write the binary payload to this file")

	return cmd
}

func (f *renderFlags) runRenderCommand(cmd *cobra.Command, args []string) error {
	file, err := loadElementFile(args[0])
	if err != nil {
		return err
	}

	b, err := file.build()
	if err != nil {
		return err
	}

	payload, frame, err := b.frame()
	if err != nil {
		return err
	}

	if f.payloadPath != "" {
		if err := os.WriteFile(f.payloadPath, payload, 0o644); err != nil {
			return fmt.Errorf("cannot write payload: %w", err)
		}
	}

	if f.raw {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), frame.Content)
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), frame.Expand())
	return err
}
