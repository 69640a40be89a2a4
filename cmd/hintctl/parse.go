package main

import (
	"fmt"

	"github.com/Drolfothesgnir/hintstack/param"
	"github.com/Drolfothesgnir/hintstack/parser"
	"github.com/Drolfothesgnir/hintstack/richtext"
	"github.com/spf13/cobra"
)

type parseFlags struct {
	params             []string
	literal            bool
	noparseEscapes     bool
	noparseFormatItems bool
	resolutionAlign    bool
}

func newParseCmd() *cobra.Command {
	var flags parseFlags

	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Print the modifications and warnings the parser produces for a text",
		Args:  cobra.ExactArgs(1),
		RunE:  flags.runParseCommand,
	}

	cmd.Flags().StringArrayVar(&flags.params, "param", nil, "Text parameter resolving the next {n} placeholder (repeatable)")
	cmd.Flags().BoolVar(&flags.literal, "literal", false, "Sanitize the text first so it is shown verbatim")
	cmd.Flags().BoolVar(&flags.noparseEscapes, "noparse-escapes", false, "Keep parsing escape sequences inside noparse")
	cmd.Flags().BoolVar(&flags.noparseFormatItems, "noparse-format-items", false, "Keep parsing {n} placeholders inside noparse")
	cmd.Flags().BoolVar(&flags.resolutionAlign, "resolution-align", false, "Pad aligned lines to the screen edge")

	return cmd
}

func (f *parseFlags) settings() parser.Settings {
	s := parser.Settings{
		Parameters:      make([]param.Parameter, 0, len(f.params)),
		ResolutionAlign: f.resolutionAlign,
		WarningPolicy:   parser.WarnAll,
	}

	for _, p := range f.params {
		s.Parameters = append(s.Parameters, param.String{Value: p})
	}
	if f.noparseEscapes {
		s.Noparse |= parser.ParsesEscapeSequences
	}
	if f.noparseFormatItems {
		s.Noparse |= parser.ParsesFormatItems
	}

	return s
}

func (f *parseFlags) runParseCommand(cmd *cobra.Command, args []string) error {
	text := args[0]
	if f.literal {
		text = richtext.Sanitize(text)
	}

	pf := parser.Parse(text, f.settings())

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("modifications (%d)", len(pf.Modifications))))
	for _, m := range pf.Modifications {
		fmt.Fprintf(out, "  %s\n", m)
	}

	fmt.Fprintf(out, "%s %g\n", labelStyle.Render("offset:"), pf.Offset.Value())

	printWarnings(out, "parse", pf.Warnings)

	return nil
}
