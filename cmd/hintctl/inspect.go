package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Drolfothesgnir/hintstack/combiner"
	"github.com/Drolfothesgnir/hintstack/param"
	"github.com/Drolfothesgnir/hintstack/parser"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.yaml>",
		Short: "Print the payload header, parameters and parse warnings of an element file",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspectCommand,
	}
}

func runInspectCommand(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	printFrame(out, b.viewer, len(payload), frame)

	for i, el := range b.elements {
		pf, err := el.ParsedForm(b.viewer)
		if err != nil {
			fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("element %d: %v", i, err)))
			continue
		}
		printWarnings(out, fmt.Sprintf("element %d", i), pf.Warnings)
	}

	return nil
}

// printFrame writes a decoded payload in a human readable form.
func printFrame(w io.Writer, viewer string, size int, frame combiner.Frame) {
	fmt.Fprintln(w, headerStyle.Render("payload for "+viewer))
	fmt.Fprintf(w, "%s %d bytes\n", labelStyle.Render("size:"), size)
	fmt.Fprintf(w, "%s %#04x\n", labelStyle.Render("message id:"), frame.MessageID)
	fmt.Fprintf(w, "%s %d\n", labelStyle.Render("hint type:"), frame.HintType)
	fmt.Fprintf(w, "%s %gs\n", labelStyle.Render("duration:"), frame.Duration)

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("parameters (%d)", len(frame.Parameters))))
	for i, p := range frame.Parameters {
		fmt.Fprintf(w, "  %s %-15s %s\n", labelStyle.Render(fmt.Sprintf("{%d}", i)), p.Type(), describeParameter(p))
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("content (%d bytes)", len(frame.Content))))
	fmt.Fprintln(w, contentStyle.Render(frame.Content))
}

func describeParameter(p param.Parameter) string {
	switch p := p.(type) {
	case param.String:
		return strconv.Quote(p.Value)
	case param.Item:
		return fmt.Sprintf("item type %d", p.ItemType)
	case param.Keybind:
		return fmt.Sprintf("keybind %d format %q", p.ID, p.Format)
	case *param.Animated:
		return fmt.Sprintf("%d keyframes, offset %gs", p.Value.Len(), p.Offset)
	}
	return ""
}

func printWarnings(w io.Writer, title string, warnings []parser.Warning) {
	if len(warnings) == 0 {
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s: %d warnings", title, len(warnings))))
	for _, warn := range warnings {
		fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("  %d %s: %s", warn.Pos, warn.Issue, warn.Description)))
	}
}
