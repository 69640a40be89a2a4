package main

import (
	"image/color"

	"github.com/Drolfothesgnir/hintstack/element"
	"github.com/Drolfothesgnir/hintstack/parser"
	"github.com/Drolfothesgnir/hintstack/richtext"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print a sample element file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(exampleFile())
		},
	}
}

func exampleFile() elementFile {
	var title richtext.Builder
	title.Size(150, parser.UnitPercent).
		Color(color.RGBA{R: 0xff, G: 0xd7, A: 0xff}).
		Text("Round {0}").
		Close("color").
		Close("size").
		Linebreak().
		Text("Press {1} to ready up")

	var footer richtext.Builder
	footer.Align(richtext.AlignRight).
		Literal("<players>").
		Text(": {0}").
		Close("align")

	z := 2

	return elementFile{
		Viewer: viewerFile{ID: "alice", AspectRatio: 16.0 / 9.0},
		Elements: []element.Definition{
			{
				Tag:           "title",
				Text:          title.String(),
				Position:      700,
				VerticalAlign: "center",
				ZIndex:        &z,
				Parameters: []element.ParameterDefinition{
					{Type: element.ParameterText, Value: "3"},
					{Type: element.ParameterKeybind, KeybindID: 7},
				},
			},
			{
				Tag:             "footer",
				Text:            footer.String(),
				Position:        100,
				ResolutionAlign: true,
				Parameters: []element.ParameterDefinition{
					{Type: element.ParameterText, Value: "12"},
				},
			},
		},
	}
}
