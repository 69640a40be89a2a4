package main

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/Drolfothesgnir/hintstack/combiner"
	"github.com/Drolfothesgnir/hintstack/display"
	"github.com/Drolfothesgnir/hintstack/element"
	"github.com/Drolfothesgnir/hintstack/sink"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

const defaultViewer = "preview"

type viewerFile struct {
	ID          string  `yaml:"id" binding:"max=64"`
	AspectRatio float64 `yaml:"aspect_ratio" binding:"gte=0,lte=10"`
}

// elementFile is the YAML document read by render and inspect.
type elementFile struct {
	Viewer           viewerFile           `yaml:"viewer"`
	MaxContentLength int                  `yaml:"max_content_length" binding:"gte=0,lte=32768"`
	Elements         []element.Definition `yaml:"elements" binding:"required,min=1,dive"`
}

// built is an element file shown on a display.
type built struct {
	viewer   string
	display  *display.Display
	elements []*element.Element
}

func loadElementFile(path string) (*elementFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseElementFile(data)
}

func parseElementFile(data []byte) (*elementFile, error) {
	var f elementFile
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("cannot parse element file: %w", err)
	}

	if err := fileValidator().Struct(f); err != nil {
		return nil, fmt.Errorf("invalid element file: %w", err)
	}

	return &f, nil
}

// fileValidator checks the same `binding` rules the HTTP API does, naming
// fields by their YAML key.
func fileValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (f *elementFile) viewerID() string {
	if f.Viewer.ID == "" {
		return defaultViewer
	}
	return f.Viewer.ID
}

// build shows every element of the file, in file order, on a fresh display.
func (f *elementFile) build() (*built, error) {
	c := combiner.New(combiner.Options{MaxContentLength: f.MaxContentLength}, sink.NewLogSink(log.Logger))
	registry := display.NewRegistry(c, display.Options{AspectRatio: f.Viewer.AspectRatio, Concurrency: 1})

	b := &built{
		viewer:   f.viewerID(),
		display:  registry.Get(f.viewerID()),
		elements: make([]*element.Element, 0, len(f.Elements)),
	}

	for i, def := range f.Elements {
		el, err := def.Build()
		if err != nil {
			return nil, fmt.Errorf("elements[%d]: %w", i, err)
		}

		if err := b.display.Show(def.ElementTag(), el); err != nil {
			return nil, fmt.Errorf("elements[%d]: %w", i, err)
		}

		b.elements = append(b.elements, el)
	}

	log.Debug().Str("viewer", b.viewer).Int("elements", len(b.elements)).Msg("element file loaded")

	return b, nil
}

// frame returns the payload the viewer would receive and its decoded form.
func (b *built) frame() ([]byte, combiner.Frame, error) {
	payload, err := b.display.Preview()
	if err != nil {
		return nil, combiner.Frame{}, err
	}

	frame, err := combiner.Decode(payload)
	if err != nil {
		return nil, combiner.Frame{}, fmt.Errorf("cannot decode payload: %w", err)
	}

	return payload, frame, nil
}
