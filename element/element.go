// Package element holds the caller-owned pieces of an overlay: the text of
// an element, how it is placed, and how often its text changes.
package element

import (
	"fmt"
	"sync"
	"time"

	"github.com/Drolfothesgnir/hintstack/parser"
)

// ContentFunc returns the text of an element for a viewer.
type ContentFunc func(viewer string) (string, error)

type kind uint8

const (
	kindBasic kind = iota
	kindDynamic
	kindCached
)

func (k kind) String() string {
	switch k {
	case kindDynamic:
		return "dynamic"
	case kindCached:
		return "cached"
	default:
		return "basic"
	}
}

type cacheEntry struct {
	form      parser.ParsedForm
	expiresAt time.Time
}

// Element is one block of rich text shown in a display.
//
// An Element is safe for concurrent use; it may be shown to many viewers at
// once.
type Element struct {
	settings Settings
	kind     kind

	text    string
	content ContentFunc
	ttl     time.Duration
	now     func() time.Time

	once  sync.Once
	basic parser.ParsedForm

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewBasic returns an element with fixed text. The text is parsed once, on
// first use.
func NewBasic(text string, s Settings) (*Element, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Element{settings: s, kind: kindBasic, text: text}, nil
}

// NewDynamic returns an element whose text is produced by fn and parsed on
// every combine.
func NewDynamic(fn ContentFunc, s Settings) (*Element, error) {
	if fn == nil {
		return nil, newArgumentError("content", "content function is nil")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Element{settings: s, kind: kindDynamic, content: fn}, nil
}

// NewCached returns an element whose text is produced by fn and reused per
// viewer for ttl.
func NewCached(fn ContentFunc, ttl time.Duration, s Settings) (*Element, error) {
	if fn == nil {
		return nil, newArgumentError("content", "content function is nil")
	}
	if ttl <= 0 {
		return nil, newArgumentError("ttl", "must be positive")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Element{
		settings: s,
		kind:     kindCached,
		content:  fn,
		ttl:      ttl,
		now:      time.Now,
		cache:    make(map[string]cacheEntry),
	}, nil
}

// Settings returns the settings the element was created with.
func (e *Element) Settings() Settings {
	return e.settings
}

func (e *Element) ZIndex() int {
	return e.settings.ZIndex
}

func (e *Element) UpdateInterval() time.Duration {
	return e.settings.UpdateInterval
}

// ParsedForm returns the parsed text of the element for viewer. An error or
// a panic of the content function is returned as an error.
func (e *Element) ParsedForm(viewer string) (pf parser.ParsedForm, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s element content panicked: %v", e.kind, r)
		}
	}()

	switch e.kind {
	case kindBasic:
		e.once.Do(func() {
			e.basic = parser.Parse(e.text, e.settings.parserSettings())
		})
		return e.basic, nil

	case kindCached:
		return e.cached(viewer)

	default:
		return e.parse(viewer)
	}
}

// Invalidate drops the cached parses of a cached element. It does nothing for
// other kinds.
func (e *Element) Invalidate() {
	if e.kind != kindCached {
		return
	}

	e.mu.Lock()
	clear(e.cache)
	e.mu.Unlock()
}

func (e *Element) cached(viewer string) (parser.ParsedForm, error) {
	now := e.now()

	e.mu.Lock()
	entry, ok := e.cache[viewer]
	e.mu.Unlock()

	if ok && now.Before(entry.expiresAt) {
		return entry.form, nil
	}

	pf, err := e.parse(viewer)
	if err != nil {
		return parser.ParsedForm{}, err
	}

	e.mu.Lock()
	e.cache[viewer] = cacheEntry{form: pf, expiresAt: now.Add(e.ttl)}
	e.mu.Unlock()

	return pf, nil
}

func (e *Element) parse(viewer string) (parser.ParsedForm, error) {
	text, err := e.content(viewer)
	if err != nil {
		return parser.ParsedForm{}, fmt.Errorf("%s element content: %w", e.kind, err)
	}
	return parser.Parse(text, e.settings.parserSettings()), nil
}
