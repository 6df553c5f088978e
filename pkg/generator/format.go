package generator

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Mode names one of the generated sections.
type Mode string

const (
	ModeForm Mode = "form"
	ModeShow Mode = "show"
	ModeGrid Mode = "grid"
)

// Modes lists every mode in output order.
var Modes = []Mode{ModeForm, ModeShow, ModeGrid}

// ErrUnknownMode is returned for mode names outside Modes.
var ErrUnknownMode = errors.New("generator: unknown mode")

// ParseMode validates a mode name.
func ParseMode(raw string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Modes {
		if mode == known {
			return mode, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMode, raw)
}

// Line carries the values available to a format for a single column.
type Line struct {
	Widget  string
	Column  string
	Label   string
	Default string
	// HasDefault is set when the form should emit a default clause.
	HasDefault bool
}

// Format renders one declaration without the trailing line ending.
type Format interface {
	Render(line Line) (string, error)
}

// FormatFunc adapts a function to Format.
type FormatFunc func(line Line) (string, error)

// Render implements Format.
func (fn FormatFunc) Render(line Line) (string, error) {
	return fn(line)
}

const (
	formFieldFormat  = "$form->%s('%s', __('%s'))"
	showFieldFormat  = "$show->field('%s', __('%s'))"
	gridColumnFormat = "$grid->column('%s', __('%s'))"
	defaultClause    = "->default(%s)"
	terminator       = ";"
)

// FormField is the built-in form declaration.
var FormField Format = FormatFunc(func(line Line) (string, error) {
	out := fmt.Sprintf(formFieldFormat, line.Widget, line.Column, line.Label)
	if line.HasDefault {
		out += fmt.Sprintf(defaultClause, line.Default)
	}
	return out + terminator, nil
})

// ShowField is the built-in show-page declaration.
var ShowField Format = FormatFunc(func(line Line) (string, error) {
	return fmt.Sprintf(showFieldFormat, line.Column, line.Label) + terminator, nil
})

// GridColumn is the built-in grid declaration.
var GridColumn Format = FormatFunc(func(line Line) (string, error) {
	return fmt.Sprintf(gridColumnFormat, line.Column, line.Label) + terminator, nil
})

// Formats stores the format used for each mode.
type Formats struct {
	mu      sync.RWMutex
	formats map[Mode]Format
}

// NewFormats returns a registry holding the built-in formats.
func NewFormats() *Formats {
	return &Formats{
		formats: map[Mode]Format{
			ModeForm: FormField,
			ModeShow: ShowField,
			ModeGrid: GridColumn,
		},
	}
}

// Set replaces the format of mode.
func (f *Formats) Set(mode Mode, format Format) error {
	if format == nil {
		return fmt.Errorf("generator: format for %q is required", mode)
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.formats[mode] = format
	return nil
}

// Get returns the format of mode.
func (f *Formats) Get(mode Mode) (Format, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	format, ok := f.formats[mode]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, mode)
	}
	return format, nil
}
