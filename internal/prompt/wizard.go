package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Wizard fills in the generation inputs the user left out on the command
// line.
type Wizard struct {
	driver Driver
}

// NewWizard wraps driver. A nil driver falls back to the survey driver.
func NewWizard(driver Driver) *Wizard {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Wizard{driver: driver}
}

// ChooseConnection asks for one of the configured connection names. A single
// name is returned without prompting.
func (w *Wizard) ChooseConnection(ctx context.Context, names []string, current string) (string, error) {
	if len(names) == 1 {
		return names[0], nil
	}
	return w.choose(ctx, "Connection", names, current)
}

// ChooseTable lets the user pick one of tables. When the list is empty (the
// driver cannot enumerate tables) the name is typed instead.
func (w *Wizard) ChooseTable(ctx context.Context, tables []string) (string, error) {
	if len(tables) == 0 {
		value, err := w.driver.Input(ctx, InputConfig{
			Message:   "Table",
			Help:      "Database table to scaffold, optionally prefixed with the schema (db.table).",
			Validator: requireValue,
		})
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(value), nil
	}
	return w.choose(ctx, "Table", tables, "")
}

// ChooseMode asks which sections to generate.
func (w *Wizard) ChooseMode(ctx context.Context, modes []string, current string) (string, error) {
	return w.choose(ctx, "Output", modes, current)
}

// ConfirmOverwrite asks before replacing an existing output file.
func (w *Wizard) ConfirmOverwrite(ctx context.Context, path string) (bool, error) {
	return w.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("%s exists. Overwrite?", path),
	})
}

func (w *Wizard) choose(ctx context.Context, message string, options []string, current string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoChoices, strings.ToLower(message))
	}
	idx, err := w.driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      options,
		DefaultIndex: indexOf(options, current),
		PageSize:     15,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("prompt: %s selection out of range", strings.ToLower(message))
	}
	return options[idx], nil
}

func requireValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}
