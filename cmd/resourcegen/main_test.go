package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"

	"github.com/goliatone/go-resourcegen/internal/prompt"
	"github.com/goliatone/go-resourcegen/pkg/generator"
)

type scriptedDriver struct {
	selects []int
	confirm []bool
}

func (s *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	return "", errors.New("no input scripted")
}

func (s *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	if len(s.confirm) == 0 {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[0]
	s.confirm = s.confirm[1:]
	return val, nil
}

func (s *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	if len(s.selects) == 0 {
		return 0, errors.New("no select scripted")
	}
	val := s.selects[0]
	s.selects = s.selects[1:]
	return val, nil
}

type workspace struct {
	dir    string
	config string
	models string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "app.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	for _, stmt := range []string{
		`CREATE TABLE posts (id INTEGER PRIMARY KEY, title TEXT)`,
		`CREATE TABLE tags (
			id INTEGER PRIMARY KEY,
			name VARCHAR(64) NOT NULL,
			color VARCHAR(7) DEFAULT '#ffffff',
			created_at DATETIME,
			updated_at DATETIME
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	configPath := filepath.Join(dir, "database.yaml")
	writeFile(t, configPath, "default: local\nconnections:\n  local:\n    driver: sqlite\n    path: "+dbPath+"\n")

	models := filepath.Join(dir, "models")
	if err := os.MkdirAll(models, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(models, "app.yaml"), "models:\n  - name: Tag\n")

	return workspace{dir: dir, config: configPath, models: models}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func (w workspace) run(t *testing.T, driver prompt.Driver, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(&runner{stdout: &out, driver: driver})
	base := []string{
		"resourcegen",
		"--config", w.config,
		"--env-file", filepath.Join(w.dir, "missing.env"),
		"--models", w.models,
		"--log-level", "error",
	}
	err := app.RunContext(context.Background(), append(base, args...))
	return out.String(), err
}

func TestRunFormForTable(t *testing.T) {
	ws := newWorkspace(t)

	got, err := ws.run(t, nil, "--table", "tags", "--mode", "form", "--line-ending", "lf")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "$form->text('name', __('Name'));\n" +
		"$form->color('color', __('Color'))->default('#ffffff');\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunAllForModel(t *testing.T) {
	ws := newWorkspace(t)

	got, err := ws.run(t, nil, "--model", "Tag")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, fragment := range []string{
		"$form->color('color', __('Color'))->default('#ffffff');\r\n\r\n",
		"$show->field('created_at', __('Created at'));\r\n",
		"$grid->column('updated_at', __('Updated at'));\r\n",
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("output missing %q:\n%s", fragment, got)
		}
	}
}

func TestRunOpenAPI(t *testing.T) {
	ws := newWorkspace(t)

	got, err := ws.run(t, nil, "--model", "Tag", "--mode", "openapi", "--openapi-format", "json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(got, `"Tags"`) || !strings.Contains(got, `"openapi": "3.0.3"`) {
		t.Fatalf("unexpected openapi output:\n%s", got)
	}
}

func TestRunInteractive(t *testing.T) {
	ws := newWorkspace(t)
	target := filepath.Join(ws.dir, "tags.php")
	writeFile(t, target, "stale")

	// tables are listed as posts, tags; modes as form, show, grid, all, openapi
	driver := &scriptedDriver{selects: []int{1, 2}, confirm: []bool{true}}
	if _, err := ws.run(t, driver, "--interactive", "--output", target); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "$grid->column('id', __('Id'));\r\n" +
		"$grid->column('name', __('Name'));\r\n" +
		"$grid->column('color', __('Color'));\r\n" +
		"$grid->column('created_at', __('Created at'));\r\n" +
		"$grid->column('updated_at', __('Updated at'));\r\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunInteractiveKeepsExistingOutput(t *testing.T) {
	ws := newWorkspace(t)
	target := filepath.Join(ws.dir, "tags.php")
	writeFile(t, target, "stale")

	driver := &scriptedDriver{confirm: []bool{false}}
	if _, err := ws.run(t, driver, "--interactive", "--table", "tags", "--mode", "show", "--output", target); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "stale" {
		t.Fatalf("expected output to be left unchanged, got %q", data)
	}
}

func TestRunInteractivePrefixedConnection(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "wp.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE wp_posts (id INTEGER PRIMARY KEY, title VARCHAR(100) NOT NULL)`,
		`CREATE TABLE wp_tags (id INTEGER PRIMARY KEY, name VARCHAR(64))`,
		`CREATE TABLE legacy (id INTEGER PRIMARY KEY)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	db.Close()

	ws := workspace{dir: dir, config: filepath.Join(dir, "database.yaml"), models: dir}
	writeFile(t, ws.config, "connections:\n  blog:\n    driver: sqlite\n    prefix: wp_\n    path: "+dbPath+"\n")

	// listed as posts, tags once the prefix is removed
	got, err := ws.run(t, &scriptedDriver{selects: []int{0}}, "--interactive", "--mode", "form")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff("$form->text('title', __('Title'));\r\n", got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

type staticLister []string

func (s staticLister) Tables(context.Context, string) ([]string, error) {
	return s, nil
}

func TestTableNames(t *testing.T) {
	lister := staticLister{"legacy", "wp_", "wp_posts", "wp_tags"}

	got, err := tableNames(context.Background(), lister, "wp_")
	if err != nil {
		t.Fatalf("tableNames: %v", err)
	}
	if diff := cmp.Diff([]string{"posts", "tags"}, got); diff != "" {
		t.Fatalf("tables mismatch (-want +got):\n%s", diff)
	}

	got, err = tableNames(context.Background(), lister, "")
	if err != nil {
		t.Fatalf("tableNames: %v", err)
	}
	if diff := cmp.Diff([]string(lister), got); diff != "" {
		t.Fatalf("tables mismatch (-want +got):\n%s", diff)
	}
}

func TestRunCustomTemplates(t *testing.T) {
	ws := newWorkspace(t)
	templates := filepath.Join(ws.dir, "templates")
	if err := os.MkdirAll(templates, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(templates, "grid.twig"), "'{{ column }}' => __('{{ label }}'),")

	got, err := ws.run(t, nil, "--table", "tags", "--mode", "grid", "--line-ending", "lf",
		"--templates", templates, "--template-ext", "twig")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "'id' => __('Id'),\n" +
		"'name' => __('Name'),\n" +
		"'color' => __('Color'),\n" +
		"'created_at' => __('Created at'),\n" +
		"'updated_at' => __('Updated at'),\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunErrors(t *testing.T) {
	ws := newWorkspace(t)

	if _, err := ws.run(t, nil, "--mode", "form"); err == nil || !strings.Contains(err.Error(), "--model or --table") {
		t.Fatalf("expected missing table error, got %v", err)
	}
	if _, err := ws.run(t, nil, "--table", "tags", "--mode", "bogus"); !errors.Is(err, generator.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	if _, err := ws.run(t, nil, "--table", "tags", "--line-ending", "cr"); err == nil {
		t.Fatalf("expected line ending error")
	}
	if _, err := ws.run(t, nil, "--table", "tags", "--log-level", "loud"); err == nil {
		t.Fatalf("expected log level error")
	}
}
