package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	resourcegen "github.com/goliatone/go-resourcegen"
	"github.com/goliatone/go-resourcegen/internal/prompt"
	"github.com/goliatone/go-resourcegen/pkg/config"
	"github.com/goliatone/go-resourcegen/pkg/generator"
	"github.com/goliatone/go-resourcegen/pkg/introspect"
	"github.com/goliatone/go-resourcegen/pkg/model"
	"github.com/goliatone/go-resourcegen/pkg/openapi"
)

const defaultConnectionName = "default"

type runner struct {
	stdout io.Writer
	// driver backs interactive prompts; nil uses the terminal.
	driver prompt.Driver
}

func (r *runner) run(c *cli.Context) error {
	logger, err := newLogger(c.String("log-level"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := c.Context
	interactive := c.Bool("interactive")
	wizard := prompt.NewWizard(r.driver)

	if err := config.LoadEnvFiles(c.StringSlice("env-file")...); err != nil {
		return err
	}
	file, err := loadConnections(c.String("config"))
	if err != nil {
		return err
	}

	def, err := resolveDefinition(c)
	if err != nil {
		return err
	}

	if interactive && def.Connection == "" && file.Default == "" {
		name, err := wizard.ChooseConnection(ctx, file.Names(), "")
		if err != nil {
			return err
		}
		def.Connection = name
	}

	if def.Name == "" && def.TableName == "" {
		if !interactive {
			return errors.New("either --model or --table is required")
		}
		tables, err := listTables(ctx, file, def.Connection, logger)
		if err != nil {
			return err
		}
		table, err := wizard.ChooseTable(ctx, tables)
		if err != nil {
			return err
		}
		def.TableName = table
	}

	output := strings.ToLower(strings.TrimSpace(c.String("mode")))
	if interactive && !c.IsSet("mode") {
		choices := append(lo.Map(generator.Modes, func(mode generator.Mode, _ int) string {
			return string(mode)
		}), outputAll, outputOpenAPI)
		if output, err = wizard.ChooseMode(ctx, choices, outputAll); err != nil {
			return err
		}
	}

	if output != outputAll && output != outputOpenAPI {
		if _, err := generator.ParseMode(output); err != nil {
			return err
		}
	}

	ending, err := parseLineEnding(c.String("line-ending"))
	if err != nil {
		return err
	}
	options, err := generatorOptions(c, ending)
	if err != nil {
		return err
	}

	handle, err := resourcegen.FromDefinition(ctx, def, file, options...)
	if err != nil {
		return err
	}
	defer func() {
		if err := handle.Close(); err != nil {
			logger.Warn("close connection", zap.Error(err))
		}
	}()

	ref := handle.TableRef()
	logger.Debug("generating",
		zap.String("table", ref.String()),
		zap.String("connection", def.Connection),
		zap.String("mode", output),
		zap.Strings("reserved", model.ReservedColumns(handle.Model())),
	)

	content, err := render(ctx, handle, output, c.String("openapi-format"), ending)
	if err != nil {
		return err
	}

	target := strings.TrimSpace(c.String("output"))
	if target == "" {
		_, err = io.WriteString(r.stdout, content)
		return err
	}
	if interactive {
		if _, statErr := os.Stat(target); statErr == nil {
			ok, err := wizard.ConfirmOverwrite(ctx, target)
			if err != nil {
				return err
			}
			if !ok {
				logger.Info("output left unchanged", zap.String("path", target))
				return nil
			}
		}
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("output written", zap.String("path", target), zap.String("table", ref.String()), zap.String("mode", output))
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	if atomic.Level() == zap.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = atomic
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// loadConnections reads the connection file, or falls back to the DB_*
// environment variables under the name "default".
func loadConnections(path string) (config.File, error) {
	if strings.TrimSpace(path) != "" {
		return config.LoadFile(path)
	}
	conn, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		return config.File{}, err
	}
	return config.File{
		Default:     defaultConnectionName,
		Connections: map[string]config.Connection{defaultConnectionName: conn},
	}, nil
}

func resolveDefinition(c *cli.Context) (model.Definition, error) {
	var def model.Definition
	if name := strings.TrimSpace(c.String("model")); name != "" {
		catalog, err := model.LoadFS(os.DirFS(c.String("models")))
		if err != nil {
			return model.Definition{}, err
		}
		if def, err = catalog.Lookup(name); err != nil {
			return model.Definition{}, err
		}
	} else {
		def.TableName = strings.TrimSpace(c.String("table"))
	}
	if c.IsSet("connection") {
		def.Connection = strings.TrimSpace(c.String("connection"))
	}
	return def, nil
}

// listTables opens the connection and lists its tables for the wizard.
func listTables(ctx context.Context, file config.File, connection string, logger *zap.Logger) ([]string, error) {
	conn, err := file.Connection(connection)
	if err != nil {
		return nil, err
	}
	inspector, err := introspect.Open(ctx, conn)
	if err != nil {
		return nil, err
	}
	defer inspector.Close()

	tables, err := tableNames(ctx, inspector, conn.Prefix)
	if err != nil {
		logger.Warn("list tables", zap.Error(err))
		return nil, nil
	}
	return tables, nil
}

// tableNames returns the tables reachable through a connection with the given
// table prefix, with the prefix removed. The prefix is added back when the
// chosen table is read, so tables without it cannot be addressed and are
// left out.
func tableNames(ctx context.Context, lister introspect.TableLister, prefix string) ([]string, error) {
	tables, err := lister.Tables(ctx, "")
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		return tables, nil
	}
	return lo.FilterMap(tables, func(table string, _ int) (string, bool) {
		name, ok := strings.CutPrefix(table, prefix)
		return name, ok && name != ""
	}), nil
}

func generatorOptions(c *cli.Context, ending string) ([]resourcegen.Option, error) {
	options := []resourcegen.Option{generator.WithLineEnding(ending)}

	if dir := strings.TrimSpace(c.String("templates")); dir != "" {
		formats, err := generator.LoadTemplates(
			generator.WithTemplateDir(dir),
			generator.WithTemplateExtension(c.String("template-ext")),
		)
		if err != nil {
			return nil, err
		}
		options = append(options, generator.WithFormats(formats))
	}
	return options, nil
}

func parseLineEnding(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "crlf":
		return "\r\n", nil
	case "lf":
		return "\n", nil
	default:
		return "", fmt.Errorf("unsupported line ending %q", raw)
	}
}

// render produces the requested output. "all" separates the sections with an
// empty line.
func render(ctx context.Context, handle *resourcegen.Handle, output, format, ending string) (string, error) {
	switch output {
	case outputAll:
		sections, err := handle.GenerateAll(ctx)
		if err != nil {
			return "", err
		}
		return strings.Join([]string{sections.Form, sections.Show, sections.Grid}, ending), nil
	case outputOpenAPI:
		doc, err := resourcegen.OpenAPI(ctx, handle.Generator)
		if err != nil {
			return "", err
		}
		out, err := openapi.Marshal(doc, format)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		mode, err := generator.ParseMode(output)
		if err != nil {
			return "", err
		}
		return handle.Generate(ctx, mode)
	}
}
