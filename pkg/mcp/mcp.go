package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/lavigneer/gdscript-lsp/pkg/config"
	"github.com/lavigneer/gdscript-lsp/pkg/lint"
	"github.com/lavigneer/gdscript-lsp/pkg/reporter"
	"github.com/lavigneer/gdscript-lsp/pkg/symbols"
	mcp_golang "github.com/metoro-io/mcp-golang"
)

// Executor exposes the scripts of one workspace to MCP clients.
type Executor struct {
	root     string
	executor *lint.Executor
	loader   *symbols.Loader
}

func New(root string, cfg *config.Config) *Executor {
	return &Executor{
		root:     root,
		executor: lint.New(cfg.Lint),
		loader:   symbols.NewLoader(),
	}
}

func (e *Executor) Register(server *mcp_golang.Server) error {
	var errs error
	err := e.RegisterTools(server)
	errs = errors.Join(errs, err)
	err = e.RegisterScripts(server)
	errs = errors.Join(errs, err)
	return errs
}

type ScriptArgs struct {
	Path string `json:"path" jsonschema:"required,description=Path of the GDScript file, relative to the workspace root"`
}

func (e *Executor) RegisterTools(server *mcp_golang.Server) error {
	var errs error
	err := server.RegisterTool("validate_script", "Reports the diagnostics of a GDScript file", func(arguments ScriptArgs) (*mcp_golang.ToolResponse, error) {
		report, err := e.Validate(context.Background(), arguments.Path)
		if err != nil {
			return nil, err
		}
		return mcp_golang.NewToolResponse(mcp_golang.NewTextContent(report)), nil
	})
	errs = errors.Join(errs, err)
	err = server.RegisterTool("script_symbols", "Lists the class-level declarations of a GDScript file", func(arguments ScriptArgs) (*mcp_golang.ToolResponse, error) {
		data, err := e.Symbols(context.Background(), arguments.Path)
		if err != nil {
			return nil, err
		}
		return mcp_golang.NewToolResponse(mcp_golang.NewTextContent(data)), nil
	})
	errs = errors.Join(errs, err)
	return errs
}

// RegisterScripts publishes the symbols of every script as a resource.
func (e *Executor) RegisterScripts(server *mcp_golang.Server) error {
	paths, err := lint.ScriptPaths([]string{e.root})
	if err != nil {
		return err
	}
	var errs error
	for _, p := range paths {
		rel, err := filepath.Rel(e.root, p)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		u := fmt.Sprintf("script://%s", filepath.ToSlash(rel))
		err = server.RegisterResource(u, rel, "Declarations of "+rel, "text/yaml", func() (*mcp_golang.ResourceResponse, error) {
			data, err := e.Symbols(context.Background(), rel)
			if err != nil {
				return nil, err
			}
			return mcp_golang.NewResourceResponse(mcp_golang.NewTextEmbeddedResource(u, data, "text/yaml")), nil
		})
		errs = errors.Join(errs, err)
	}
	return errs
}

// Validate lints the script at path and renders the report as text.
func (e *Executor) Validate(ctx context.Context, path string) (string, error) {
	abs := e.resolve(path)
	results, err := e.executor.LintPaths(ctx, []string{abs})
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	(&reporter.Default{Out: &out}).Report(ctx, reporter.Results(results))
	return out.String(), nil
}

// Symbols renders the declarations of the script at path as YAML.
func (e *Executor) Symbols(ctx context.Context, path string) (string, error) {
	s, err := e.loader.Load(ctx, e.resolve(path))
	if err != nil {
		return "", err
	}
	data, err := yaml.MarshalContext(ctx, s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (e *Executor) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(e.root, path)
}
