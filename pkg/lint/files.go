package lint

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/a-h/templ/lsp/protocol"
	"golang.org/x/sync/errgroup"
)

const ScriptExtension = ".gd"

// ScriptPaths expands roots into the scripts they contain. Directories are
// walked recursively, skipping hidden ones such as .godot and .git.
func ScriptPaths(roots []string) ([]string, error) {
	paths := []string{}
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == ScriptExtension {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// LintPaths lints every script concurrently. The first unreadable file stops
// the run.
func (e *Executor) LintPaths(ctx context.Context, paths []string) (map[string][]protocol.Diagnostic, error) {
	var (
		mu      sync.Mutex
		results = make(map[string][]protocol.Diagnostic, len(paths))
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			diagnostics := e.Lint(NewFile(path, string(text), nil))
			mu.Lock()
			results[path] = diagnostics
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
