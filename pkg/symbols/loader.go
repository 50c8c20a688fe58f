package symbols

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Overlay supplies unsaved editor contents, which take precedence over disk.
type Overlay interface {
	Text(path string) (string, bool)
}

type cacheEntry struct {
	sum     uint64
	symbols *Symbols
}

// Loader loads and caches the symbols of scripts by path. Concurrent loads of
// the same path and content share one parse.
type Loader struct {
	overlay  Overlay
	readFile func(string) ([]byte, error)
	logger   *slog.Logger

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]cacheEntry
}

type LoaderOption func(*Loader)

func WithOverlay(o Overlay) LoaderOption {
	return func(l *Loader) { l.overlay = o }
}

func WithReadFile(fn func(string) ([]byte, error)) LoaderOption {
	return func(l *Loader) { l.readFile = fn }
}

func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		readFile: os.ReadFile,
		logger:   slog.Default(),
		cache:    make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the symbols of the current text of path. Loads of the same
// text share one parse; a load issued after the text changed never sees the
// symbols of the older text.
func (l *Loader) Load(ctx context.Context, path string) (*Symbols, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := l.text(path)
	if err != nil {
		return nil, fmt.Errorf("loading symbols for %s: %w", path, err)
	}
	sum := checksum(text)
	v, _, shared := l.group.Do(fmt.Sprintf("%s\x00%x", path, sum), func() (any, error) {
		return l.parse(path, text, sum), nil
	})
	l.logger.Debug("Loaded symbols", "path", path, "shared", shared)
	//nolint:forcetypeassert // only *Symbols is stored in the group
	return v.(*Symbols), nil
}

// Invalidate forgets the cached symbols of path.
func (l *Loader) Invalidate(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cache, path)
}

func (l *Loader) text(path string) (string, error) {
	if l.overlay != nil {
		if text, ok := l.overlay.Text(path); ok {
			return text, nil
		}
	}
	data, err := l.readFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (l *Loader) parse(path, text string, sum uint64) *Symbols {
	l.mu.Lock()
	entry, ok := l.cache[path]
	l.mu.Unlock()
	if ok && entry.sum == sum {
		return entry.symbols
	}

	s := Parse(path, text)
	l.mu.Lock()
	l.cache[path] = cacheEntry{sum: sum, symbols: s}
	l.mu.Unlock()
	return s
}

func checksum(text string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return h.Sum64()
}
