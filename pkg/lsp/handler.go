package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/a-h/templ/lsp/protocol"
	"github.com/a-h/templ/lsp/uri"
	"github.com/lavigneer/gdscript-lsp/pkg/config"
	"github.com/lavigneer/gdscript-lsp/pkg/diagnostic"
	"github.com/lavigneer/gdscript-lsp/pkg/host"
	"github.com/lavigneer/gdscript-lsp/pkg/project"
	"github.com/lavigneer/gdscript-lsp/pkg/symbols"
	"github.com/lavigneer/gdscript-lsp/pkg/watcher"
	"github.com/sourcegraph/jsonrpc2"
)

var ErrNotInitialized = errors.New("server not initialized")

type Handler struct {
	conn      *jsonrpc2.Conn
	logger    *slog.Logger
	config    *config.Config
	settings  *config.Store
	workspace *project.Workspace
	window    *host.State
	loader    *symbols.Loader
	engine    *diagnostic.Engine
	watcher   *watcher.WindowWatcher
	shutdown  bool
}

//nolint:ireturn
func NewHandler(logger *slog.Logger) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(newHandler(logger).Handle)
}

func newHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := config.Default()
	return &Handler{
		logger:    logger,
		config:    cfg,
		settings:  config.NewStore(cfg.Settings),
		workspace: project.New(""),
		window:    host.NewState(logger),
	}
}

// Handle implements jsonrpc2.Handler.
//
//nolint:nilnil
func (h *Handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	h.logger.Debug("Handling request", "method", req.Method)
	if h.shutdown && req.Method != protocol.MethodExit {
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeInvalidRequest,
			Message: fmt.Sprintf("server is shutting down: %s", req.Method),
		}
	}
	switch req.Method {
	case protocol.MethodInitialize:
		return h.handleInitialize(ctx, conn, req)
	case protocol.MethodInitialized:
		h.activate(ctx)
		return nil, nil
	case protocol.MethodShutdown:
		h.deactivate()
		return nil, nil
	case protocol.MethodExit:
		return nil, conn.Close()
	case protocol.MethodTextDocumentDidOpen:
		return nil, h.handleTextDocumentDidOpen(ctx, req)
	case protocol.MethodTextDocumentDidClose:
		return nil, h.handleTextDocumentDidClose(ctx, req)
	case protocol.MethodTextDocumentDidChange:
		return nil, h.handleTextDocumentDidChange(ctx, req)
	case protocol.MethodTextDocumentDidSave:
		return nil, h.handleTextDocumentDidSave(ctx, req)
	case protocol.MethodWorkspaceDidChangeConfiguration:
		return nil, h.handleWorkspaceDidChangeConfiguration(ctx, req)
	case MethodDidChangeActiveTextEditor:
		return nil, h.handleDidChangeActiveTextEditor(ctx, req)
	case MethodDidChangeTextEditorSelection:
		return nil, h.handleDidChangeTextEditorSelection(ctx, req)
	case MethodDidChangeTextEditorOptions:
		return nil, h.handleDidChangeTextEditorOptions(ctx, req)
	case MethodDidChangeTextEditorViewColumn:
		return nil, h.handleDidChangeTextEditorViewColumn(ctx, req)
	}
	return nil, &jsonrpc2.Error{
		Code:    jsonrpc2.CodeMethodNotFound,
		Message: fmt.Sprintf("method not supported: %s", req.Method),
	}
}

func (h *Handler) handleInitialize(_ context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	var params protocol.InitializeParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	h.conn = conn

	if len(params.WorkspaceFolders) > 0 {
		dir := uri.New(params.WorkspaceFolders[0].URI).Filename()
		workspaceRoot, err := config.FindWorkspaceRoot(dir)
		if err != nil {
			h.logger.Debug("Using workspace folder as root", "folder", dir, "error", err)
			workspaceRoot = dir
		}
		cfg, err := config.NewWithDefaults(workspaceRoot)
		if err != nil {
			return nil, err
		}
		h.config = cfg
		h.settings = config.NewStore(cfg.Settings)
		h.workspace = project.New(workspaceRoot)
	}

	h.logger.Debug("Initialized", "workspaceFolders", params.WorkspaceFolders, "root", h.workspace.Root())

	return protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				Change:    protocol.TextDocumentSyncKindFull,
				OpenClose: true,
				Save:      &protocol.SaveOptions{IncludeText: false},
			},
		},
	}, nil
}

// activate wires the watcher to the window. It runs once, on initialized.
func (h *Handler) activate(ctx context.Context) {
	if h.watcher != nil {
		return
	}
	h.loader = symbols.NewLoader(symbols.WithOverlay(h.workspace), symbols.WithLogger(h.logger))
	h.engine = diagnostic.New(h.config.Lint, h, h.logger)
	gate := watcher.NewGate(ctx, h.loader, h.engine, h.settings, h.logger)
	h.watcher = watcher.NewWindowWatcher(h.window, gate, h.engine, h.logger)
	h.logger.Info("Watching editor changes")
}

func (h *Handler) deactivate() {
	h.shutdown = true
	if h.watcher == nil {
		return
	}
	h.watcher.Dispose()
	h.watcher.Gate().Wait()
	h.logger.Info("Stopped watching editor changes")
}

// Publish implements diagnostic.Publisher.
func (h *Handler) Publish(ctx context.Context, params protocol.PublishDiagnosticsParams) error {
	if h.conn == nil {
		return ErrNotInitialized
	}
	return h.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, params)
}

func (h *Handler) handleWorkspaceDidChangeConfiguration(_ context.Context, req *jsonrpc2.Request) error {
	var params protocol.DidChangeConfigurationParams
	if err := unmarshalParams(req, &params); err != nil {
		return err
	}
	h.settings.Update(params.Settings)
	h.logger.Debug("Configuration changed", "settings", params.Settings)
	return nil
}

func unmarshalParams(req *jsonrpc2.Request, v any) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: fmt.Sprintf("missing params: %s", req.Method)}
	}
	return json.Unmarshal(*req.Params, v)
}
