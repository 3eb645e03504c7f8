package lsp

import (
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "wasc"

var log = commonlog.GetLogger("wasc.lsp")

// LSPServer publishes syntax diagnostics for open documents and answers
// document symbol requests.
type LSPServer struct {
	workspace *Workspace
	watcher   *IncludeWatcher
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) RunTCP(address string) error {
	return ls.server.RunTCP(address)
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}
	log.Infof("initializing workspace %s", rootDir)

	ls.workspace = NewWorkspace(rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

// initialized reports the diagnostics of every project file up front.
func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.watcher = NewIncludeWatcher(ls.workspace, ctx.Notify)
	ls.watcher.Start()

	docs, err := ls.workspace.ScanAll()
	if err != nil {
		log.Warningf("could not scan workspace: %s", err.Error())
		return nil
	}
	for _, doc := range docs {
		if len(doc.Source.Diagnostics) > 0 {
			publish(ctx.Notify, doc)
		}
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc, err := ls.workspace.Update(params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)
	if err != nil {
		log.Warningf("%s", err.Error())
		return nil
	}
	publish(ctx.Notify, doc)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		log.Warningf("ignoring incremental change to %s", params.TextDocument.URI)
		return nil
	}
	doc, err := ls.workspace.Update(params.TextDocument.URI, params.TextDocument.Version, textChange.Text)
	if err != nil {
		log.Warningf("%s", err.Error())
		return nil
	}
	publish(ctx.Notify, doc)
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	doc := ls.workspace.Close(params.TextDocument.URI)
	if doc == nil {
		return nil
	}
	withdraw(ctx.Notify, doc)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	var doc *Document
	var err error
	if params.Text != nil {
		version := int32(0)
		if prev := ls.workspace.Document(params.TextDocument.URI); prev != nil {
			version = prev.Version
		}
		doc, err = ls.workspace.Update(params.TextDocument.URI, version, *params.Text)
	} else {
		doc, err = ls.workspace.Reload(params.TextDocument.URI)
	}
	if err != nil {
		log.Warningf("%s", err.Error())
		return nil
	}
	publish(ctx.Notify, doc)
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := ls.workspace.Document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return documentSymbols(doc.Program, doc.Source), nil
}

func publish(notify glsp.NotifyFunc, doc *Document) {
	for uri, diagnostics := range diagnosticsByURI(doc) {
		params := protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: diagnostics,
		}
		if uri == doc.URI && doc.Version > 0 {
			version := protocol.UInteger(doc.Version)
			params.Version = &version
		}
		notify(protocol.ServerTextDocumentPublishDiagnostics, params)
	}
}

// withdraw clears everything publish reported for doc.
func withdraw(notify glsp.NotifyFunc, doc *Document) {
	for uri := range diagnosticsByURI(doc) {
		notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: []protocol.Diagnostic{},
		})
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
