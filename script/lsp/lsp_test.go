package lsp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/wasc/script/parser"
)

type notification struct {
	method string
	params protocol.PublishDiagnosticsParams
}

func newTestServer(t *testing.T, rootDir string) (*LSPServer, *glsp.Context, *[]notification) {
	t.Helper()
	var sent []notification
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			p, ok := params.(protocol.PublishDiagnosticsParams)
			require.True(t, ok, "unexpected params %T", params)
			sent = append(sent, notification{method: method, params: p})
		},
	}
	return &LSPServer{workspace: NewWorkspace(rootDir)}, ctx, &sent
}

func byURI(sent []notification) map[string][]protocol.Diagnostic {
	out := make(map[string][]protocol.Diagnostic)
	for _, n := range sent {
		out[n.params.URI] = n.params.Diagnostics
	}
	return out
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{"file:///tmp/main.as", "/tmp/main.as"},
		{"file:///tmp/a%20b/../c.as", "/tmp/c.as"},
		{"untitled:Untitled-1", "untitled:Untitled-1"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := uriToPath(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.expected), got)
		})
	}
}

func TestPathToURI(t *testing.T) {
	uri := pathToURI("/tmp/a b.as")
	assert.Equal(t, "file:///tmp/a%20b.as", uri)

	path, err := uriToPath(uri)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a b.as", path)
}

func TestToPosition(t *testing.T) {
	_, src := parser.Parse("var s = \"\U0001F600\"\nvar t")
	require.Empty(t, src.Diagnostics)

	tests := []struct {
		offset   int
		expected protocol.Position
	}{
		{0, protocol.Position{Line: 0, Character: 0}},
		{9, protocol.Position{Line: 0, Character: 9}},
		{10, protocol.Position{Line: 0, Character: 11}},
		{12, protocol.Position{Line: 1, Character: 0}},
		{16, protocol.Position{Line: 1, Character: 4}},
		{1000, protocol.Position{Line: 1, Character: 5}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.offset), func(t *testing.T) {
			assert.Equal(t, tt.expected, toPosition(src, tt.offset))
		})
	}
}

func TestToDiagnostic(t *testing.T) {
	_, src := parser.Parse("var x = ;\n", parser.WithURL("main.as"))
	require.Len(t, src.Diagnostics, 1)

	d := toDiagnostic(src.Diagnostics[0])
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	require.NotNil(t, d.Source)
	assert.Equal(t, "wasc", *d.Source)
	assert.Equal(t, src.Diagnostics[0].Message(), d.Message)
	assert.Equal(t, protocol.UInteger(0), d.Range.Start.Line)
	assert.Equal(t, protocol.UInteger(8), d.Range.Start.Character)

	warning := toDiagnostic(&parser.Diagnostic{Kind: parser.DiagWarning, Code: parser.ErrCircularInclude, Source: src})
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *warning.Severity)
}

func TestDocumentLifecycle(t *testing.T) {
	ls, ctx, sent := newTestServer(t, t.TempDir())
	uri := "file:///work/main.as"

	require.NoError(t, ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "actionscript", Version: 1, Text: "var x = ;"},
	}))
	require.Len(t, *sent, 1)
	first := (*sent)[0]
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, first.method)
	assert.Equal(t, uri, first.params.URI)
	require.NotNil(t, first.params.Version)
	assert.Equal(t, protocol.UInteger(1), *first.params.Version)
	require.Len(t, first.params.Diagnostics, 1)

	doc := ls.workspace.Document(uri)
	require.NotNil(t, doc)
	assert.Equal(t, filepath.FromSlash("/work/main.as"), doc.Path)
	assert.True(t, doc.Source.Invalidated())

	*sent = nil
	change := &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "var x = ;;"},
			protocol.TextDocumentContentChangeEventWhole{Text: "var x = 1;"},
		},
	}
	require.NoError(t, ls.textDocumentDidChange(ctx, change))
	require.Len(t, *sent, 1)
	assert.Empty(t, (*sent)[0].params.Diagnostics)
	assert.NotNil(t, (*sent)[0].params.Diagnostics, "an empty list clears the client's diagnostics")
	assert.Equal(t, int32(2), ls.workspace.Document(uri).Version)

	*sent = nil
	require.NoError(t, ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	require.Len(t, *sent, 1)
	assert.Empty(t, (*sent)[0].params.Diagnostics)
	assert.Nil(t, ls.workspace.Document(uri))
}

func TestDidSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.as")
	require.NoError(t, os.WriteFile(path, []byte("var a = ;"), 0o644))
	uri := pathToURI(path)

	ls, ctx, sent := newTestServer(t, dir)

	require.NoError(t, ls.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	require.Len(t, *sent, 1)
	assert.Len(t, (*sent)[0].params.Diagnostics, 1)

	*sent = nil
	text := "var a = 1"
	require.NoError(t, ls.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Text:         &text,
	}))
	require.Len(t, *sent, 1)
	assert.Empty(t, (*sent)[0].params.Diagnostics)
	assert.Equal(t, text, ls.workspace.Document(uri).Text)
}

func TestIncludedDiagnostics(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.as"), []byte("var y = ;"), 0o644))
	mainURI := pathToURI(filepath.Join(dir, "main.as"))
	libURI := pathToURI(filepath.Join(dir, "lib.as"))

	ls, ctx, sent := newTestServer(t, dir)
	require.NoError(t, ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: mainURI, Version: 1, Text: "include \"lib.as\"\nvar z = 1"},
	}))

	got := byURI(*sent)
	require.Len(t, got, 2)
	assert.Empty(t, got[mainURI])
	require.Len(t, got[libURI], 1)
	assert.Equal(t, protocol.UInteger(0), got[libURI][0].Range.Start.Line)
	assert.Equal(t, protocol.UInteger(8), got[libURI][0].Range.Start.Character)

	*sent = nil
	require.NoError(t, ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: mainURI},
	}))
	got = byURI(*sent)
	require.Len(t, got, 2)
	assert.Empty(t, got[libURI])
}

func TestInitialized(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"wasc.toml":     "[sources]\nroots = [\"src\"]\n",
		"src/good.as":   "var a = 1",
		"src/bad.as":    "var b = ;",
		"other/skip.as": "var c = ;",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	ls, ctx, sent := newTestServer(t, dir)
	require.NoError(t, ls.initialized(ctx, &protocol.InitializedParams{}))
	t.Cleanup(func() { _ = ls.shutdown(ctx) })

	got := byURI(*sent)
	require.Len(t, got, 1)
	assert.Len(t, got[pathToURI(filepath.Join(dir, "src", "bad.as"))], 1)
}

func outline(symbols []protocol.DocumentSymbol, depth int) []string {
	var out []string
	for _, s := range symbols {
		out = append(out, fmt.Sprintf("%s%s %d", strings.Repeat("  ", depth), s.Name, s.Kind))
		out = append(out, outline(s.Children, depth+1)...)
	}
	return out
}

func TestDocumentSymbols(t *testing.T) {
	const input = `package p {
  public class C {
    private var x:int;
    public function C() {}
    public function get v():int { return x }
    function f() {}
  }
}
function g() {}
const K = 1
`
	program, src := parser.Parse(input)
	require.Empty(t, src.Diagnostics, "diagnostics: %v", src.Diagnostics)

	symbols := documentSymbols(program, src)
	expected := []string{
		fmt.Sprintf("p %d", protocol.SymbolKindPackage),
		fmt.Sprintf("  C %d", protocol.SymbolKindClass),
		fmt.Sprintf("    x %d", protocol.SymbolKindField),
		fmt.Sprintf("    C %d", protocol.SymbolKindConstructor),
		fmt.Sprintf("    v %d", protocol.SymbolKindProperty),
		fmt.Sprintf("    f %d", protocol.SymbolKindMethod),
		fmt.Sprintf("g %d", protocol.SymbolKindFunction),
		fmt.Sprintf("K %d", protocol.SymbolKindConstant),
	}
	if diff := cmp.Diff(expected, outline(symbols, 0)); diff != "" {
		t.Errorf("outline mismatch (-want +got):\n%s", diff)
	}

	class := symbols[0].Children[0]
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 1, Character: 15},
		End:   protocol.Position{Line: 1, Character: 16},
	}, class.SelectionRange)
}

func TestDocumentSymbolRequest(t *testing.T) {
	ls, ctx, _ := newTestServer(t, t.TempDir())
	uri := "file:///work/a.as"

	result, err := ls.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Nil(t, result)

	require.NoError(t, ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: "function main() {}"},
	}))
	result, err = ls.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)
	require.Len(t, symbols, 1)
	assert.Equal(t, "main", symbols[0].Name)
}

func TestIncludeWatcher(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.as")
	require.NoError(t, os.WriteFile(lib, []byte("var y = ;"), 0o644))
	mainURI := pathToURI(filepath.Join(dir, "main.as"))
	libURI := pathToURI(lib)

	ls, ctx, sent := newTestServer(t, dir)
	require.NoError(t, ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: mainURI, Version: 3, Text: "include \"lib.as\""},
	}))
	require.Len(t, byURI(*sent)[libURI], 1)

	w := NewIncludeWatcher(ls.workspace, ctx.Notify)
	assert.Empty(t, w.scan())
	assert.Contains(t, w.modTimes, lib)

	*sent = nil
	require.NoError(t, os.WriteFile(lib, []byte("var y = 1"), 0o644))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(lib, later, later))

	reparsed := w.scan()
	require.Len(t, reparsed, 1)
	assert.Equal(t, mainURI, reparsed[0].URI)
	assert.Equal(t, int32(3), reparsed[0].Version)
	got := byURI(*sent)
	require.Len(t, got, 2)
	assert.Empty(t, got[libURI])
	assert.Empty(t, got[mainURI])

	assert.Empty(t, w.scan())

	ls.workspace.Close(mainURI)
	assert.Empty(t, w.scan())
	assert.Empty(t, w.modTimes)
}

func TestIncludeWatcherSkipsReplacedDocuments(t *testing.T) {
	tests := []struct {
		name    string
		replace func(t *testing.T, ws *Workspace, uri string)
		text    string
	}{
		{
			name: "closed",
			replace: func(t *testing.T, ws *Workspace, uri string) {
				require.NotNil(t, ws.Close(uri))
			},
		},
		{
			name: "edited",
			replace: func(t *testing.T, ws *Workspace, uri string) {
				_, err := ws.Update(uri, 2, "var edited = 1")
				require.NoError(t, err)
			},
			text: "var edited = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			lib := filepath.Join(dir, "lib.as")
			require.NoError(t, os.WriteFile(lib, []byte("var y = ;"), 0o644))
			mainURI := pathToURI(filepath.Join(dir, "main.as"))

			ls, ctx, sent := newTestServer(t, dir)
			require.NoError(t, ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
				TextDocument: protocol.TextDocumentItem{URI: mainURI, Version: 1, Text: "include \"lib.as\""},
			}))

			w := NewIncludeWatcher(ls.workspace, ctx.Notify)
			assert.Empty(t, w.scan())

			require.NoError(t, os.WriteFile(lib, []byte("var y = 1"), 0o644))
			later := time.Now().Add(time.Hour)
			require.NoError(t, os.Chtimes(lib, later, later))

			stale := w.staleDocuments()
			require.Len(t, stale, 1)

			tt.replace(t, ls.workspace, mainURI)
			*sent = nil

			assert.Empty(t, w.refresh(stale))
			assert.Empty(t, *sent)

			doc := ls.workspace.Document(mainURI)
			if tt.text == "" {
				assert.Nil(t, doc)
				return
			}
			require.NotNil(t, doc)
			assert.Equal(t, tt.text, doc.Text)
			assert.Equal(t, int32(2), doc.Version)
		})
	}
}

func TestUpdateIfCurrent(t *testing.T) {
	dir := t.TempDir()
	ws := NewWorkspace(dir)
	uri := pathToURI(filepath.Join(dir, "main.as"))

	first, err := ws.Update(uri, 1, "var a")
	require.NoError(t, err)

	var committed *Document
	updated, ok := ws.UpdateIfCurrent(first, func(doc *Document) { committed = doc })
	require.True(t, ok)
	assert.Same(t, updated, committed)
	assert.Same(t, updated, ws.Document(uri))
	assert.Equal(t, int32(1), updated.Version)
	assert.Equal(t, "var a", updated.Text)

	_, ok = ws.UpdateIfCurrent(first, func(*Document) { t.Fatal("stale document committed") })
	assert.False(t, ok)
	assert.Same(t, updated, ws.Document(uri))
}
