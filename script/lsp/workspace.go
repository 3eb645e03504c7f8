package lsp

import (
	"fmt"
	"os"
	"sync"

	"github.com/dhamidi/wasc/project"
	"github.com/dhamidi/wasc/script/parser"
)

// Workspace holds the open documents of one client session. Every update
// parses the full text again.
type Workspace struct {
	mu        sync.RWMutex
	rootDir   string
	project   *project.Project
	documents map[string]*Document
}

// Document is the latest parse of one open text document.
type Document struct {
	URI     string
	Path    string
	Version int32
	Text    string
	Program *parser.Program
	Source  *parser.Source
}

// NewWorkspace loads the project configuration in rootDir. Without a
// usable configuration the parser defaults apply.
func NewWorkspace(rootDir string) *Workspace {
	proj, err := project.LoadFrom(rootDir)
	if err != nil {
		log.Warningf("could not load project in %s: %s", rootDir, err.Error())
	}
	return &Workspace{
		rootDir:   rootDir,
		project:   proj,
		documents: make(map[string]*Document),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// Update parses text as the new content of uri and records it.
func (w *Workspace) Update(uri string, version int32, text string) (*Document, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, fmt.Errorf("resolve document %s: %w", uri, err)
	}
	doc := w.parse(uri, path, text)
	doc.Version = version

	w.mu.Lock()
	defer w.mu.Unlock()
	w.documents[uri] = doc
	return doc, nil
}

// UpdateIfCurrent parses the text of prev again and stores the result,
// unless prev has since been replaced or closed. commit runs under the
// workspace lock.
func (w *Workspace) UpdateIfCurrent(prev *Document, commit func(*Document)) (*Document, bool) {
	doc := w.parse(prev.URI, prev.Path, prev.Text)
	doc.Version = prev.Version

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.documents[prev.URI] != prev {
		return nil, false
	}
	w.documents[prev.URI] = doc
	if commit != nil {
		commit(doc)
	}
	return doc, true
}

// Reload parses the document from disk, keeping its version.
func (w *Workspace) Reload(uri string) (*Document, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, fmt.Errorf("resolve document %s: %w", uri, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var version int32
	if doc := w.Document(uri); doc != nil {
		version = doc.Version
	}
	return w.Update(uri, version, string(content))
}

// Close forgets uri and returns the document it held, if any.
func (w *Workspace) Close(uri string) *Document {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc := w.documents[uri]
	delete(w.documents, uri)
	return doc
}

func (w *Workspace) Document(uri string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.documents[uri]
}

// Documents returns the open documents in no particular order.
func (w *Workspace) Documents() []*Document {
	w.mu.RLock()
	defer w.mu.RUnlock()

	docs := make([]*Document, 0, len(w.documents))
	for _, doc := range w.documents {
		docs = append(docs, doc)
	}
	return docs
}

// ScanAll parses every source file of the project without opening it.
func (w *Workspace) ScanAll() ([]*Document, error) {
	if w.project == nil {
		return nil, nil
	}
	files, err := w.project.SourceFiles()
	if err != nil {
		return nil, err
	}

	docs := make([]*Document, 0, len(files))
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			log.Warningf("could not read %s: %s", path, err.Error())
			continue
		}
		docs = append(docs, w.parse(pathToURI(path), path, string(content)))
	}
	return docs, nil
}

func (w *Workspace) parse(uri, path, text string) *Document {
	opts := []parser.Option{parser.WithURL(path)}
	if w.project != nil {
		opts = w.project.ParserOptions(opts...)
	}
	program, src := parser.Parse(text, opts...)
	log.Debugf("parsed %s: %d diagnostics", path, len(src.Diagnostics))
	return &Document{
		URI:     uri,
		Path:    path,
		Text:    text,
		Program: program,
		Source:  src,
	}
}
