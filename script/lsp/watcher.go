package lsp

import (
	"os"
	"time"

	"github.com/tliron/glsp"

	"github.com/dhamidi/wasc/script/parser"
)

// IncludeWatcher polls the files included by open documents. When one of
// them changes on disk, every open document including it is parsed again
// and its diagnostics are published.
type IncludeWatcher struct {
	workspace    *Workspace
	notify       glsp.NotifyFunc
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
}

func NewIncludeWatcher(w *Workspace, notify glsp.NotifyFunc) *IncludeWatcher {
	return &IncludeWatcher{
		workspace:    w,
		notify:       notify,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *IncludeWatcher) Start() {
	go w.run()
}

func (w *IncludeWatcher) Stop() {
	close(w.stopCh)
}

func (w *IncludeWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

// scan returns the documents it parsed again.
func (w *IncludeWatcher) scan() []*Document {
	return w.refresh(w.staleDocuments())
}

// staleDocuments records the modification times of every included file
// and returns the open documents with an include that changed since the
// previous scan.
func (w *IncludeWatcher) staleDocuments() []*Document {
	current := make(map[string]bool)
	var stale []*Document

	for _, doc := range w.workspace.Documents() {
		changed := false
		for _, path := range includedPaths(doc.Source) {
			current[path] = true
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			lastMod, known := w.modTimes[path]
			if known && info.ModTime().After(lastMod) {
				changed = true
			}
			if !known || info.ModTime().After(lastMod) {
				w.modTimes[path] = info.ModTime()
			}
		}
		if changed {
			stale = append(stale, doc)
		}
	}

	for path := range w.modTimes {
		if !current[path] {
			delete(w.modTimes, path)
		}
	}
	return stale
}

// refresh parses the stale documents again. Documents that were closed or
// edited since they were found stale are left alone.
func (w *IncludeWatcher) refresh(stale []*Document) []*Document {
	var reparsed []*Document
	for _, doc := range stale {
		log.Infof("include of %s changed, parsing again", doc.Path)
		updated, ok := w.workspace.UpdateIfCurrent(doc, func(updated *Document) {
			publish(w.notify, updated)
		})
		if !ok {
			log.Debugf("%s changed while parsing again, skipped", doc.Path)
			continue
		}
		reparsed = append(reparsed, updated)
	}
	return reparsed
}

func includedPaths(src *parser.Source) []string {
	var paths []string
	for _, child := range src.Included {
		paths = append(paths, child.URL)
		paths = append(paths, includedPaths(child)...)
	}
	return paths
}
