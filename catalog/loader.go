// Package catalog builds the in-memory set of bill documents consumed by
// the fuzzy matcher. Documents are discovered by attempted reads against a
// file capability: a brute-force existence probe, acceptable because the
// corpus is small and the probe is local.
package catalog

import (
	"os"
	"path"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/logger"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/models"
)

// discoveryCap bounds discovery mode; probing stops once this many documents
// have been collected.
const discoveryCap = 50

// FileReader is the file-access capability probed during loading.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

// OSReader reads from the local filesystem.
type OSReader struct{}

func (OSReader) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Loader probes for bill documents and holds the resulting catalog. Loading
// runs once: repeat triggers and triggers arriving while a load is in
// flight are ignored.
type Loader struct {
	mu       sync.Mutex
	loaded   bool
	loading  bool
	reader   FileReader
	basePath string
	docs     []models.Document
}

func NewLoader(reader FileReader, basePath string) *Loader {
	return &Loader{reader: reader, basePath: basePath}
}

// Load builds the catalog. With explicit filenames each one is attempted
// and individual failures are skipped; with none, the candidate space is
// probed until the cap is hit or the space is exhausted.
func (l *Loader) Load(filenames []string) {
	l.mu.Lock()
	if l.loaded || l.loading {
		l.mu.Unlock()
		return
	}
	l.loading = true
	l.mu.Unlock()

	var docs []models.Document
	if len(filenames) > 0 {
		docs = l.loadExplicit(filenames)
	} else {
		docs = l.discover()
	}

	l.mu.Lock()
	l.docs = docs
	l.loaded = true
	l.loading = false
	l.mu.Unlock()

	logger.Get().Info("bill catalog loaded",
		zap.Int("documents", len(docs)),
		zap.String("base_path", l.basePath))
}

// Loaded reports whether a load has completed.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Documents returns the catalog.
func (l *Loader) Documents() []models.Document {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Document, len(l.docs))
	copy(out, l.docs)
	return out
}

func (l *Loader) loadExplicit(filenames []string) []models.Document {
	var docs []models.Document
	for _, filename := range filenames {
		fullPath := path.Join(l.basePath, filename)
		if _, err := l.reader.ReadFile(fullPath); err != nil {
			logger.Get().Warn("could not load bill, skipping",
				zap.String("filename", filename),
				zap.Error(err))
			continue
		}
		docs = append(docs, l.document(len(docs)+1, filename, fullPath))
	}
	return docs
}

func (l *Loader) discover() []models.Document {
	var docs []models.Document
	gen := NewGenerator()
	for {
		filename, ok := gen.Next()
		if !ok {
			break
		}
		fullPath := path.Join(l.basePath, filename)
		if _, err := l.reader.ReadFile(fullPath); err != nil {
			continue
		}
		docs = append(docs, l.document(len(docs)+1, filename, fullPath))
		if len(docs) >= discoveryCap {
			break
		}
	}
	return docs
}

func (l *Loader) document(id int, filename, fullPath string) models.Document {
	name := stripExtension(filename)
	return models.Document{
		ID:           id,
		Filename:     fullPath,
		OriginalName: filename,
		Title:        DeriveTitle(filename),
		Summary:      "Bill document: " + name,
	}
}

// DeriveTitle turns a filename into a display title: extension stripped,
// underscores become spaces, camel-case segments split into words.
func DeriveTitle(filename string) string {
	name := stripExtension(filename)
	name = strings.ReplaceAll(name, "_", " ")

	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func stripExtension(filename string) string {
	if ext := path.Ext(filename); ext != "" {
		return strings.TrimSuffix(filename, ext)
	}
	return filename
}
