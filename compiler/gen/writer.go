package gen

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/CreativeUnicorns/simpleprefs/schema"
)

// Writer persists rendered accessor source. Errors are reported to the
// caller unchanged so the pipeline can attribute them to one schema.
type Writer interface {
	WriteUnit(ns schema.Namespace, typeName string, body []byte) error
}

// FileWriter writes units under a root directory.
//
// A unit whose namespace (as printed by Namespace.String) appears in Dirs is
// written to that directory.
// Otherwise it goes to Root/<package name>, or Root itself for the unnamed
// namespace.
type FileWriter struct {
	Root string
	Dirs map[string]string
}

// NewFileWriter returns a FileWriter rooted at root.
func NewFileWriter(root string) *FileWriter {
	return &FileWriter{Root: root, Dirs: make(map[string]string)}
}

// Dir returns the directory units of ns are written to.
func (w *FileWriter) Dir(ns schema.Namespace) string {
	if ns.Unnamed() {
		return w.Root
	}
	if dir, ok := w.Dirs[ns.String()]; ok {
		return dir
	}
	return filepath.Join(w.Root, ns.PackageName())
}

// WriteUnit writes body to Dir(ns)/FileName(typeName). A file that already
// holds body is left untouched.
func (w *FileWriter) WriteUnit(ns schema.Namespace, typeName string, body []byte) error {
	dir := w.Dir(ns)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := filepath.Join(dir, FileName(typeName))
	if old, err := os.ReadFile(name); err == nil && bytes.Equal(old, body) {
		return nil
	}
	return os.WriteFile(name, body, 0o644)
}

// MemoryWriter collects units in memory, keyed by namespace-relative path.
// It backs dry runs.
type MemoryWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemoryWriter returns an empty MemoryWriter.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{files: make(map[string][]byte)}
}

// WriteUnit records body under <namespace>/<file name>.
func (w *MemoryWriter) WriteUnit(ns schema.Namespace, typeName string, body []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path(ns, typeName)] = append([]byte(nil), body...)
	return nil
}

// File returns the body written for typeName in ns.
func (w *MemoryWriter) File(ns schema.Namespace, typeName string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.files[path(ns, typeName)]
	return b, ok
}

// Paths returns the recorded paths in sorted order.
func (w *MemoryWriter) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	paths := make([]string, 0, len(w.files))
	for p := range w.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func path(ns schema.Namespace, typeName string) string {
	return filepath.ToSlash(filepath.Join(ns.String(), FileName(typeName)))
}
