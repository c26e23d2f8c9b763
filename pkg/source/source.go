// Package source abstracts where file content is read from, so analyzers
// can run against the working tree or an in-memory snapshot.
package source

import (
	"fmt"
	"os"
)

// ContentSource provides file content from a specific source.
type ContentSource interface {
	// Read returns the content of the file at path.
	Read(path string) ([]byte, error)
}

// FilesystemSource reads files from the local filesystem.
type FilesystemSource struct{}

// NewFilesystem creates a source that reads from the filesystem.
func NewFilesystem() *FilesystemSource {
	return &FilesystemSource{}
}

// Read implements ContentSource.
func (f *FilesystemSource) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MapSource serves file content from an in-memory map. Useful for tests
// and for callers that already hold a snapshot of the corpus.
// It is safe for concurrent reads.
type MapSource struct {
	files map[string][]byte
}

// NewMap creates a source backed by the given path -> content map.
func NewMap(files map[string][]byte) *MapSource {
	return &MapSource{files: files}
}

// Read implements ContentSource.
func (m *MapSource) Read(path string) ([]byte, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("source: no content for %s", path)
	}
	return content, nil
}
