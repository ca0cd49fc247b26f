package buffer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/inkstone-edit/inkstone/internal/engine/store"
)

// ErrNoPath is returned by Save when the buffer has no file path.
var ErrNoPath = errors.New("buffer has no file path")

// loadChunkSize is the read size for streaming large files.
const loadChunkSize = 64 * 1024

// Load reads a file into a new buffer. Files under the large-file
// threshold are read wholesale with the line index fully built; larger
// files are streamed in chunks and indexed lazily on first lookup.
func Load(path string, opts ...Option) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	b := New(opts...)
	b.path = path

	if info.Size() < int64(b.largeFileThreshold) {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		b.content = store.FromBytes(data)
		b.lines.rebuild(data)
		return b, nil
	}

	slog.Debug("streaming large file", "path", path, "size", info.Size())
	var content store.Store = store.New()
	chunk := make([]byte, loadChunkSize)
	for {
		n, err := f.Read(chunk)
		if n > 0 {
			data := make([]byte, n)
			copy(data, chunk[:n])
			content = content.Insert(content.Len(), data)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	b.content = content
	b.lines.invalidate()
	return b, nil
}

// Save writes the buffer back to its file path and clears the modified
// flag. Returns ErrNoPath when the buffer has never been associated
// with a file.
func (b *Buffer) Save() error {
	b.mu.RLock()
	path := b.path
	b.mu.RUnlock()
	if path == "" {
		return ErrNoPath
	}
	return b.SaveTo(path)
}

// SaveTo writes the buffer to path, adopts it as the buffer's path and
// clears the modified flag.
func (b *Buffer) SaveTo(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.WriteFile(path, b.content.Materialize(' '), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	b.path = path
	b.modified = false
	return nil
}

// Reload replaces the buffer's content with the current state of its
// file, rebuilding the line index and clearing the modified flag. The
// buffer's identity and options are preserved.
func (b *Buffer) Reload() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.path == "" {
		return ErrNoPath
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", b.path, err)
	}
	b.content = store.FromBytes(data)
	b.lines.rebuild(data)
	b.modified = false
	return nil
}
