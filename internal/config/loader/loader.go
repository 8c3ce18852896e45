// Package loader reads cinder configuration from TOML and YAML files and
// from environment variables into nested maps.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader produces one configuration layer. A missing source yields a nil
// map and no error.
type Loader interface {
	Load() (map[string]any, error)
}

// ReaderLoader parses a layer from a stream instead of its own source.
type ReaderLoader interface {
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem reads configuration files. Tests substitute a map.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the host file system.
type OSFS struct{}

func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// DefaultFS returns OSFS.
func DefaultFS() FileSystem { return OSFS{} }

// ForFile picks the loader for path from its extension.
func ForFile(fsys FileSystem, path string) (Loader, error) {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".toml":
		return NewTOMLLoaderWithFS(fsys, path), nil
	case ".yaml", ".yml":
		return NewYAMLLoaderWithFS(fsys, path), nil
	}
	return nil, fmt.Errorf("unsupported config format %q", ext)
}

// fileLoader reads one file and hands its bytes to parse.
type fileLoader struct {
	fs    FileSystem
	path  string
	parse func(source string, data []byte) (map[string]any, error)
}

func (l *fileLoader) Load() (map[string]any, error) {
	data, err := readFile(l.fs, l.path)
	if data == nil || err != nil {
		return nil, err
	}
	return l.parse(l.path, data)
}

func (l *fileLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return l.parse("<reader>", data)
}

func readFile(fsys FileSystem, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
}

// ParseError reports a syntax error in a configuration source. Line and
// Column are 1-based and zero when the parser did not say.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	where := e.Path
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, e.Line)
		if e.Column > 0 {
			where = fmt.Sprintf("%s:%d", where, e.Column)
		}
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DeepMerge overlays src on dst and returns dst, allocating it when nil.
// Nested tables merge key by key; any other value replaces what was
// there. Tables taken from src are copied so later merges never write
// into src.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		table, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		existing, _ := dst[k].(map[string]any)
		dst[k] = DeepMerge(existing, table)
	}
	return dst
}

// SetByPath stores value at a dotted path such as "indent.tabstop",
// replacing any non-table value met on the way.
func SetByPath(data map[string]any, path string, value any) {
	keys := strings.Split(path, ".")
	last := len(keys) - 1
	for _, k := range keys[:last] {
		child, ok := data[k].(map[string]any)
		if !ok {
			child = map[string]any{}
			data[k] = child
		}
		data = child
	}
	data[keys[last]] = value
}

// GetByPath looks up a dotted path.
func GetByPath(data map[string]any, path string) (any, bool) {
	keys := strings.Split(path, ".")
	for _, k := range keys[:len(keys)-1] {
		child, ok := data[k].(map[string]any)
		if !ok {
			return nil, false
		}
		data = child
	}
	v, ok := data[keys[len(keys)-1]]
	return v, ok
}
