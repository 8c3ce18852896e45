package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dshills/cinder/internal/config/loader"
	"github.com/dshills/cinder/internal/indent"
	"github.com/dshills/cinder/internal/indent/column"
)

// IndentSettings are the indent options for one filetype.
type IndentSettings struct {
	TabStop        int
	ShiftWidth     int
	ExpandTab      bool
	PreserveIndent bool
	CIndent        bool
	Lisp           bool
	CinOptions     string
	CinWords       string
	CinKeys        string
	Comments       string
	LispWords      string
	ViLisp         bool
	IndentExpr     string
	MaxBraceLines  int
}

// Validate replaces non-positive widths with their defaults.
func (s *IndentSettings) Validate() {
	if s.TabStop <= 0 {
		s.TabStop = column.DefaultTabStop
	}
	if s.ShiftWidth < 0 {
		s.ShiftWidth = 0
	}
}

// Options converts s for the indenter. IndentExpr is not included; it is
// compiled separately.
func (s IndentSettings) Options() indent.Options {
	return indent.Options{
		TabStop:        s.TabStop,
		ShiftWidth:     s.ShiftWidth,
		ExpandTab:      s.ExpandTab,
		PreserveIndent: s.PreserveIndent,
		CIndent:        s.CIndent,
		Lisp:           s.Lisp,
		CinOptions:     s.CinOptions,
		CinWords:       s.CinWords,
		CinKeys:        s.CinKeys,
		Comments:       s.Comments,
		LispWords:      s.LispWords,
		ViLisp:         s.ViLisp,
		MaxBraceLines:  s.MaxBraceLines,
	}
}

// Config holds the layered configuration.
type Config struct {
	mu sync.RWMutex

	fs        loader.FileSystem
	files     []string
	envPrefix string
	environ   []string

	merged map[string]any
	flags  map[string]any
}

// Option is a functional option for configuring Config.
type Option func(*Config)

// WithFile adds a TOML or YAML file. Later files take precedence. Missing
// files are skipped.
func WithFile(path string) Option {
	return func(c *Config) {
		c.files = append(c.files, path)
	}
}

// WithFileSystem sets the file system files are read from.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables the environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithEnviron reads variables from environ instead of the process
// environment.
func WithEnviron(environ []string) Option {
	return func(c *Config) {
		c.environ = environ
	}
}

// New creates a Config holding only the defaults. Call Load to read the
// files and environment.
func New(opts ...Option) *Config {
	c := &Config{
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
		flags:     make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.merged = loader.DeepMerge(nil, defaultConfig())
	return c
}

// Load reads every layer and rebuilds the merged configuration.
func (c *Config) Load(ctx context.Context) error {
	merged := loader.DeepMerge(nil, defaultConfig())

	for _, path := range c.files {
		if err := ctx.Err(); err != nil {
			return err
		}
		l, err := loader.ForFile(c.fs, path)
		if err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
		data, err := l.Load()
		if err != nil {
			return err
		}
		merged = loader.DeepMerge(merged, data)
	}

	if c.envPrefix != "" {
		env := loader.NewEnvLoader(c.envPrefix)
		if c.environ != nil {
			env = loader.NewEnvLoaderWithEnviron(c.envPrefix, c.environ)
		}
		data, err := env.Load()
		if err != nil {
			return fmt.Errorf("environment: %w", err)
		}
		merged = loader.DeepMerge(merged, data)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.merged = loader.DeepMerge(merged, c.flags)
	return nil
}

// Set sets a value in the flag layer, which overrides every other layer.
func (c *Config) Set(path string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	loader.SetByPath(c.flags, path, value)
	loader.SetByPath(c.merged, path, value)
}

// Get returns the value at the given dot-separated path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.GetByPath(c.merged, path)
}

// LogLevel returns the configured log level name.
func (c *Config) LogLevel() string {
	v, _ := c.Get("log.level")
	s, _ := v.(string)
	return s
}

// Filetypes lists the filetypes with a settings table.
func (c *Config) Filetypes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fts, _ := c.merged["filetype"].(map[string]any)
	names := make([]string, 0, len(fts))
	for name := range fts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Filetype returns the filetype for path from its extension.
func (c *Config) Filetype(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	c.mu.RLock()
	exts, _ := c.merged["extensions"].(map[string]any)
	v, ok := exts[ext]
	c.mu.RUnlock()
	if ext == "" || !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFiletype, filepath.Base(path))
	}
	ft, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: "extensions." + strconv.Quote(ext), Expected: "string", Actual: typeName(v)}
	}
	return ft, nil
}

// Base returns the [indent] settings without filetype overrides.
func (c *Config) Base() (IndentSettings, error) {
	return c.settings("")
}

// For returns the settings for filetype ft: the [indent] table overlaid
// with [filetype.<ft>].
func (c *Config) For(ft string) (IndentSettings, error) {
	if _, ok := c.Get("filetype." + ft); !ok || ft == "" {
		return IndentSettings{}, fmt.Errorf("%w: %q", ErrUnknownFiletype, ft)
	}
	return c.settings(ft)
}

// ForFile returns the filetype of path and its settings.
func (c *Config) ForFile(path string) (IndentSettings, string, error) {
	ft, err := c.Filetype(path)
	if err != nil {
		return IndentSettings{}, "", err
	}
	s, err := c.For(ft)
	return s, ft, err
}

func (c *Config) settings(ft string) (IndentSettings, error) {
	c.mu.RLock()
	base, _ := c.merged["indent"].(map[string]any)
	table := loader.DeepMerge(nil, base)
	prefix := "indent"
	if ft != "" {
		over, _ := loader.GetByPath(c.merged, "filetype."+ft)
		if m, ok := over.(map[string]any); ok {
			table = loader.DeepMerge(table, m)
		}
		prefix = "filetype." + ft
	}
	c.mu.RUnlock()

	d := decoder{table: table, prefix: prefix}
	s := IndentSettings{
		TabStop:        d.getInt("tabstop"),
		ShiftWidth:     d.getInt("shiftwidth"),
		ExpandTab:      d.getBool("expandtab"),
		PreserveIndent: d.getBool("preserveindent"),
		CIndent:        d.getBool("cindent"),
		Lisp:           d.getBool("lisp"),
		CinOptions:     d.getString("cinoptions"),
		CinWords:       d.getString("cinwords"),
		CinKeys:        d.getString("cinkeys"),
		Comments:       d.getString("comments"),
		LispWords:      d.getString("lispwords"),
		ViLisp:         d.getBool("vilisp"),
		IndentExpr:     d.getString("indentexpr"),
		MaxBraceLines:  d.getInt("maxbracelines"),
	}
	if d.err != nil {
		return IndentSettings{}, d.err
	}
	s.Validate()
	return s, nil
}

// decoder reads typed values from a settings table and keeps the first
// error.
type decoder struct {
	table  map[string]any
	prefix string
	err    error
}

func (d *decoder) fail(key, expected string, v any) {
	if d.err == nil {
		d.err = &TypeError{Path: d.prefix + "." + key, Expected: expected, Actual: typeName(v)}
	}
}

func (d *decoder) getInt(key string) int {
	switch val := d.table[key].(type) {
	case nil:
		return 0
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	d.fail(key, "int", d.table[key])
	return 0
}

func (d *decoder) getBool(key string) bool {
	switch val := d.table[key].(type) {
	case nil:
		return false
	case bool:
		return val
	}
	d.fail(key, "bool", d.table[key])
	return false
}

// getString accepts lists as well and joins them with commas, so
// cinwords = ["if", "for"] works.
func (d *decoder) getString(key string) string {
	switch val := d.table[key].(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				d.fail(key, "string list", val)
				return ""
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ",")
	}
	d.fail(key, "string", d.table[key])
	return ""
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "list"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
