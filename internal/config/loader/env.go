package loader

import (
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix is the prefix of cinder's environment variables.
const DefaultEnvPrefix = "CINDER_"

// EnvLoader builds a layer from prefixed environment variables. Well
// known names map to fixed paths; any other PREFIX_SECTION_KEY becomes
// section.key.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// NewEnvLoader reads the process environment. prefix includes its
// trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

// NewEnvLoaderWithEnviron reads "NAME=value" pairs from environ.
func NewEnvLoaderWithEnviron(prefix string, environ []string) *EnvLoader {
	l := NewEnvLoader(prefix)
	l.environ = func() []string { return environ }
	return l
}

// defaultEnvMapping maps the short variable names to config paths.
func defaultEnvMapping(prefix string) map[string]string {
	m := map[string]string{
		"LOG_LEVEL":      "log.level",
		"TABSTOP":        "indent.tabstop",
		"SHIFTWIDTH":     "indent.shiftwidth",
		"EXPANDTAB":      "indent.expandtab",
		"PRESERVEINDENT": "indent.preserveindent",
		"CINOPTIONS":     "indent.cinoptions",
		"CINWORDS":       "indent.cinwords",
		"CINKEYS":        "indent.cinkeys",
		"COMMENTS":       "indent.comments",
		"LISPWORDS":      "indent.lispwords",
		"INDENTEXPR":     "indent.indentexpr",
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[prefix+k] = v
	}
	return out
}

// Load returns the layer. A variable set to the empty string still counts.
func (l *EnvLoader) Load() (map[string]any, error) {
	layer := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		SetByPath(layer, path, parseValue(value))
	}
	return layer, nil
}

// envToPath converts CINDER_INDENT_MAXBRACELINES to indent.maxbracelines.
// The first part names the section; the rest are joined into the key.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + strings.ReplaceAll(key, "_", "")
}

// parseValue converts numbers and booleans; everything else stays a
// string. Numbers win over "0"/"1" booleans since most settings are
// widths.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	return s
}
