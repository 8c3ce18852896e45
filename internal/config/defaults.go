package config

import (
	"github.com/dshills/cinder/internal/indent"
	"github.com/dshills/cinder/internal/indent/cindent"
	"github.com/dshills/cinder/internal/indent/column"
	"github.com/dshills/cinder/internal/indent/lisp"
)

// defaultConfig returns the built-in configuration layer.
func defaultConfig() map[string]any {
	lispType := map[string]any{"lisp": true, "cindent": false}
	return map[string]any{
		"log": map[string]any{
			"level": "info",
		},
		"indent": map[string]any{
			"tabstop":        column.DefaultTabStop,
			"shiftwidth":     indent.DefaultShiftWidth,
			"expandtab":      false,
			"preserveindent": false,
			"cindent":        true,
			"lisp":           false,
			"cinoptions":     "",
			"cinwords":       cindent.DefaultCinWords,
			"cinkeys":        indent.DefaultCinKeys,
			"comments":       cindent.DefaultComments,
			"lispwords":      lisp.DefaultWords,
			"vilisp":         false,
			"indentexpr":     "",
			"maxbracelines":  cindent.DefaultMaxBraceLines,
		},
		"filetype": map[string]any{
			"c":          map[string]any{},
			"cpp":        map[string]any{},
			"cs":         map[string]any{},
			"java":       map[string]any{"cinoptions": "j1"},
			"javascript": map[string]any{"cinoptions": "j1,J1"},
			"lisp":       lispType,
			"scheme":     lispType,
			"clojure":    lispType,
		},
		"extensions": map[string]any{
			".c":    "c",
			".h":    "c",
			".cc":   "cpp",
			".cpp":  "cpp",
			".cxx":  "cpp",
			".hh":   "cpp",
			".hpp":  "cpp",
			".cs":   "cs",
			".java": "java",
			".js":   "javascript",
			".mjs":  "javascript",
			".lisp": "lisp",
			".lsp":  "lisp",
			".cl":   "lisp",
			".el":   "lisp",
			".scm":  "scheme",
			".ss":   "scheme",
			".clj":  "clojure",
		},
	}
}
