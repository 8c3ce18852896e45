// Package config resolves cinder's indent settings.
//
// Settings are layered, lowest precedence first: built-in defaults, TOML
// and YAML files in the order given, CINDER_* environment variables and
// finally values set from command line flags. The [indent] table holds the
// base settings and [filetype.<name>] tables override them per filetype:
//
//	[indent]
//	shiftwidth = 4
//	cinoptions = ":0,(0"
//
//	[filetype.lisp]
//	lisp = true
//
//	[extensions]
//	".pde" = "c"
//
// Keys use Vim's option names.
package config
