package indent

import (
	"strings"

	"github.com/dshills/cinder/internal/indent/cindent"
	"github.com/dshills/cinder/internal/indent/cino"
	"github.com/dshills/cinder/internal/indent/column"
	"github.com/dshills/cinder/internal/indent/cscan"
	"github.com/dshills/cinder/internal/indent/lisp"
	"github.com/dshills/cinder/internal/indent/writer"
)

// Default option values.
const (
	DefaultShiftWidth = 8
	DefaultCinKeys    = "0{,0},0),:,0#,!^F,o,O,e"
)

// Options are the buffer options that drive indentation. String fields
// use Vim's option syntax; an empty CinWords, Comments or LispWords selects
// the default list.
type Options struct {
	TabStop        int
	ShiftWidth     int // 0 means TabStop
	ExpandTab      bool
	PreserveIndent bool

	// CIndent selects C indenting. With CIndent, Lisp and IndentExpr all
	// unset, lines follow the previous line.
	CIndent    bool
	Lisp       bool
	CinOptions string
	CinWords   string
	CinKeys    string
	Comments   string
	LispWords  string
	ViLisp     bool

	// MaxBraceLines bounds the search for an enclosing '{'; see
	// cindent.Options.
	MaxBraceLines int
}

// DefaultOptions returns Vim's defaults with C indenting on.
func DefaultOptions() Options {
	return Options{
		TabStop:    column.DefaultTabStop,
		ShiftWidth: DefaultShiftWidth,
		CIndent:    true,
		CinWords:   cindent.DefaultCinWords,
		CinKeys:    DefaultCinKeys,
		Comments:   cindent.DefaultComments,
		LispWords:  lisp.DefaultWords,
	}
}

// Snapshot is Options resolved into the forms the engines consume.
type Snapshot struct {
	TabStop        int
	ShiftWidth     int
	ExpandTab      bool
	PreserveIndent bool
	CIndent        bool
	Lisp           bool
	ViLisp         bool
	HashAtLeft     bool
	MaxBraceLines  int

	Table     cino.Table
	CinWords  []string
	LispWords []string
	Comments  CommentFormat
}

// Snapshot resolves o.
func (o Options) Snapshot() Snapshot {
	ts := o.TabStop
	if ts <= 0 {
		ts = column.DefaultTabStop
	}
	sw := o.ShiftWidth
	if sw <= 0 {
		sw = ts
	}
	return Snapshot{
		TabStop:        ts,
		ShiftWidth:     sw,
		ExpandTab:      o.ExpandTab,
		PreserveIndent: o.PreserveIndent,
		CIndent:        o.CIndent,
		Lisp:           o.Lisp,
		ViLisp:         o.ViLisp,
		HashAtLeft:     hashAtLeft(o.CinKeys),
		MaxBraceLines:  o.MaxBraceLines,
		Table:          ParseCinoptions(o.CinOptions, sw),
		CinWords:       cscan.ParseWords(o.CinWords),
		LispWords:      cscan.ParseWords(o.LispWords),
		Comments:       ParseComments(o.Comments),
	}
}

func (s Snapshot) writerConfig() writer.Config {
	return writer.Config{TabStop: s.TabStop, ExpandTab: s.ExpandTab, PreserveIndent: s.PreserveIndent}
}

// CommentFormat is a parsed 'comments' option.
type CommentFormat []cindent.CommentPart

// ParseComments parses a 'comments' option value such as
// "s1:/*,mb:*,ex:*/,://".
func ParseComments(spec string) CommentFormat {
	return CommentFormat(cindent.ParseComments(spec))
}

// ParseCinoptions parses a cinoptions string for shift width sw. It never
// fails: unknown letters are ignored and malformed numbers read as 0.
func ParseCinoptions(spec string, sw int) cino.Table {
	return cino.Parse(spec, sw)
}

// hashAtLeft reports whether cinkeys re-indents a typed '#', which puts
// preprocessor lines in the first column.
func hashAtLeft(cinkeys string) bool {
	for _, key := range strings.Split(cinkeys, ",") {
		key = strings.TrimLeft(key, "!*0")
		if key == "#" {
			return true
		}
	}
	return false
}
