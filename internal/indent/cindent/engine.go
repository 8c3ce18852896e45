package cindent

import (
	"github.com/dshills/cinder/internal/indent/cino"
	"github.com/dshills/cinder/internal/indent/column"
	"github.com/dshills/cinder/internal/indent/cscan"
	"github.com/dshills/cinder/internal/indent/match"
)

// DefaultMaxBraceLines bounds the search for the '{' enclosing a line.
const DefaultMaxBraceLines = 2000

// DefaultCinWords are the keywords that start an extra indent level.
const DefaultCinWords = "if,else,while,do,for,switch"

// KeepIndent is returned for a line whose indent must not change, which
// is any line inside a C++ raw string literal.
const KeepIndent = -1

// Options configure an Engine.
type Options struct {
	TabStop int
	Table   cino.Table

	// CinWords are the keywords that make the next line an extra level
	// deeper when it has no braces.
	CinWords []string

	// Comments is the comment leader format used inside block comments.
	Comments []CommentPart

	// HashAtLeft puts lines starting with '#' at the left margin even when
	// the '#' is indented.
	HashAtLeft bool

	// MaxBraceLines bounds the search for the enclosing '{'. 0 means
	// DefaultMaxBraceLines; a negative value removes the bound.
	MaxBraceLines int
}

// Engine computes C indents. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	opts     Options
	sc       cscan.Scanner
	maxBrace int
}

// New creates an Engine.
func New(opts Options) *Engine {
	if opts.TabStop <= 0 {
		opts.TabStop = column.DefaultTabStop
	}
	if opts.CinWords == nil {
		opts.CinWords = cscan.ParseWords(DefaultCinWords)
	}
	if opts.Comments == nil {
		opts.Comments = ParseComments(DefaultComments)
	}
	maxBrace := opts.MaxBraceLines
	switch {
	case maxBrace == 0:
		maxBrace = DefaultMaxBraceLines
	case maxBrace < 0:
		maxBrace = 0
	}
	return &Engine{
		opts:     opts,
		sc:       cscan.Scanner{HashComment: opts.Table.HashComment != 0},
		maxBrace: maxBrace,
	}
}

// Options returns the engine configuration.
func (e *Engine) Options() Options { return e.opts }

// Request identifies the line to indent.
type Request struct {
	Lnum int

	// Col is the cursor column. With InsertMode set and a ')' under the
	// cursor, the line is cut at the cursor so text typed before the ')'
	// does not line up with the matching '('.
	Col        int
	InsertMode bool
}

// Indent returns the indent, in columns, for line req.Lnum of buf. The
// result is never negative except for KeepIndent.
func (e *Engine) Indent(buf cscan.Lines, req Request) int {
	if req.Lnum <= 1 || req.Lnum > buf.LineCount() {
		return 0
	}
	r := &run{
		e:       e,
		buf:     buf,
		m:       match.New(buf, false),
		sc:      e.sc,
		t:       &e.opts.Table,
		ts:      e.opts.TabStop,
		start:   cscan.Pos{Lnum: req.Lnum},
		contInd: e.opts.Table.Continuation,
	}

	linecopy := buf.Line(req.Lnum)
	if req.InsertMode && req.Col < len(linecopy) && linecopy[req.Col] == ')' {
		linecopy = linecopy[:req.Col]
	}
	r.linecopy = linecopy
	r.theline = linecopy[cscan.SkipWhite(linecopy, 0):]

	amount := r.indent()
	switch {
	case r.keep:
		return KeepIndent
	case amount < 0:
		return 0
	}
	return amount
}

// run is the state of one indent computation. cur is the working cursor
// that the searches start from.
type run struct {
	e   *Engine
	buf cscan.Lines
	m   *match.Matcher
	sc  cscan.Scanner
	t   *cino.Table
	ts  int

	start    cscan.Pos
	cur      cscan.Pos
	linecopy string
	theline  string
	contInd  int
	keep     bool
}

func (r *run) line(lnum int) string { return r.buf.Line(lnum) }

func (r *run) curline() string { return r.buf.Line(r.cur.Lnum) }

func (r *run) indentOf(lnum int) int { return column.IndentOf(r.line(lnum), r.ts) }

func (r *run) getIndent() int { return r.indentOf(r.cur.Lnum) }

func (r *run) vcol(p cscan.Pos) int { return column.WidthTo(r.line(p.Lnum), p.Col, r.ts) }

func (r *run) findStartComment() (cscan.Pos, bool) {
	return r.m.FindStartComment(r.cur, r.t.MaxComment)
}

// findStartCORS finds the start of a comment or raw string around the
// cursor.
func (r *run) findStartCORS() (cscan.Pos, bool) {
	pos, _, ok := r.m.FindStartCommentOrRaw(r.cur, r.t.MaxComment)
	return pos, ok
}

func (r *run) findStartBrace() (cscan.Pos, bool) {
	return r.m.FindStartBrace(r.cur, r.t.MaxComment, r.e.maxBrace)
}

func (r *run) findMatchParen(maxParen int) (cscan.Pos, bool) {
	return r.m.FindMatchParen(r.cur, maxParen, r.t.MaxComment)
}

func (r *run) findMatchChar(c byte, maxParen int) (cscan.Pos, bool) {
	return r.m.FindMatchChar(r.cur, c, maxParen, r.t.MaxComment)
}

// corrMaxParen shortens the paren search limit when searching from a line
// above the one being indented, so a match further back is not found just
// because the search started higher up.
func (r *run) corrMaxParen(startpos cscan.Pos) int {
	n := startpos.Lnum - r.cur.Lnum
	if n > 0 && n < r.t.MaxParen/2 {
		return r.t.MaxParen - n
	}
	return r.t.MaxParen
}

// findLastParen moves the cursor column to the last unmatched end in l,
// or to column 0.
func (r *run) findLastParen(l string, open, end byte) bool {
	col, ok := r.sc.FindLastParen(l, open, end)
	r.cur.Col = col
	return ok
}

func endsInBackslash(s string) bool {
	return s != "" && s[len(s)-1] == '\\'
}

func (r *run) isComment(s string) bool { return cscan.IsComment(s, 0) }

func (r *run) skipwhite(s string) string { return s[cscan.SkipWhite(s, 0):] }

func (r *run) skipcomment(s string) string { return s[r.sc.SkipComment(s, 0):] }

func (r *run) nocode(s string) bool { return r.sc.NoCode(s, 0) }

func (r *run) isCase(s string) bool { return r.sc.IsCase(s, 0, false) }

func (r *run) isScopeDecl(s string) bool { return r.sc.IsScopeDecl(s, 0) }

func (r *run) isElse(s string) bool { return r.sc.IsElse(s, 0) }

func (r *run) isCinword(s string) bool { return cscan.IsCinword(s, r.e.opts.CinWords) }

// indent dispatches on the kind of line being indented.
func (r *run) indent() int {
	r.cur = r.start
	theline := r.theline

	origLabel := r.isLabel()

	// Inside a raw string the text is literal. A raw string opener inside
	// a comment does not count.
	comment, inComment := r.findStartComment()
	if raw, ok := r.m.FindStartRawString(r.cur, r.t.MaxComment); ok && (!inComment || raw.Before(comment)) {
		r.keep = true
		return KeepIndent
	}

	if byteAt(theline, 0) == '#' && (byteAt(r.linecopy, 0) == '#' || r.e.opts.HashAtLeft) {
		return r.t.HashComment
	}

	if origLabel && r.t.JS == 0 && r.t.JumpLabel < 0 {
		return 0
	}

	if cscan.IsLineComment(theline, 0) {
		if pos, ok := r.m.FindLineComment(r.start.Lnum); ok {
			return r.vcol(pos)
		}
	}

	if !r.isComment(theline) && inComment {
		return r.commentIndent(comment)
	}

	// A ']' lines up with the line holding its '['.
	if byteAt(r.skipwhite(theline), 0) == ']' {
		if try, ok := r.findMatchChar('[', r.t.MaxParen); ok {
			return r.indentOf(try.Lnum)
		}
	}

	paren, parenOK := r.findMatchParen(r.t.MaxParen)
	var brace cscan.Pos
	braceOK := false
	if !parenOK || r.t.Java != 0 {
		brace, braceOK = r.findStartBrace()
	}
	if !parenOK && !braceOK {
		return r.topLevelIndent()
	}

	if parenOK && braceOK {
		// Use whichever is closer to the cursor.
		if paren.Before(brace) {
			parenOK = false
		} else {
			braceOK = false
		}
	}

	var amount int
	if parenOK {
		amount = r.parenIndent(paren)
	} else {
		var done bool
		amount, done = r.braceIndent(brace)
		if done {
			return amount
		}
	}

	if r.isComment(theline) {
		amount += r.t.Comment
	}
	if r.t.JumpLabel > 0 && origLabel {
		amount -= r.t.JumpLabel
	}
	return amount
}
