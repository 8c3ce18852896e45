package indent

import (
	"context"
	"strings"

	"github.com/dshills/cinder/internal/indent/cindent"
	"github.com/dshills/cinder/internal/indent/column"
	"github.com/dshills/cinder/internal/indent/expr"
	"github.com/dshills/cinder/internal/indent/lisp"
	"github.com/dshills/cinder/internal/indent/writer"
	"github.com/dshills/cinder/internal/logging"
)

// SetFlags modify SetIndent.
type SetFlags uint8

const (
	// SetInsert keeps the existing whitespace and inserts the new indent in
	// front of it, as for a freshly opened line.
	SetInsert SetFlags = 1 << iota

	// SetChanged reports the rewrite to a host implementing ChangeNotifier.
	SetChanged
)

// Indenter computes and applies indents for one set of Options. It holds
// no per-buffer state; the Lua evaluator, when present, serializes calls.
type Indenter struct {
	snap   Snapshot
	c      *cindent.Engine
	lisp   *lisp.Engine
	expr   *expr.Evaluator
	logger *logging.Logger
}

// IndenterOption configures an Indenter.
type IndenterOption func(*Indenter)

// WithLogger sets the logger. Records are written at Debug.
func WithLogger(l *logging.Logger) IndenterOption {
	return func(ix *Indenter) {
		ix.logger = l.WithComponent("indent")
	}
}

// WithExpr makes ev the indent expression. It takes precedence over the C
// and Lisp engines in ComputeIndent.
func WithExpr(ev *expr.Evaluator) IndenterOption {
	return func(ix *Indenter) {
		ix.expr = ev
	}
}

// New creates an Indenter.
func New(opts Options, ixOpts ...IndenterOption) *Indenter {
	snap := opts.Snapshot()
	ix := &Indenter{
		snap: snap,
		c: cindent.New(cindent.Options{
			TabStop:       snap.TabStop,
			Table:         snap.Table,
			CinWords:      snap.CinWords,
			Comments:      []cindent.CommentPart(snap.Comments),
			HashAtLeft:    snap.HashAtLeft,
			MaxBraceLines: snap.MaxBraceLines,
		}),
		lisp: lisp.New(lisp.Options{
			TabStop: snap.TabStop,
			Words:   snap.LispWords,
			ViLisp:  snap.ViLisp,
		}),
		logger: logging.Null(),
	}
	for _, opt := range ixOpts {
		opt(ix)
	}
	return ix
}

// Snapshot returns the resolved options.
func (ix *Indenter) Snapshot() Snapshot { return ix.snap }

func inRange(v BufferView, lnum int) bool {
	return lnum >= 1 && lnum <= v.LineCount()
}

// ComputeCIndent returns the C indent for the cursor line, or -1 when the
// line is inside a C++ raw string and keeps its indent.
func (ix *Indenter) ComputeCIndent(v BufferView) int {
	pos := v.Cursor()
	if !inRange(v, pos.Lnum) {
		ix.logger.Debug("cindent outside buffer", "line", pos.Lnum)
		return 0
	}
	return ix.c.Indent(v, cindent.Request{Lnum: pos.Lnum, Col: pos.Col, InsertMode: v.InsertMode()})
}

// ComputeLispIndent returns the Lisp indent for the cursor line.
func (ix *Indenter) ComputeLispIndent(v BufferView) int {
	pos := v.Cursor()
	if !inRange(v, pos.Lnum) {
		ix.logger.Debug("lisp indent outside buffer", "line", pos.Lnum)
		return 0
	}
	return ix.lisp.Indent(v, pos.Lnum)
}

// ComputeAutoIndent returns the indent of the previous non-blank line, one
// level deeper after a line ending in an opener and one level shallower
// for a line starting with a closer.
func (ix *Indenter) ComputeAutoIndent(v BufferView) int {
	lnum := v.Cursor().Lnum
	if !inRange(v, lnum) {
		return 0
	}
	amount := 0
	for prev := lnum - 1; prev >= 1; prev-- {
		text := strings.TrimRight(v.Line(prev), " \t")
		if text == "" {
			continue
		}
		amount = column.IndentOf(text, ix.snap.TabStop)
		switch text[len(text)-1] {
		case '{', '[', '(':
			amount += ix.snap.ShiftWidth
		}
		break
	}
	content := strings.TrimLeft(v.Line(lnum), " \t")
	if content != "" {
		switch content[0] {
		case '}', ']', ')':
			amount -= ix.snap.ShiftWidth
		}
	}
	return max(amount, 0)
}

// ComputeIndent returns the indent for the cursor line using the indent
// expression, the Lisp engine, the C engine or the previous line, in that
// order of preference. It returns -1 when the line should keep its
// current indent, which happens when the expression asks for it or fails.
func (ix *Indenter) ComputeIndent(ctx context.Context, v BufferView) int {
	switch {
	case ix.expr != nil:
		lnum := v.Cursor().Lnum
		n, err := ix.expr.Indent(ctx, exprHost{ix: ix, v: v}, lnum)
		if err != nil {
			ix.logger.Debug("indent expression failed", "line", lnum, "error", err)
			return -1
		}
		return n
	case ix.snap.Lisp:
		return ix.ComputeLispIndent(v)
	case ix.snap.CIndent:
		return ix.ComputeCIndent(v)
	default:
		return ix.ComputeAutoIndent(v)
	}
}

// SetIndent replaces the indent of the cursor line with whitespace of
// width col and keeps the cursor on the same text. It returns false when
// the line already had that indent or the host rejected the new line, in
// which case the line is left untouched.
func (ix *Indenter) SetIndent(v BufferView, col int, flags SetFlags) bool {
	var wflags writer.Flags
	if flags&SetInsert != 0 {
		wflags |= writer.Insert
	}
	line := v.CurrentLine()
	newLine, changed := writer.SetIndent(line, col, ix.snap.writerConfig(), wflags)
	if !changed {
		return false
	}
	return ix.replaceCurrent(v, line, newLine, flags)
}

// CopyIndent replaces the indent of the cursor line with whitespace of
// width col, reusing the leading whitespace of src where it fits.
func (ix *Indenter) CopyIndent(v BufferView, col int, src string) bool {
	line := v.CurrentLine()
	newLine, changed := writer.CopyIndent(src, col, line, ix.snap.writerConfig())
	if !changed {
		return false
	}
	return ix.replaceCurrent(v, line, newLine, 0)
}

func (ix *Indenter) replaceCurrent(v BufferView, oldLine, newLine string, flags SetFlags) bool {
	pos := v.Cursor()
	if err := v.SetCurrentLine(newLine); err != nil {
		ix.logger.Debug("host rejected indent", "line", pos.Lnum, "error", err)
		return false
	}

	oldInd := len(oldLine) - len(strings.TrimLeft(oldLine, " \t"))
	newInd := len(newLine) - len(strings.TrimLeft(newLine, " \t"))
	if flags&SetInsert != 0 {
		oldInd = 0
		newInd = len(newLine) - len(oldLine)
	}
	switch {
	case pos.Col >= oldInd:
		pos.Col += newInd - oldInd
	case pos.Col >= newInd:
		pos.Col = newInd
	}
	v.SetCursor(pos)

	if flags&SetChanged != 0 {
		if n, ok := v.(ChangeNotifier); ok {
			n.LineChanged(pos.Lnum)
		}
	}
	return true
}

// exprHost exposes a buffer and the engines to an indent expression.
type exprHost struct {
	ix *Indenter
	v  BufferView
}

func (h exprHost) LineCount() int       { return h.v.LineCount() }
func (h exprHost) Line(lnum int) string { return h.v.Line(lnum) }
func (h exprHost) ShiftWidth() int      { return h.ix.snap.ShiftWidth }
func (h exprHost) TabStop() int         { return h.ix.snap.TabStop }

func (h exprHost) CIndent(lnum int) int {
	if !inRange(h.v, lnum) {
		return -1
	}
	return h.ix.c.Indent(h.v, cindent.Request{Lnum: lnum})
}

func (h exprHost) LispIndent(lnum int) int {
	if !inRange(h.v, lnum) {
		return -1
	}
	return h.ix.lisp.Indent(h.v, lnum)
}
