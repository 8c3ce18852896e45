package lisp

import (
	"strings"

	"github.com/dshills/cinder/internal/indent/column"
	"github.com/dshills/cinder/internal/indent/cscan"
	"github.com/dshills/cinder/internal/indent/match"
)

// DefaultWords are the forms whose body is indented by two columns.
const DefaultWords = "defun,define,defmacro,set!,lambda,if,case,let,flet,let*,letrec,do,do*," +
	"define-syntax,let-syntax,letrec-syntax,destructuring-bind,defpackage,defparameter," +
	"defstruct,deftype,defvar,do-all-symbols,do-external-symbols,do-symbols,dolist," +
	"dotimes,ecase,etypecase,eval-when,labels,macrolet,multiple-value-bind," +
	"multiple-value-call,multiple-value-prog1,multiple-value-setq,prog1,progv,typecase," +
	"unless,unwind-protect,when,with-input-from-string,with-open-file,with-open-stream," +
	"with-output-to-string,with-package-iterator,define-condition,handler-bind," +
	"handler-case,restart-bind,restart-case,with-simple-restart,store-value,use-value," +
	"muffle-warning,abort,continue,with-slots,with-slots*,with-accessors,with-accessors*," +
	"defclass,defmethod,print-unreadable-object"

// Options configure an Engine.
type Options struct {
	TabStop int

	// Words are the body-indenting forms. nil means DefaultWords.
	Words []string

	// ViLisp selects the traditional vi behavior: two columns in from the
	// opener regardless of the form's head.
	ViLisp bool
}

// Engine computes Lisp indents. It is safe for concurrent use.
type Engine struct {
	opts Options
}

// New creates an Engine.
func New(opts Options) *Engine {
	if opts.TabStop <= 0 {
		opts.TabStop = column.DefaultTabStop
	}
	if opts.Words == nil {
		opts.Words = cscan.ParseWords(DefaultWords)
	}
	return &Engine{opts: opts}
}

// Indent returns the indent, in columns, for line lnum of buf.
func (e *Engine) Indent(buf cscan.Lines, lnum int) int {
	if lnum < 1 || lnum > buf.LineCount() {
		return 0
	}
	m := match.New(buf, true)
	cursor := cscan.Pos{Lnum: lnum}

	// The innermost of the unclosed '(' and '['.
	open, ok := m.FindMatchLimit(cursor, '(', 0, 0)
	if bracket, bok := m.FindMatchLimit(cursor, '[', 0, 0); bok && (!ok || open.Before(bracket)) {
		open, ok = bracket, true
	}
	if !ok {
		return 0
	}

	if amount, ok := e.siblingIndent(buf, lnum, open.Lnum); ok {
		return amount
	}
	return e.argumentIndent(buf.Line(open.Lnum), open.Col)
}

// siblingIndent returns the indent of the nearest non-blank line above
// lnum, but not above the opener's line, that starts at the same nesting
// level as lnum.
func (e *Engine) siblingIndent(buf cscan.Lines, lnum, openLnum int) (int, bool) {
	depth := 0
	for l := lnum - 1; l >= openLnum; l-- {
		line := buf.Line(l)
		if strings.TrimLeft(line, " \t") == "" {
			continue
		}
		depth += nesting(line)
		if depth == 0 {
			return column.IndentOf(line, e.opts.TabStop), true
		}
	}
	return 0, false
}

// nesting returns the change in bracket depth across line, ignoring
// brackets in strings, comments and escapes.
func nesting(line string) int {
	n := 0
	for p := 0; p < len(line); p++ {
		switch c := line[p]; {
		case c == ';':
			return n
		case c == '\\':
			if p+1 < len(line) {
				p++
			}
			continue
		case c == '"' && p+1 < len(line):
			for p++; p < len(line) && line[p] != '"'; p++ {
				if line[p] == '\\' {
					p++
					if p >= len(line) {
						break
					}
					if p+1 >= len(line) {
						p++
						break
					}
				}
			}
			if p >= len(line) {
				return n
			}
		}
		switch line[p] {
		case '(', '[':
			n++
		case ')', ']':
			n--
		}
	}
	return n
}

// argumentIndent lines up with the first argument of the form opened at
// col in line.
func (e *Engine) argumentIndent(line string, col int) int {
	ts := e.opts.TabStop
	amount := column.WidthTo(line, col, ts)
	if e.opts.ViLisp {
		return amount + 2
	}

	p := col
	if c := cscan.At(line, p); (c == '(' || c == '[') && e.isBodyWord(line[p+1:]) {
		return amount + 2
	}
	if p < len(line) {
		p++
	}
	firstTry := column.WidthTo(line, p, ts)
	p = cscan.SkipWhite(line, p)

	c := cscan.At(line, p)
	if c == 0 || c == ';' {
		// Nothing after the opener.
		return column.WidthTo(line, p, ts)
	}

	// A '(' head accommodates a first let/do argument spanning lines.
	if c != '(' && c != '[' {
		firstTry++
	}

	if c != '"' && c != '\'' && c != '#' && !cscan.IsDigit(c) {
		quoted := false
		depth := 0
		for p < len(line) && (!cscan.IsWhite(line[p]) || quoted || depth > 0) {
			switch line[p] {
			case '"':
				quoted = !quoted
			case '(', '[':
				if !quoted {
					depth++
				}
			case ')', ']':
				if !quoted {
					depth--
				}
			case '\\':
				if p+1 < len(line) {
					p++
				}
			}
			p++
		}
	}
	p = cscan.SkipWhite(line, p)

	if c := cscan.At(line, p); c == 0 || c == ';' {
		return firstTry
	}
	return column.WidthTo(line, p, ts)
}

// isBodyWord reports whether s starts with one of the body-indenting
// words followed by white space or the end of the line.
func (e *Engine) isBodyWord(s string) bool {
	for _, w := range e.opts.Words {
		if w == "" || !strings.HasPrefix(s, w) {
			continue
		}
		if c := cscan.At(s, len(w)); c == 0 || cscan.IsWhite(c) {
			return true
		}
	}
	return false
}
