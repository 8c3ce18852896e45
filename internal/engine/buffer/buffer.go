package buffer

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dshills/cinder/internal/indent/cscan"
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is a list of lines with a cursor. All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	lines      []string
	lineEnding LineEnding
	eol        bool // text ended with a line break
	cursor     cscan.Pos
	insert     bool
	revision   uint64
	name       string
}

// NewBuffer creates a buffer holding one empty line.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lines:      []string{""},
		lineEnding: LineEndingLF,
		cursor:     cscan.Pos{Lnum: 1},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromString creates a buffer with initial content. Any mix of
// line endings is accepted.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.lines, b.eol = splitLines(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything first: a CRLF may be split across reads.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// splitLines breaks s at \r\n, \r and \n. A trailing line break does not
// start another line.
func splitLines(s string) ([]string, bool) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	eol := strings.HasSuffix(s, "\n")
	if eol {
		s = s[:len(s)-1]
	}
	return strings.Split(s, "\n"), eol
}

// Read Operations

// Text returns the full content joined with the buffer's line ending.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.textLocked()
}

func (b *Buffer) textLocked() string {
	seq := b.lineEnding.Sequence()
	text := strings.Join(b.lines, seq)
	if b.eol {
		text += seq
	}
	return text
}

// WriteTo writes the content to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.Text())
	return int64(n), err
}

// Name returns the name the buffer was created with, usually a path.
func (b *Buffer) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.name
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Line returns line lnum, or "" when out of range.
func (b *Buffer) Line(lnum int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if lnum < 1 || lnum > len(b.lines) {
		return ""
	}
	return b.lines[lnum-1]
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.lines...)
}

// IsEmpty reports whether the buffer holds a single empty line.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines) == 1 && b.lines[0] == ""
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// Revision counts line changes.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// Write Operations

// SetLine replaces line lnum.
func (b *Buffer) SetLine(lnum int, text string) error {
	if strings.ContainsAny(text, "\r\n") {
		return ErrMultiLine
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if lnum < 1 || lnum > len(b.lines) {
		return fmt.Errorf("%w: %d of %d", ErrLineOutOfRange, lnum, len(b.lines))
	}
	if b.lines[lnum-1] != text {
		b.lines[lnum-1] = text
		b.revision++
	}
	return nil
}

// SetLineEnding changes the line ending used by Text.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}

// Cursor and mode

// Cursor returns the cursor position.
func (b *Buffer) Cursor() cscan.Pos {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cursor
}

// SetCursor moves the cursor. The line is clamped to the buffer and the
// column to the line length.
func (b *Buffer) SetCursor(p cscan.Pos) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p.Lnum = min(max(p.Lnum, 1), len(b.lines))
	p.Col = min(max(p.Col, 0), len(b.lines[p.Lnum-1]))
	b.cursor = p
}

// CurrentLine returns the cursor line.
func (b *Buffer) CurrentLine() string {
	return b.Line(b.Cursor().Lnum)
}

// SetCurrentLine replaces the cursor line.
func (b *Buffer) SetCurrentLine(text string) error {
	return b.SetLine(b.Cursor().Lnum, text)
}

// InsertMode reports whether the buffer is in insert mode.
func (b *Buffer) InsertMode() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.insert
}

// SetInsertMode switches insert mode.
func (b *Buffer) SetInsertMode(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.insert = on
}

// LineChanged records a change reported by the indenter.
func (b *Buffer) LineChanged(int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revision++
}

// Snapshot returns a read-only copy of the lines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return &Snapshot{
		lines:      append([]string(nil), b.lines...),
		revision:   b.revision,
		lineEnding: b.lineEnding,
		eol:        b.eol,
	}
}
