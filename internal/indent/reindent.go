package indent

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/cinder/internal/indent/cscan"
)

// Reindent re-indents lines first through last, like Vim's "=" operator.
// Each line is computed against the already re-indented lines above it.
// Blank lines lose their whitespace. With Lisp indenting the first line of
// a multi-line range is left alone. The cursor ends on the first
// non-blank of line first. It returns the number of lines changed.
func (ix *Indenter) Reindent(ctx context.Context, v BufferView, first, last int) (int, error) {
	if first > last {
		first, last = last, first
	}
	if !inRange(v, first) || !inRange(v, last) {
		return 0, fmt.Errorf("%w: %d-%d of %d", ErrLineOutOfRange, first, last, v.LineCount())
	}

	lispFirst := ix.expr == nil && ix.snap.Lisp && first != last
	changed := 0
	for lnum := first; lnum <= last; lnum++ {
		if err := ctx.Err(); err != nil {
			return changed, err
		}
		if lnum == first && lispFirst {
			continue
		}
		v.SetCursor(Position{Lnum: lnum})

		amount := 0
		if strings.TrimLeft(v.Line(lnum), " \t") != "" {
			amount = ix.ComputeIndent(ctx, v)
		}
		if amount >= 0 && ix.SetIndent(v, amount, SetChanged) {
			changed++
		}
	}

	text := v.Line(first)
	v.SetCursor(Position{Lnum: first, Col: cscan.SkipWhite(text, 0)})
	ix.logger.Debug("reindent", "first", first, "last", last, "changed", changed)
	return changed, nil
}

// ReindentAll re-indents every line of v.
func (ix *Indenter) ReindentAll(ctx context.Context, v BufferView) (int, error) {
	if v.LineCount() == 0 {
		return 0, nil
	}
	return ix.Reindent(ctx, v, 1, v.LineCount())
}
