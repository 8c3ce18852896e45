package indent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/cinder/internal/indent/expr"
)

type lineView struct {
	lines   []string
	cur     Position
	insert  bool
	reject  bool
	changed []int
}

func newView(lines ...string) *lineView {
	return &lineView{lines: lines, cur: Position{Lnum: len(lines)}}
}

func (v *lineView) LineCount() int { return len(v.lines) }

func (v *lineView) Line(lnum int) string {
	if lnum < 1 || lnum > len(v.lines) {
		return ""
	}
	return v.lines[lnum-1]
}

func (v *lineView) CurrentLine() string { return v.Line(v.cur.Lnum) }

func (v *lineView) SetCurrentLine(text string) error {
	if v.reject {
		return errors.New("read-only")
	}
	v.lines[v.cur.Lnum-1] = text
	return nil
}

func (v *lineView) Cursor() Position     { return v.cur }
func (v *lineView) SetCursor(p Position) { v.cur = p }
func (v *lineView) InsertMode() bool     { return v.insert }
func (v *lineView) LineChanged(lnum int) { v.changed = append(v.changed, lnum) }

func testOptions() Options {
	o := DefaultOptions()
	o.ShiftWidth = 4
	return o
}

func TestComputeCIndent(t *testing.T) {
	ix := New(testOptions())

	v := newView("if (x) {", "")
	assert.Equal(t, 4, ix.ComputeCIndent(v))

	v = newView("switch (x) {", "case 1:", "    foo();", "")
	assert.Equal(t, 4, ix.ComputeCIndent(v))

	v.cur = Position{Lnum: 9}
	assert.Equal(t, 0, ix.ComputeCIndent(v))
}

func TestComputeLispIndent(t *testing.T) {
	o := testOptions()
	o.Lisp = true
	o.LispWords = "defun"
	ix := New(o)

	v := newView("(let ((a 1))", "b)")
	assert.Equal(t, 5, ix.ComputeLispIndent(v))
	assert.Equal(t, 5, ix.ComputeIndent(context.Background(), v))
}

func TestComputeAutoIndent(t *testing.T) {
	o := testOptions()
	o.CIndent = false
	ix := New(o)

	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"follows previous", []string{"  foo", "bar"}, 2},
		{"after opener", []string{"  foo {", "bar"}, 6},
		{"closer", []string{"    x", "}"}, 0},
		{"skips blank", []string{"\tfoo", "   ", "bar"}, 8},
		{"first line", []string{"  bar"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newView(tt.lines...)
			assert.Equal(t, tt.want, ix.ComputeIndent(context.Background(), v))
		})
	}
}

func TestComputeIndentExpr(t *testing.T) {
	ev, err := expr.New("function indent(l) return 3 end")
	require.NoError(t, err)
	defer ev.Close()

	ix := New(testOptions(), WithExpr(ev))
	v := newView("int x;", "y;")
	assert.Equal(t, 3, ix.ComputeIndent(context.Background(), v))

	ev2, err := expr.New(`function indent(l) return cinder.cindent(l) + 1 end`)
	require.NoError(t, err)
	defer ev2.Close()
	ix = New(testOptions(), WithExpr(ev2))
	v = newView("if (x) {", "y;")
	assert.Equal(t, 5, ix.ComputeIndent(context.Background(), v))

	ev3, err := expr.New(`function indent(l) error("no") end`)
	require.NoError(t, err)
	defer ev3.Close()
	ix = New(testOptions(), WithExpr(ev3))
	assert.Equal(t, -1, ix.ComputeIndent(context.Background(), v))
}

func TestSetIndent(t *testing.T) {
	ix := New(testOptions())

	v := newView("    foo")
	v.cur = Position{Lnum: 1, Col: 5}
	assert.True(t, ix.SetIndent(v, 0, 0))
	assert.Equal(t, "foo", v.lines[0])
	assert.Equal(t, 1, v.cur.Col)

	assert.False(t, ix.SetIndent(v, 0, 0))

	assert.True(t, ix.SetIndent(v, 12, SetChanged))
	assert.Equal(t, "\t    foo", v.lines[0])
	assert.Equal(t, []int{1}, v.changed)

	v = newView("  x")
	v.cur = Position{Lnum: 1, Col: 1}
	assert.True(t, ix.SetIndent(v, 0, 0))
	assert.Equal(t, 0, v.cur.Col)

	v = newView("  x")
	v.reject = true
	assert.False(t, ix.SetIndent(v, 4, 0))
	assert.Equal(t, "  x", v.lines[0])
}

func TestCopyIndent(t *testing.T) {
	o := testOptions()
	o.ExpandTab = true
	ix := New(o)

	v := newView("foo")
	assert.True(t, ix.CopyIndent(v, 10, "\t    "))
	assert.Equal(t, "\t  foo", v.lines[0])

	assert.True(t, ix.CopyIndent(v, 3, "\t"))
	assert.Equal(t, "   foo", v.lines[0])
}

const indentedC = `int main(void)
{
    int i;

    for (i = 0; i < 10; i++) {
        if (i % 2)
            continue;
        printf("%d\n", i);
    }
    return 0;
}`

func TestReindentNoop(t *testing.T) {
	ix := New(testOptions())
	v := newView(strings.Split(indentedC, "\n")...)

	n, err := ix.ReindentAll(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, indentedC, strings.Join(v.lines, "\n"))
	assert.Equal(t, Position{Lnum: 1}, v.cur)
}

func TestReindentFlattened(t *testing.T) {
	ix := New(testOptions())
	var flat []string
	for _, l := range strings.Split(indentedC, "\n") {
		flat = append(flat, strings.TrimLeft(l, " "))
	}
	flat[3] = "   "
	v := newView(flat...)

	n, err := ix.Reindent(context.Background(), v, 1, len(flat))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, indentedC, strings.Join(v.lines, "\n"))
}

func TestReindentKeepsRawStrings(t *testing.T) {
	ix := New(testOptions())
	v := newView(
		"void f() {",
		`const char *s = R"(`,
		"  test {",
		"    field: 123",
		"  }",
		` )";`,
		"}",
	)

	n, err := ix.ReindentAll(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{
		"void f() {",
		`    const char *s = R"(`,
		"  test {",
		"    field: 123",
		"  }",
		` )";`,
		"}",
	}, v.lines)

	v.cur = Position{Lnum: 4}
	assert.Equal(t, -1, ix.ComputeCIndent(v))
}

func TestReindentLispSkipsFirstLine(t *testing.T) {
	o := testOptions()
	o.Lisp = true
	ix := New(o)
	v := newView("  (defun foo ()", "x)")

	n, err := ix.Reindent(context.Background(), v, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"  (defun foo ()", "    x)"}, v.lines)
}

func TestReindentErrors(t *testing.T) {
	ix := New(testOptions())
	v := newView("a", "b")

	_, err := ix.Reindent(context.Background(), v, 1, 3)
	assert.True(t, errors.Is(err, ErrLineOutOfRange))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ix.Reindent(ctx, v, 1, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReindentIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pad := rapid.SampledFrom([]string{"", " ", "  ", "\t", "        "})
		var lines []string
		depth := 0
		n := rapid.IntRange(1, 30).Draw(t, "n")
		for i := 0; i < n; i++ {
			switch op := rapid.IntRange(0, 2).Draw(t, "op"); {
			case op == 0:
				lines = append(lines, pad.Draw(t, "pad")+"if (x) {")
				depth++
			case op == 1 && depth > 0:
				lines = append(lines, pad.Draw(t, "pad")+"}")
				depth--
			default:
				lines = append(lines, pad.Draw(t, "pad")+"foo();")
			}
		}
		for ; depth > 0; depth-- {
			lines = append(lines, "}")
		}

		ix := New(testOptions())
		v := newView(lines...)
		_, err := ix.ReindentAll(context.Background(), v)
		if err != nil {
			t.Fatalf("reindent: %v", err)
		}
		once := append([]string(nil), v.lines...)
		changed, err := ix.ReindentAll(context.Background(), v)
		if err != nil {
			t.Fatalf("reindent: %v", err)
		}
		if changed != 0 {
			t.Fatalf("expected second pass to change nothing, changed %d:\n%s", changed, strings.Join(once, "\n"))
		}
	})
}

func TestParseCinoptions(t *testing.T) {
	tbl := ParseCinoptions("b1,:0,=2s,/0", 4)
	assert.Equal(t, 1, tbl.CaseBreak)
	assert.Equal(t, 0, tbl.Case)
	assert.Equal(t, 8, tbl.CaseCode)
	assert.Equal(t, 0, tbl.Comment)
}

func TestSnapshot(t *testing.T) {
	s := Options{TabStop: 4, CinKeys: "0{,0}"}.Snapshot()
	assert.Equal(t, 4, s.ShiftWidth)
	assert.False(t, s.HashAtLeft)
	assert.Nil(t, s.CinWords)

	s = DefaultOptions().Snapshot()
	assert.True(t, s.HashAtLeft)
	assert.Equal(t, []string{"if", "else", "while", "do", "for", "switch"}, s.CinWords)
	assert.NotEmpty(t, s.Comments)
}
