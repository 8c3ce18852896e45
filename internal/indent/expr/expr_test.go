package expr

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	lines []string
}

func (h *fakeHost) LineCount() int { return len(h.lines) }

func (h *fakeHost) Line(lnum int) string {
	if lnum < 1 || lnum > len(h.lines) {
		return ""
	}
	return h.lines[lnum-1]
}

func (h *fakeHost) CIndent(lnum int) int    { return 100 + lnum }
func (h *fakeHost) LispIndent(lnum int) int { return 200 + lnum }
func (h *fakeHost) ShiftWidth() int         { return 4 }
func (h *fakeHost) TabStop() int            { return 8 }

func eval(t *testing.T, src string, host Host, lnum int) int {
	t.Helper()
	e, err := New(src)
	require.NoError(t, err)
	defer e.Close()
	n, err := e.Indent(context.Background(), host, lnum)
	require.NoError(t, err)
	return n
}

func TestIndentConstant(t *testing.T) {
	assert.Equal(t, 3, eval(t, "function indent(l) return 3 end", &fakeHost{}, 1))
}

func TestIndentHostFunctions(t *testing.T) {
	host := &fakeHost{lines: []string{"\tfoo", "bar"}}

	tests := []struct {
		name string
		src  string
		want int
	}{
		{"previous plus shiftwidth", "function indent(l) return cinder.indent(l-1) + cinder.shiftwidth() end", 12},
		{"line count", "function indent(l) return cinder.line_count() end", 2},
		{"getline", "function indent(l) return #cinder.getline(l) end", 3},
		{"cindent", "function indent(l) return cinder.cindent(l) end", 102},
		{"lispindent", "function indent(l) return cinder.lispindent(l) end", 202},
		{"tabstop", "function indent(l) return cinder.tabstop() end", 8},
		{"negative keeps", "function indent(l) return -5 end", -1},
		{"fraction truncated", "function indent(l) return 2.7 end", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eval(t, tt.src, host, 2))
		})
	}
}

func TestSandbox(t *testing.T) {
	src := `function indent(l)
  if os == nil and io == nil and dofile == nil and load == nil then
    return 1
  end
  return 0
end`
	assert.Equal(t, 1, eval(t, src, &fakeHost{}, 1))
}

func TestNewErrors(t *testing.T) {
	_, err := New("x = 1")
	assert.True(t, errors.Is(err, ErrNoIndentFunc))

	_, err = New("function indent(l) return")
	assert.Error(t, err)

	e, err := New("function myindent(l) return 7 end", WithFunc("myindent"))
	require.NoError(t, err)
	defer e.Close()
	n, err := e.Indent(context.Background(), &fakeHost{}, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestIndentErrors(t *testing.T) {
	e, err := New(`function indent(l)
  if l == 1 then return "x" end
  error("boom")
end`)
	require.NoError(t, err)

	_, err = e.Indent(context.Background(), &fakeHost{}, 1)
	assert.True(t, errors.Is(err, ErrBadResult))

	_, err = e.Indent(context.Background(), &fakeHost{}, 2)
	assert.ErrorContains(t, err, "boom")

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())
	_, err = e.Indent(context.Background(), &fakeHost{}, 1)
	assert.True(t, errors.Is(err, ErrStateClosed))
}

func TestIndentTimeout(t *testing.T) {
	e, err := New("function indent(l) while true do end end", WithTimeout(50*time.Millisecond))
	require.NoError(t, err)
	defer e.Close()

	_, err = e.Indent(context.Background(), &fakeHost{}, 1)
	assert.Error(t, err)
}
