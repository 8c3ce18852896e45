package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const (
	flatC     = "int main(void)\n{\nreturn 0;\n}\n"
	indentedC = "int main(void)\n{\n\treturn 0;\n}\n"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := RootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeTemp(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func readTemp(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCinoAssignments(t *testing.T) {
	out, _, err := execute(t, "", "cino", "b1,:0,=2s,/0", "--sw", "4")
	require.NoError(t, err)
	assert.Equal(t, "case_break=1 case=0 case_code=8 comment=0\n", out)
}

func TestCinoTable(t *testing.T) {
	out, _, err := execute(t, "", "cino", "--table", ">2s", "--sw", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Letter")
	assert.Contains(t, out, "case_code")
}

func TestFmtStdout(t *testing.T) {
	path := writeTemp(t, "main.c", flatC)

	out, _, err := execute(t, "", "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, indentedC, out)
	assert.Equal(t, flatC, readTemp(t, path), "file must be untouched without -w")
}

func TestFmtWrite(t *testing.T) {
	path := writeTemp(t, "main.c", flatC)

	out, _, err := execute(t, "", "--log-level", "error", "fmt", "-w", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, indentedC, readTemp(t, path))

	// A second run has nothing to do.
	_, _, err = execute(t, "", "fmt", "-w", path)
	require.NoError(t, err)
	assert.Equal(t, indentedC, readTemp(t, path))
}

func TestFmtFlags(t *testing.T) {
	path := writeTemp(t, "main.c", flatC)

	out, _, err := execute(t, "", "--sw", "4", "--expandtab", "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, "int main(void)\n{\n    return 0;\n}\n", out)
}

func TestFmtStdin(t *testing.T) {
	out, _, err := execute(t, flatC, "--filetype", "c", "fmt")
	require.NoError(t, err)
	assert.Equal(t, indentedC, out)
}

func TestFmtKeepsCRLF(t *testing.T) {
	path := writeTemp(t, "main.c", strings.ReplaceAll(flatC, "\n", "\r\n"))

	out, _, err := execute(t, "", "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, strings.ReplaceAll(indentedC, "\n", "\r\n"), out)
}

func TestFmtDiff(t *testing.T) {
	path := writeTemp(t, "main.c", flatC)

	out, _, err := execute(t, "", "--no-color", "fmt", "--diff", path)
	require.NoError(t, err)
	assert.Contains(t, out, "--- a/"+path)
	assert.Contains(t, out, "\n-return 0;\n")
	assert.Contains(t, out, "\n+\treturn 0;\n")
	assert.NotContains(t, out, "\x1b[")
}

func TestFmtJSON(t *testing.T) {
	dir := t.TempDir()
	changed := filepath.Join(dir, "a.c")
	clean := filepath.Join(dir, "b.c")
	require.NoError(t, os.WriteFile(changed, []byte(flatC), 0o644))
	require.NoError(t, os.WriteFile(clean, []byte(indentedC), 0o644))

	out, _, err := execute(t, "", "fmt", "--json", changed, clean)
	require.NoError(t, err)
	require.True(t, gjson.Valid(out), out)

	assert.Equal(t, int64(2), gjson.Get(out, "summary.files").Int())
	assert.Equal(t, int64(1), gjson.Get(out, "summary.changed_files").Int())
	assert.Equal(t, int64(1), gjson.Get(out, "summary.changed_lines").Int())
	assert.Equal(t, "c", gjson.Get(out, "files.0.filetype").String())
	assert.Equal(t, int64(4), gjson.Get(out, "files.0.lines").Int())
}

func TestFmtMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.c")
	_, _, err := execute(t, "", "--log-level", "error", "fmt", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 files failed")
}

func TestFmtLisp(t *testing.T) {
	path := writeTemp(t, "foo.lisp", "(defun foo ()\nx)\n")

	out, _, err := execute(t, "", "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, "(defun foo ()\n  x)\n", out)
}

func TestFmtConfigFile(t *testing.T) {
	cfg := writeTemp(t, "cinder.toml", "[indent]\nshiftwidth = 2\nexpandtab = true\n")
	path := writeTemp(t, "main.c", flatC)

	out, _, err := execute(t, "", "--config", cfg, "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, "int main(void)\n{\n  return 0;\n}\n", out)
}

func TestFmtIndentExpr(t *testing.T) {
	cfg := writeTemp(t, "cinder.yaml", "indent:\n  expandtab: true\n  indentexpr: \"function indent(l) return 3 end\"\n")
	path := writeTemp(t, "main.c", "a\nb\n")

	out, _, err := execute(t, "", "--config", cfg, "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, "   a\n   b\n", out)
}

func TestFmtBadIndentExpr(t *testing.T) {
	cfg := writeTemp(t, "cinder.toml", "[indent]\nindentexpr = \"x = 1\"\n")
	path := writeTemp(t, "main.c", flatC)

	_, _, err := execute(t, "", "--log-level", "error", "--config", cfg, "fmt", path)
	require.Error(t, err)
}

func TestIndentLine(t *testing.T) {
	path := writeTemp(t, "main.c", flatC)

	out, _, err := execute(t, "", "indent", "-l", "3", path)
	require.NoError(t, err)
	assert.Equal(t, "8\n", out)

	out, _, err = execute(t, "", "--sw", "4", "indent", "-l", "3", path)
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)
}

func TestIndentLineOutOfRange(t *testing.T) {
	path := writeTemp(t, "main.c", flatC)

	_, _, err := execute(t, "", "indent", "-l", "9", path)
	require.Error(t, err)
}

func TestBadConfigFile(t *testing.T) {
	cfg := writeTemp(t, "cinder.ini", "x=1\n")
	_, _, err := execute(t, "", "--config", cfg, "cino", "b1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRunExitCode(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.Equal(t, 0, run([]string{"cino", "b1"}, strings.NewReader(""), &out, &errOut))
	assert.Equal(t, 1, run([]string{"indent"}, strings.NewReader(""), &out, &errOut))
	assert.Contains(t, errOut.String(), "Error:")
}

func TestUnknownFiletypeFlag(t *testing.T) {
	_, _, err := execute(t, flatC, "--filetype", "cobol", "fmt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "known: c, clojure")
}
