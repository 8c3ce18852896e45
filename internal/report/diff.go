package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffContext is the number of unchanged lines shown around a change.
const DiffContext = 3

type lineOp struct {
	kind diffmatchpatch.Operation
	text string
}

// lineOps diffs old and new line by line.
func lineOps(oldText, newText string) []lineOp {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var ops []lineOp
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, l := range strings.Split(text, "\n") {
			ops = append(ops, lineOp{kind: d.Type, text: l})
		}
	}
	return ops
}

// Diff returns a unified diff between oldText and newText, or "" when they
// are equal. With colored set, removed lines are red, added lines green
// and hunk headers cyan.
func Diff(name, oldText, newText string, colored bool) string {
	if oldText == newText {
		return ""
	}
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)
	bold := color.New(color.Bold)
	for _, c := range []*color.Color{red, green, cyan, bold} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	ops := lineOps(oldText, newText)
	var sb strings.Builder
	sb.WriteString(bold.Sprintf("--- a/%s", name) + "\n")
	sb.WriteString(bold.Sprintf("+++ b/%s", name) + "\n")

	for start := 0; start < len(ops); {
		// Find the next change.
		first := start
		for first < len(ops) && ops[first].kind == diffmatchpatch.DiffEqual {
			first++
		}
		if first == len(ops) {
			break
		}

		// Extend the hunk while changes are within 2*DiffContext lines.
		lo := max(first-DiffContext, start)
		hi := first
		for i := first; i < len(ops); i++ {
			if ops[i].kind != diffmatchpatch.DiffEqual {
				hi = i
				continue
			}
			if i-hi > 2*DiffContext {
				break
			}
		}
		hi = min(hi+DiffContext, len(ops)-1)

		oldStart, newStart := lineNumbers(ops, lo)
		oldCount, newCount := 0, 0
		for _, op := range ops[lo : hi+1] {
			if op.kind != diffmatchpatch.DiffInsert {
				oldCount++
			}
			if op.kind != diffmatchpatch.DiffDelete {
				newCount++
			}
		}
		sb.WriteString(cyan.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount) + "\n")

		for _, op := range ops[lo : hi+1] {
			switch op.kind {
			case diffmatchpatch.DiffDelete:
				sb.WriteString(red.Sprint("-"+op.text) + "\n")
			case diffmatchpatch.DiffInsert:
				sb.WriteString(green.Sprint("+"+op.text) + "\n")
			default:
				sb.WriteString(" " + op.text + "\n")
			}
		}
		start = hi + 1
	}
	return sb.String()
}

// lineNumbers returns the 1-based old and new line numbers of ops[i].
func lineNumbers(ops []lineOp, i int) (int, int) {
	oldLine, newLine := 1, 1
	for _, op := range ops[:i] {
		if op.kind != diffmatchpatch.DiffInsert {
			oldLine++
		}
		if op.kind != diffmatchpatch.DiffDelete {
			newLine++
		}
	}
	return oldLine, newLine
}

// DiffStat summarizes a diff as "+added -removed".
func DiffStat(oldText, newText string) string {
	added, removed := 0, 0
	for _, op := range lineOps(oldText, newText) {
		switch op.kind {
		case diffmatchpatch.DiffInsert:
			added++
		case diffmatchpatch.DiffDelete:
			removed++
		}
	}
	return fmt.Sprintf("+%d -%d", added, removed)
}
