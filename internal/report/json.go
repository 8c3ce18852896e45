package report

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FileResult is the outcome of formatting one file.
type FileResult struct {
	Path     string
	Filetype string
	Lines    int
	Changed  int
	Written  bool
	Err      error
}

// JSON renders results as
//
//	{"files":[{"path":..,"filetype":..,"lines":..,"changed":..,"written":..}],
//	 "summary":{"files":..,"changed_files":..,"changed_lines":..,"errors":..}}
//
// A failed file carries an "error" string instead of the counts.
func JSON(results []FileResult) (string, error) {
	doc := `{"files":[]}`
	var err error
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.Set(doc, path, v)
		}
	}

	for i, r := range results {
		p := fmt.Sprintf("files.%d.", i)
		set(p+"path", r.Path)
		if r.Err != nil {
			set(p+"error", r.Err.Error())
			continue
		}
		set(p+"filetype", r.Filetype)
		set(p+"lines", r.Lines)
		set(p+"changed", r.Changed)
		set(p+"written", r.Written)
	}
	if err != nil {
		return "", fmt.Errorf("build report: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	changedLines := int64(0)
	for _, n := range gjson.Get(doc, "files.#.changed").Array() {
		changedLines += n.Int()
	}
	set("summary.files", len(results))
	set("summary.changed_files", gjson.Get(doc, "files.#(changed>0)#|#").Int())
	set("summary.changed_lines", changedLines)
	set("summary.errors", failed)
	if err != nil {
		return "", fmt.Errorf("build report: %w", err)
	}
	return doc, nil
}

// Summary reads the totals back from a JSON report.
func Summary(doc string) (files, changedFiles, changedLines, errors int64) {
	s := gjson.Get(doc, "summary")
	return s.Get("files").Int(), s.Get("changed_files").Int(), s.Get("changed_lines").Int(), s.Get("errors").Int()
}
