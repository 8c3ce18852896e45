// Package report renders cinder's command line output: line diffs of
// re-indented files, a JSON summary of a formatting run and cinoptions
// tables.
package report
