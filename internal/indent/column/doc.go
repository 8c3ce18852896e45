// Package column converts between byte offsets within a line and display
// columns, the unit every indentation decision is made in.
//
// A tab advances to the next multiple of the tab stop. Other characters
// take their terminal display width, measured per grapheme cluster, so
// wide CJK text and combining marks line up the same way they do on screen.
// Control characters are displayed in caret notation (^X) and count as two
// columns.
//
// Basic usage:
//
//	col := column.WidthTo("\tfoo", 2, 8)      // 9
//	ind := column.IndentOf("\t  bar", 8)      // 10
//	off := column.OffsetAt("\tfoo", 9, 8)     // 2
package column
