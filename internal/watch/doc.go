// Package watch reports changed files under a set of directories.
//
// A Watcher wraps fsnotify. Rapid changes to one path are coalesced into a
// single Event delivered after a quiet period, so an editor that writes a
// file in several steps triggers one re-indent.
package watch
