package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/cinder/internal/config"
	"github.com/dshills/cinder/internal/engine/buffer"
	"github.com/dshills/cinder/internal/indent"
	"github.com/dshills/cinder/internal/indent/expr"
	"github.com/dshills/cinder/internal/report"
)

// settingsFor resolves the settings for path. An explicit --filetype wins
// over the extension; files of unknown type get the base settings.
func (c *cli) settingsFor(path string) (config.IndentSettings, string, error) {
	s, ft, err := c.resolve(path)
	if err != nil {
		return s, ft, err
	}
	c.applyFlags(&s)
	return s, ft, nil
}

func (c *cli) resolve(path string) (config.IndentSettings, string, error) {
	if c.filetype != "" {
		s, err := c.cfg.For(c.filetype)
		if err != nil {
			return s, "", fmt.Errorf("%w (known: %s)", err, strings.Join(c.cfg.Filetypes(), ", "))
		}
		return s, c.filetype, nil
	}
	if path == "" {
		s, err := c.cfg.Base()
		return s, "", err
	}
	s, ft, err := c.cfg.ForFile(path)
	if errors.Is(err, config.ErrUnknownFiletype) {
		c.logger.Debug("unknown filetype, using base settings", "path", path)
		s, err = c.cfg.Base()
		return s, "", err
	}
	return s, ft, err
}

// indenter builds an Indenter for s. The returned func releases the
// indent expression, if any.
func (c *cli) indenter(s config.IndentSettings) (*indent.Indenter, func(), error) {
	ixOpts := []indent.IndenterOption{indent.WithLogger(c.logger.WithComponent("indent"))}
	release := func() {}

	if s.IndentExpr != "" {
		src, err := exprSource(s.IndentExpr)
		if err != nil {
			return nil, nil, err
		}
		ev, err := expr.New(src)
		if err != nil {
			return nil, nil, fmt.Errorf("indentexpr: %w", err)
		}
		ixOpts = append(ixOpts, indent.WithExpr(ev))
		release = func() { _ = ev.Close() }
	}
	return indent.New(s.Options(), ixOpts...), release, nil
}

// exprSource returns the Lua source of an indentexpr setting. A value
// starting with "@" names a file.
func exprSource(v string) (string, error) {
	name, ok := strings.CutPrefix(v, "@")
	if !ok {
		return v, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("indentexpr: %w", err)
	}
	return string(data), nil
}

// formatText re-indents text as the contents of path.
func (c *cli) formatText(ctx context.Context, path, text string) (string, report.FileResult, error) {
	res := report.FileResult{Path: path}

	s, ft, err := c.settingsFor(path)
	if err != nil {
		return "", res, err
	}
	res.Filetype = ft

	ix, release, err := c.indenter(s)
	if err != nil {
		return "", res, err
	}
	defer release()

	buf := buffer.NewBufferFromString(text,
		buffer.WithName(path),
		buffer.WithDetectedLineEnding(text))
	changed, err := ix.ReindentAll(ctx, buf)
	if err != nil {
		return "", res, err
	}
	res.Lines = buf.LineCount()
	res.Changed = changed

	c.logger.Debug("formatted", "path", path, "filetype", ft, "changed", changed)
	return buf.Text(), res, nil
}

// formatFile re-indents the file at path, writing it back when write is
// set and something changed.
func (c *cli) formatFile(ctx context.Context, path string, write bool) (oldText, newText string, res report.FileResult) {
	oldText, err := readText(path)
	if err != nil {
		res = report.FileResult{Path: path, Err: err}
		return "", "", res
	}

	newText, res, err = c.formatText(ctx, path, oldText)
	if err != nil {
		res.Err = err
		return oldText, oldText, res
	}
	if write && newText != oldText {
		if err := writeFile(path, newText); err != nil {
			res.Err = err
			return oldText, newText, res
		}
		res.Written = true
	}
	return oldText, newText, res
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeFile replaces path's contents, keeping its permissions.
func writeFile(path, text string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), info.Mode().Perm())
}
