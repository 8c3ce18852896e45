package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/dshills/cinder/internal/watch"
)

// WatchCmd re-indents files as they are saved.
func WatchCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dirs...]",
		Short: "Re-indent files of known types whenever they change",
		Long: `Watch the given directories (default ".") recursively and re-indent
every file with a known extension after it is written. Files are only
rewritten when their indentation changes, so the watcher's own writes
settle after one round.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			delay, _ := cmd.Flags().GetDuration("delay")

			w, err := watch.New(watch.Options{
				Delay: delay,
				Filter: func(path string) bool {
					_, err := c.cfg.Filetype(path)
					return err == nil
				},
			})
			if err != nil {
				return err
			}
			defer w.Close()

			for _, dir := range args {
				if err := w.Add(dir); err != nil {
					return err
				}
			}
			c.logger.Info("watching", "paths", args)

			err = w.Run(cmd.Context(), func(ev watch.Event) error {
				_, _, res := c.formatFile(cmd.Context(), ev.Path, true)
				if res.Err != nil {
					return res.Err
				}
				if res.Written {
					c.logger.Info("reindented", "path", ev.Path, "lines", res.Changed)
				}
				return nil
			}, func(err error) {
				c.logger.Warn("watch", "error", err)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().Duration("delay", watch.DefaultDelay, "debounce delay")
	return cmd
}
