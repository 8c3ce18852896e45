package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/cinder/internal/engine/buffer"
	"github.com/dshills/cinder/internal/indent"
)

// IndentCmd prints the computed indent of one line.
func IndentCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indent -l N file",
		Short: "Print the indent computed for one line",
		Long: `Print the indent, in columns, that the configured engine computes
for line N of file. The file is read as is; the lines above N are not
re-indented first. -1 means the line keeps its current indent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			lnum, _ := cmd.Flags().GetInt("line")

			buf, err := loadBuffer(path)
			if err != nil {
				return err
			}
			if lnum < 1 || lnum > buf.LineCount() {
				return fmt.Errorf("%w: %d (file has %d lines)", indent.ErrLineOutOfRange, lnum, buf.LineCount())
			}

			s, _, err := c.settingsFor(path)
			if err != nil {
				return err
			}
			ix, release, err := c.indenter(s)
			if err != nil {
				return err
			}
			defer release()

			buf.SetCursor(indent.Position{Lnum: lnum})
			fmt.Fprintln(cmd.OutOrStdout(), ix.ComputeIndent(cmd.Context(), buf))
			return nil
		},
	}

	cmd.Flags().IntP("line", "l", 1, "line number (1-based)")
	return cmd
}

func loadBuffer(path string) (*buffer.Buffer, error) {
	text, err := readText(path)
	if err != nil {
		return nil, err
	}
	return buffer.NewBufferFromString(text,
		buffer.WithName(path),
		buffer.WithDetectedLineEnding(text)), nil
}
