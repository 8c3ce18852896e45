package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/cinder/internal/report"
)

// FmtCmd re-indents files.
func FmtCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Re-indent files",
		Long: `Re-indent every line of each file.

Without files, standard input is formatted to standard output. Without
-w, --diff or --json the formatted text is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			diff, _ := cmd.Flags().GetBool("diff")
			asJSON, _ := cmd.Flags().GetBool("json")

			if len(args) == 0 {
				return c.fmtStdin(cmd)
			}

			out := cmd.OutOrStdout()
			results := make([]report.FileResult, 0, len(args))
			failed := 0
			for _, path := range args {
				oldText, newText, res := c.formatFile(cmd.Context(), path, write)
				results = append(results, res)
				if res.Err != nil {
					failed++
					c.logger.Error("format failed", "path", path, "error", res.Err)
					continue
				}
				switch {
				case asJSON:
				case diff:
					fmt.Fprint(out, report.Diff(path, oldText, newText, !c.noColor))
				case write:
					if res.Written {
						c.logger.Info("reindented", "path", path, "lines", res.Changed,
							"stat", report.DiffStat(oldText, newText))
					}
				default:
					fmt.Fprint(out, newText)
				}
			}

			if asJSON {
				doc, err := report.JSON(results)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, doc)
				files, changedFiles, changedLines, errs := report.Summary(doc)
				c.logger.Debug("summary", "files", files, "changed_files", changedFiles,
					"changed_lines", changedLines, "errors", errs)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolP("write", "w", false, "write the result back to each file")
	cmd.Flags().BoolP("diff", "d", false, "print a unified diff instead of the formatted text")
	cmd.Flags().Bool("json", false, "print a JSON report")

	return cmd
}

func (c *cli) fmtStdin(cmd *cobra.Command) error {
	data, err := io.ReadAll(c.stdin)
	if err != nil {
		return err
	}
	newText, _, err := c.formatText(cmd.Context(), "", string(data))
	if err != nil {
		return err
	}
	diff, _ := cmd.Flags().GetBool("diff")
	if diff {
		fmt.Fprint(cmd.OutOrStdout(), report.Diff("<stdin>", string(data), newText, !c.noColor))
		return nil
	}
	_, err = io.WriteString(cmd.OutOrStdout(), newText)
	return err
}
