package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/cinder/internal/indent"
	"github.com/dshills/cinder/internal/report"
)

// CinoCmd explains a cinoptions value.
func CinoCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   `cino ["<cinoptions>"]`,
		Short: "Show how a cinoptions value is interpreted",
		Long: `Parse a cinoptions value for the configured shiftwidth and print the
resulting amounts. Without an argument the configured cinoptions are used.
With --table every entry is listed next to its default.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.settingsFor("")
			if err != nil {
				return err
			}
			snap := s.Options().Snapshot()
			spec := s.CinOptions
			if len(args) == 1 {
				spec = args[0]
			}
			t := indent.ParseCinoptions(spec, snap.ShiftWidth)

			table, _ := cmd.Flags().GetBool("table")
			if table || spec == "" {
				return report.CinoTable(cmd.OutOrStdout(), t, snap.ShiftWidth)
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.CinoAssignments(spec, t))
			return nil
		},
	}

	cmd.Flags().BoolP("table", "t", false, "print every entry as a table")
	return cmd
}
