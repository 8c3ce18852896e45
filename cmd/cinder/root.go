package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dshills/cinder/internal/config"
	"github.com/dshills/cinder/internal/logging"
)

// cli is the state shared by the subcommands.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg    *config.Config
	logger *logging.Logger

	flags *pflag.FlagSet

	configFiles []string
	filetype    string
	noColor     bool
}

// RootCmd builds the cinder command tree.
func RootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:           "cinder",
		Short:         "Re-indent C-family and Lisp source like Vim's = operator",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringArrayVarP(&c.configFiles, "config", "c", nil, "configuration file (TOML or YAML); repeatable")
	flags.StringVar(&c.filetype, "filetype", "", "filetype to use instead of detecting it from the extension")
	flags.BoolVar(&c.noColor, "no-color", false, "disable colored output")
	flags.Int("sw", 0, "shiftwidth")
	flags.Int("ts", 0, "tabstop")
	flags.Bool("expandtab", false, "indent with spaces")
	flags.String("cino", "", "cinoptions")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(FmtCmd(c))
	cmd.AddCommand(IndentCmd(c))
	cmd.AddCommand(CinoCmd(c))
	cmd.AddCommand(WatchCmd(c))

	return cmd
}

func (c *cli) setup(cmd *cobra.Command) error {
	opts := make([]config.Option, 0, len(c.configFiles))
	for _, f := range c.configFiles {
		opts = append(opts, config.WithFile(f))
	}
	c.cfg = config.New(opts...)

	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		c.cfg.Set("log.level", f.Value.String())
	}
	c.flags = cmd.Flags()

	if err := c.cfg.Load(cmd.Context()); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	c.logger = logging.New(logging.Config{
		Level:   logging.ParseLevel(c.cfg.LogLevel()),
		Output:  c.stderr,
		Prefix:  "cinder",
		NoColor: c.noColor,
	})
	return nil
}

// applyFlags overrides s with the indent flags given on the command line.
// They win over every filetype section.
func (c *cli) applyFlags(s *config.IndentSettings) {
	if c.flags == nil {
		return
	}
	if c.flags.Changed("sw") {
		s.ShiftWidth, _ = c.flags.GetInt("sw")
	}
	if c.flags.Changed("ts") {
		s.TabStop, _ = c.flags.GetInt("ts")
	}
	if c.flags.Changed("expandtab") {
		s.ExpandTab, _ = c.flags.GetBool("expandtab")
	}
	if c.flags.Changed("cino") {
		s.CinOptions, _ = c.flags.GetString("cino")
	}
	s.Validate()
}
