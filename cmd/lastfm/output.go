package main

import (
	"encoding/json"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// wantTable reports whether output should be rendered as a table: stdout is
// a terminal and --json was not given.
func (c *commandContext) wantTable(cmd *cobra.Command) bool {
	if c.flags.json {
		return false
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// render prints v as JSON, or the given table when a table is wanted.
func (c *commandContext) render(cmd *cobra.Command, v any, table func() string) error {
	if !c.wantTable(cmd) {
		return writeJSON(cmd, v)
	}
	_, err := cmd.OutOrStdout().Write([]byte(table() + "\n"))
	return err
}

func formatCount(n int64) string {
	return humanize.Comma(n)
}

func formatOptCount(n *int64) string {
	if n == nil {
		return "-"
	}
	return humanize.Comma(*n)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
