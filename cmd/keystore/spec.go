package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/zx06/keystore/internal/app"
	"github.com/zx06/keystore/internal/errors"
	"github.com/zx06/keystore/internal/output"
)

// NewSpecCommand creates the spec command. With arguments it prints a single
// command's entry, e.g. `keystore spec mcp server`.
func NewSpecCommand(a *app.App, w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "spec [command...]",
		Short: "Export the machine-readable CLI contract (commands, flags, env vars, error codes)",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			s := a.BuildSpec()
			if len(args) == 0 {
				return w.WriteOK(format, s)
			}
			name := strings.Join(args, " ")
			c, ok := s.Command(name)
			if !ok {
				return errors.New(errors.CodeCfgInvalid, "unknown command", map[string]any{"command": name})
			}
			return w.WriteOK(format, c)
		},
	}
}
