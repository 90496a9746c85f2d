package main

import (
	"github.com/spf13/cobra"

	"github.com/zx06/keystore/internal/app"
	"github.com/zx06/keystore/internal/output"
)

// NewVersionCommand creates the version command; --short prints the bare version
func NewVersionCommand(a *app.App, w *output.Writer) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version, commit and build date",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := a.VersionInfo()
			if short {
				return w.WriteRaw(info.Version)
			}
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			return w.WriteOK(format, info)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version string")
	return cmd
}
