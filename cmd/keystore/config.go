package main

import (
	"github.com/spf13/cobra"

	"github.com/zx06/keystore/internal/output"
	"github.com/zx06/keystore/internal/secret"
)

// NewConfigCommand creates the config command group
func NewConfigCommand(w *output.Writer) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	configCmd.AddCommand(newConfigShowCommand(w))

	return configCmd
}

// newConfigShowCommand creates the config show command
func newConfigShowCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show resolved configuration and store paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}

			r := GlobalConfig.Resolved
			authToken := ""
			switch {
			case secret.IsKeyringRef(r.MCP.HTTP.AuthToken):
				authToken = r.MCP.HTTP.AuthToken
			case r.MCP.HTTP.AuthToken != "":
				authToken = "***"
			}
			result := map[string]any{
				"config_path": r.ConfigPath,
				"backend":     r.Backend,
				"format":      r.Format,
				"log_level":   r.LogLevel,
				"paths":       storePaths(),
				"mcp": map[string]any{
					"transport":             r.MCP.Transport,
					"http_addr":             r.MCP.HTTP.Addr,
					"http_auth_token":       authToken,
					"allow_plaintext_token": r.MCP.HTTP.AllowPlaintextToken,
				},
			}

			return w.WriteOK(format, result)
		},
	}
}
