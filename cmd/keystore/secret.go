package main

import (
	"github.com/spf13/cobra"

	"github.com/zx06/keystore/internal/output"
)

// NewSetCommand creates the set command
func NewSetCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "set <service> <account> [value]",
		Short: "Store or replace a secret",
		Long: "Store or replace the secret for <service> <account>.\n" +
			"Without [value], the value is prompted for on a terminal (no echo) or read as the first line of stdin.",
		Args: usageArgs(cobra.RangeArgs(2, 3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			service, account := args[0], args[1]
			if err := requireIdentity(service, account); err != nil {
				return err
			}
			value, err := readValue(cmd, args)
			if err != nil {
				return err
			}
			b, err := openBackend()
			if err != nil {
				return err
			}
			if err := b.Set(service, account, value); err != nil {
				return err
			}
			return w.WriteOK(format, map[string]any{
				"service": service,
				"account": account,
				"backend": b.Name(),
			})
		},
	}
}

// NewGetCommand creates the get command
func NewGetCommand(w *output.Writer) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "get <service> <account>",
		Short: "Read a secret",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			service, account := args[0], args[1]
			if err := requireIdentity(service, account); err != nil {
				return err
			}
			b, err := openBackend()
			if err != nil {
				return err
			}
			value, err := b.Get(service, account)
			if err != nil {
				return err
			}
			if raw {
				return w.WriteRaw(value)
			}
			return w.WriteOK(format, map[string]any{
				"service": service,
				"account": account,
				"value":   value,
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print only the value, without envelope")
	return cmd
}

// NewDeleteCommand creates the delete command
func NewDeleteCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <service> <account>",
		Short: "Delete a secret",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			service, account := args[0], args[1]
			if err := requireIdentity(service, account); err != nil {
				return err
			}
			b, err := openBackend()
			if err != nil {
				return err
			}
			if err := b.Delete(service, account); err != nil {
				return err
			}
			return w.WriteOK(format, map[string]any{
				"service": service,
				"account": account,
				"deleted": true,
			})
		},
	}
}
