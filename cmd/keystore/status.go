package main

import (
	"github.com/spf13/cobra"

	"github.com/zx06/keystore/internal/keystore"
	"github.com/zx06/keystore/internal/output"
)

// NewStatusCommand creates the status command
func NewStatusCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the selected backend and store paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			b, err := openBackend()
			if err != nil {
				return err
			}
			paths := storePaths()
			result := map[string]any{
				"backend":   b.Name(),
				"available": b.IsAvailable(),
				"key_path":  paths.KeyFile,
				"data_path": paths.DataFile,
			}
			if fs, ok := b.(*keystore.FileStore); ok {
				result["key_fingerprint"] = fs.KeyFingerprint()
			}
			return w.WriteOK(format, result)
		},
	}
}

// NewCheckCommand creates the check command
func NewCheckCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report records in the encrypted file store that cannot be decrypted",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			fs, err := openFileStore()
			if err != nil {
				return err
			}
			report, err := fs.Check()
			if err != nil {
				return err
			}
			if len(report.Unreadable) > 0 {
				logger().Warn("encrypted file store has unreadable records",
					"path", fs.DataPath(), "count", len(report.Unreadable))
			}
			return w.WriteOK(format, map[string]any{
				"data_path":       fs.DataPath(),
				"key_fingerprint": fs.KeyFingerprint(),
				"total":           report.Total,
				"readable":        report.Readable,
				"unreadable":      report.Unreadable,
			})
		},
	}
}
