package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zx06/keystore/internal/config"
	"github.com/zx06/keystore/internal/errors"
	"github.com/zx06/keystore/internal/keystore"
	"github.com/zx06/keystore/internal/log"
	"github.com/zx06/keystore/internal/output"
)

// parseOutputFormat parses and validates the output format string
func parseOutputFormat(s string) (output.Format, error) {
	f, ok := output.ParseFormat(s)
	if !ok {
		return "", errors.New(errors.CodeCfgInvalid, "invalid output format", map[string]any{"format": s})
	}
	return resolveAuto(f), nil
}

// resolveFormatForError resolves the format for error output
func resolveFormatForError(s string) output.Format {
	f, ok := output.ParseFormat(s)
	if !ok {
		f = output.FormatAuto
	}
	return resolveAuto(f)
}

// resolveAuto resolves "auto" format to appropriate format based on TTY
func resolveAuto(f output.Format) output.Format {
	if f != output.FormatAuto {
		return f
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return output.FormatTable
	}
	return output.FormatJSON
}

// normalizeErr normalizes any error to XError
func normalizeErr(err error) *errors.XError {
	if xe, ok := errors.As(err); ok {
		return xe
	}
	// Preserve original error message
	return errors.Wrap(errors.CodeInternal, err.Error(), nil, err)
}

func logger() *slog.Logger {
	if GlobalConfig.Logger != nil {
		return GlobalConfig.Logger
	}
	return log.Discard()
}

// storePaths returns the resolved store paths, falling back to the platform defaults
func storePaths() config.Paths {
	if GlobalConfig.Resolved.Paths.DataFile != "" {
		return GlobalConfig.Resolved.Paths
	}
	return config.DefaultPaths()
}

// openBackend selects the credential backend according to --backend
func openBackend() (keystore.Backend, error) {
	backend := GlobalConfig.BackendStr
	if GlobalConfig.Resolved.Backend != "" {
		backend = GlobalConfig.Resolved.Backend
	}
	mode, ok := keystore.ParseMode(backend)
	if !ok {
		return nil, errors.New(errors.CodeCfgInvalid, "invalid backend (auto|native|file)", map[string]any{"backend": backend})
	}
	paths := storePaths()
	return keystore.Open(keystore.OpenOptions{
		Mode: mode,
		File: keystore.Config{
			KeyPath:  paths.KeyFile,
			DataPath: paths.DataFile,
		},
		Logger: logger(),
	})
}

// openFileStore opens the encrypted file store directly, regardless of --backend
func openFileStore() (*keystore.FileStore, error) {
	paths := storePaths()
	return keystore.NewFileStore(keystore.Config{
		KeyPath:  paths.KeyFile,
		DataPath: paths.DataFile,
		Logger:   logger(),
	})
}

func requireIdentity(service, account string) error {
	if service == "" {
		return errors.New(errors.CodeCfgInvalid, "service must not be empty", nil)
	}
	if account == "" {
		return errors.New(errors.CodeCfgInvalid, "account must not be empty", nil)
	}
	return nil
}

// readValue returns the secret value for set: the third argument if given,
// otherwise a hidden prompt on a terminal, otherwise the first line of stdin.
func readValue(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 2 {
		return args[2], nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Value: ")
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", errors.Wrap(errors.CodeIO, "failed to read value from terminal", nil, err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(errors.CodeIO, "failed to read value from stdin", nil, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// usageArgs reports positional-argument errors as ERR_CFG_INVALID
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return errors.Wrap(errors.CodeCfgInvalid, err.Error(), nil, err)
		}
		return nil
	}
}
