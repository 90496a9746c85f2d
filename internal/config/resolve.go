package config

import (
	"github.com/zx06/keystore/internal/errors"
)

// Resolve 合并 backend/format/log_level：CLI > ENV > Config > 默认值。
func Resolve(opts Options) (Resolved, *errors.XError) {
	cfg, cfgPath, xe := LoadConfig(opts)
	if xe != nil {
		return Resolved{}, xe
	}

	paths := DefaultPaths()
	if opts.Paths != nil {
		paths = *opts.Paths
	}

	backend := pick("auto", cfg.Backend, opts.EnvBackend, opts.CLIBackendSet, opts.CLIBackend)
	switch backend {
	case "auto", "native", "file":
	default:
		return Resolved{}, errors.New(errors.CodeCfgInvalid, "invalid backend (auto|native|file)", map[string]any{"backend": backend})
	}

	return Resolved{
		ConfigPath: cfgPath,
		Backend:    backend,
		Format:     pick("auto", cfg.Format, opts.EnvFormat, opts.CLIFormatSet, opts.CLIFormat),
		LogLevel:   pick("warn", cfg.LogLevel, opts.EnvLogLevel, opts.CLILogLevelSet, opts.CLILogLevel),
		Paths:      paths,
		MCP:        cfg.MCP,
	}, nil
}

func pick(def, fromConfig, fromEnv string, cliSet bool, fromCLI string) string {
	v := def
	if fromConfig != "" {
		v = fromConfig
	}
	if fromEnv != "" {
		v = fromEnv
	}
	if cliSet {
		v = fromCLI
	}
	return v
}
