package app

import (
	"github.com/zx06/keystore/internal/errors"
	"github.com/zx06/keystore/internal/output"
	"github.com/zx06/keystore/internal/spec"
)

type App struct {
	Version string
	Commit  string
	Date    string
}

func New(version, commit, date string) App {
	return App{Version: version, Commit: commit, Date: date}
}

func (a App) BuildSpec() spec.Spec {
	globalFlags := []spec.FlagSpec{
		{Name: "config", Default: "", Description: "Config file path (YAML); default: ./keystore.yaml or <config dir>/keystore/keystore.yaml"},
		{Name: "format", Shorthand: "f", Env: "KEYSTORE_FORMAT", Default: "auto", Description: "Output format: json|yaml|table|csv|auto"},
		{Name: "backend", Shorthand: "b", Env: "KEYSTORE_BACKEND", Default: "auto", Description: "Credential backend: auto|native|file"},
		{Name: "log-level", Env: "KEYSTORE_LOG_LEVEL", Default: "warn", Description: "Log level: debug|info|warn|error (logs go to stderr)"},
	}
	with := func(extra ...spec.FlagSpec) []spec.FlagSpec {
		flags := make([]spec.FlagSpec, 0, len(globalFlags)+len(extra))
		flags = append(flags, globalFlags...)
		return append(flags, extra...)
	}
	return spec.Spec{
		SchemaVersion: output.SchemaVersion,
		Commands: []spec.CommandSpec{
			{
				Name:        "spec",
				Description: "Export this contract; `spec <command>` prints one entry",
				Flags:       globalFlags,
			},
			{
				Name:        "version",
				Description: "Print version, commit and build date",
				Flags: with(
					spec.FlagSpec{Name: "short", Default: "false", Description: "Print only the version string"},
				),
			},
			{
				Name:        "set",
				Description: "Store or replace the secret for <service> <account> (value from argument, prompt or stdin)",
				Flags:       globalFlags,
			},
			{
				Name:        "get",
				Description: "Read the secret for <service> <account>",
				Flags: with(
					spec.FlagSpec{Name: "raw", Default: "false", Description: "Print only the value, without envelope"},
				),
			},
			{
				Name:        "delete",
				Description: "Delete the secret for <service> <account>",
				Flags:       globalFlags,
			},
			{
				Name:        "status",
				Description: "Show the selected backend, its availability and store paths",
				Flags:       globalFlags,
			},
			{
				Name:        "check",
				Description: "Report unreadable records in the encrypted file store",
				Flags:       globalFlags,
			},
			{
				Name:        "config show",
				Description: "Show resolved configuration",
				Flags:       globalFlags,
			},
			{
				Name:        "mcp server",
				Description: "Start MCP server exposing secret_set/secret_get/secret_delete/secret_status",
				Flags: with(
					spec.FlagSpec{Name: "transport", Env: "KEYSTORE_MCP_TRANSPORT", Default: "stdio", Description: "MCP transport: stdio|streamable_http"},
					spec.FlagSpec{Name: "http-addr", Env: "KEYSTORE_MCP_HTTP_ADDR", Default: "127.0.0.1:8787", Description: "Streamable HTTP listen address"},
					spec.FlagSpec{Name: "http-auth-token", Env: "KEYSTORE_MCP_HTTP_AUTH_TOKEN", Default: "", Description: "Streamable HTTP auth token"},
				),
			},
		},
		ErrorCodes: errors.AllCodes(),
	}
}

type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

func (a App) VersionInfo() VersionInfo {
	return VersionInfo{Version: a.Version, Commit: a.Commit, Date: a.Date}
}
