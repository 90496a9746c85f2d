package main

import (
	"context"
	"net/http"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/zx06/keystore/internal/config"
	"github.com/zx06/keystore/internal/errors"
	"github.com/zx06/keystore/internal/keystore"
	mcp_pkg "github.com/zx06/keystore/internal/mcp"
	"github.com/zx06/keystore/internal/secret"
)

const defaultMCPHTTPAddr = "127.0.0.1:8787"

// NewMCPCommand creates the MCP command group
func NewMCPCommand() *cobra.Command {
	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP (Model Context Protocol) server commands",
	}

	mcpCmd.AddCommand(newMCPServerCommand())

	return mcpCmd
}

// newMCPServerCommand creates the MCP server command
func newMCPServerCommand() *cobra.Command {
	opts := &mcpServerOptions{}
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start MCP server exposing the credential store to AI assistants",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.transportSet = cmd.Flags().Changed("transport")
			opts.httpAddrSet = cmd.Flags().Changed("http-addr")
			opts.httpAuthTokenSet = cmd.Flags().Changed("http-auth-token")
			return runMCPServer(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.transport, "transport", mcp_pkg.TransportStdio, "MCP transport: stdio|streamable_http")
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", defaultMCPHTTPAddr, "Streamable HTTP listen address")
	cmd.Flags().StringVar(&opts.httpAuthToken, "http-auth-token", "", "Streamable HTTP auth token (required for streamable_http)")
	return cmd
}

// runMCPServer runs the MCP server
func runMCPServer(ctx context.Context, opts *mcpServerOptions) error {
	backend, err := openBackend()
	if err != nil {
		return err
	}

	// Create MCP server using official SDK
	server, err := mcp_pkg.CreateServer(version, backend)
	if err != nil {
		// Convert SDK error to XError if needed
		if xe, ok := err.(*errors.XError); ok {
			return xe
		}
		return errors.Wrap(errors.CodeInternal, "failed to create MCP server", nil, err)
	}

	resolved, xe := resolveMCPServerOptions(opts, GlobalConfig.Resolved.MCP, backend)
	if xe != nil {
		return xe
	}

	switch resolved.transport {
	case mcp_pkg.TransportStdio:
		logger().Info("mcp server started", "transport", resolved.transport, "backend", backend.Name())
		return server.Run(ctx, &mcp.StdioTransport{})
	case mcp_pkg.TransportStreamableHTTP:
		handler, err := mcp_pkg.NewStreamableHTTPHandler(server, resolved.httpAuthToken)
		if err != nil {
			if xe, ok := err.(*errors.XError); ok {
				return xe
			}
			return errors.Wrap(errors.CodeInternal, "failed to create streamable http handler", nil, err)
		}
		httpServer := &http.Server{
			Addr:    resolved.httpAddr,
			Handler: handler,
		}
		logger().Info("mcp server listening", "transport", resolved.transport, "addr", resolved.httpAddr, "backend", backend.Name())
		return httpServer.ListenAndServe()
	default:
		return errors.New(errors.CodeCfgInvalid, "unsupported mcp transport", map[string]any{"transport": resolved.transport})
	}
}

type mcpServerOptions struct {
	transport        string
	transportSet     bool
	httpAddr         string
	httpAddrSet      bool
	httpAuthToken    string
	httpAuthTokenSet bool
}

type mcpServerResolved struct {
	transport     string
	httpAddr      string
	httpAuthToken string
}

// resolveMCPServerOptions merges CLI > ENV > config; a keyring: token reference
// is read from the same backend the server exposes.
func resolveMCPServerOptions(opts *mcpServerOptions, cfg config.MCP, store keystore.Backend) (mcpServerResolved, *errors.XError) {
	if opts == nil {
		opts = &mcpServerOptions{}
	}

	transport := firstNonEmpty(
		valueIfSet(opts.transportSet, opts.transport),
		os.Getenv("KEYSTORE_MCP_TRANSPORT"),
		cfg.Transport,
	)
	if transport == "" {
		transport = mcp_pkg.TransportStdio
	}
	if transport != mcp_pkg.TransportStdio && transport != mcp_pkg.TransportStreamableHTTP {
		return mcpServerResolved{}, errors.New(errors.CodeCfgInvalid, "invalid mcp transport", map[string]any{"transport": transport})
	}

	httpAddr := firstNonEmpty(
		valueIfSet(opts.httpAddrSet, opts.httpAddr),
		os.Getenv("KEYSTORE_MCP_HTTP_ADDR"),
		cfg.HTTP.Addr,
	)
	if httpAddr == "" {
		httpAddr = defaultMCPHTTPAddr
	}

	authToken := firstNonEmpty(
		valueIfSet(opts.httpAuthTokenSet, opts.httpAuthToken),
		os.Getenv("KEYSTORE_MCP_HTTP_AUTH_TOKEN"),
	)
	if authToken == "" && cfg.HTTP.AuthToken != "" {
		secretValue, xe := secret.Resolve(cfg.HTTP.AuthToken, secret.Options{
			AllowPlaintext: cfg.HTTP.AllowPlaintextToken,
			Store:          store,
		})
		if xe != nil {
			return mcpServerResolved{}, xe
		}
		authToken = secretValue
	}

	if transport == mcp_pkg.TransportStreamableHTTP && authToken == "" {
		return mcpServerResolved{}, errors.New(errors.CodeCfgInvalid, "streamable http transport requires auth token", nil)
	}

	return mcpServerResolved{
		transport:     transport,
		httpAddr:      httpAddr,
		httpAuthToken: authToken,
	}, nil
}

func valueIfSet(set bool, value string) string {
	if !set {
		return ""
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
