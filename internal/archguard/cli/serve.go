package cli

import (
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/archguard/archguard/internal/archguard/mcp"
)

func newServeCmd() *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "serve [root]",
		Short: "Run the MCP server over stdio, or HTTP with --http",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			logger := newLogger()

			server, as, err := mcp.NewServer(root, logger)
			if err != nil {
				return err
			}
			defer as.Close()

			ctx := cmd.Context()
			if httpAddr != "" {
				return mcp.ServeHTTP(ctx, server, httpAddr, logger)
			}

			logger.Info("serving MCP over stdio", "root", as.RootDir)
			return server.Run(ctx, &sdk.StdioTransport{})
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "serve over HTTP on this address instead of stdio (e.g. :8030)")
	return cmd
}
