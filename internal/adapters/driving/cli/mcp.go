package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/askpdf/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve [directory]",
	Short: "Serve the index of a directory over MCP",
	Long: `Start a Model Context Protocol server over stdio for AI assistant
integration. The index is refreshed once at start-up; the "refresh" tool
picks up files added later.

Tools:
  ask      rank the pages of the directory against a question
  status   report index location and size
  refresh  extract files added since start-up

Client configuration:
  {
    "mcpServers": {
      "askpdf": {
        "command": "/path/to/askpdf",
        "args": ["mcp", "serve", "/path/to/pdfs"]
      }
    }
  }`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCPServe,
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	ctrl, _, err := controllerFor(cmd, args, 0)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	report, err := ctrl.Open(cmd.Context())
	if err != nil {
		return err
	}
	logReport(report)

	server, err := mcp.NewServer(&mcp.Ports{Controller: ctrl})
	if err != nil {
		return err
	}
	return server.Run(cmd.Context())
}
