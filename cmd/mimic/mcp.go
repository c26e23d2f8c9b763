package main

import (
	"context"
	"fmt"

	"github.com/panbanda/mimic/internal/mcpserver"
	"github.com/urfave/cli/v2"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes mimic's duplication
analysis as tools that LLMs can invoke.

To use with an MCP client, add to its config:
  {
    "mcpServers": {
      "mimic": {
        "command": "mimic",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - detect_duplicates  Exact block clones and clone groups
  - similar_files      Whole-file similarity pairs
  - scan_patterns      Repeated copy-paste idioms`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "manifest",
				Usage: "Print the MCP server manifest (server.json) and exit",
			},
		},
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	if c.Bool("manifest") {
		data, err := mcpserver.GenerateManifest(version)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	server := mcpserver.NewServer(version)
	return server.Run(context.Background())
}
