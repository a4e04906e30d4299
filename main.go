package main

import "github.com/archguard/archguard/internal/archguard/cli"

// main is the entry point for the archguard MCP server and CLI.
func main() {
	cli.Execute()
}
