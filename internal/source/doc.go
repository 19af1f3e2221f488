// Package source fetches Plenarprotokolle from a bundestag-mcp server and
// imports locally saved protocol pages.
//
// The server exposes the Bundestag documentation system (DIP) as MCP tools.
// MCPClient speaks the streamable HTTP transport; Bundestag wraps the tools
// the pipeline needs behind typed methods so tests can substitute a
// ToolCaller.
package source
