// Package service hosts the dicebag MCP server.
//
// It registers the dice tools and the notation resource, then serves them over
// stdio for local assistants or streamable HTTP for remote ones.
package service
