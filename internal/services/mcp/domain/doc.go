// Package domain maps MCP tool calls onto the dice service.
//
// Each handler decodes typed tool input, calls a client.Dice (in-process or
// remote), and returns structured output that MCP clients can render. Dice
// errors become tool errors carrying the localized user message.
package domain
