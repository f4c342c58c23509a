// Package docsearch turns a JavaScript-rendered documentation site into a set
// of independently searchable section documents stored in a full-text index,
// and serves that index through an MCP tool surface.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, goquery/).
package docsearch
