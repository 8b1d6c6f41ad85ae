// Package main is the entry point for the NLTerm interactive terminal.
//
// nlterm runs a single local session: shell commands and plain English
// both work at the prompt, file operations stay inside a sandbox root,
// and exit/quit or Ctrl-D leave the terminal.
//
// Configuration:
//   - ~/.nlterm.toml preferences (colors, sandbox_root, rules_file)
//   - CLI flags (override preferences)
//   - NO_COLOR disables colored output
//
// Usage:
//
//	# Start with default settings
//	nlterm
//
//	# Start without colored output
//	nlterm --no-colors
//
//	# Unconfined, with an extra translation rule pack
//	nlterm --no-sandbox --rules rules.yaml
package main
