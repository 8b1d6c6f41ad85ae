// Package main is the entry point for the NLTerm web terminal server.
//
// The server exposes multi-user terminal sessions over REST and WebSocket:
// clients create sessions, submit shell or natural language commands, and
// read back results and history. Every session keeps its own working
// directory, and all filesystem access is confined to a sandbox root.
//
// The server provides:
//   - REST API for session lifecycle and command execution
//   - WebSocket channel for real-time command execution
//   - Rule-based natural language to command translation
//   - Per-IP rate limiting and CORS
//   - Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for local use
//
// Usage:
//
//	# Default configuration (port 8080, sandbox at $HOME)
//	./server
//
//	# Explicit port and an extra translation rule pack
//	./server -port 9090 -rules rules.yaml
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
