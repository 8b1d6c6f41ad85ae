// Package ws provides WebSocket handling for real-time terminal sessions.
//
// This package implements the streaming counterpart of the REST execute
// endpoint: clients hold one connection open and exchange JSON frames,
// getting command results pushed back without per-request overhead.
//
// Message Types (Client → Server):
//   - execute_command: Run one line in a session (command, session_id)
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - connected: Greeting sent after the upgrade
//   - command_result: Outcome of an execute_command frame, field-compatible
//     with POST /api/execute
//   - pong: Keep-alive reply
//   - error: Malformed frame or unknown message type
//
// Sessions are shared with the REST API. An execute_command frame without
// a session_id, or with an unknown one, lazily creates a session; the
// result carries the ID to reuse on later frames.
//
// Example Usage:
//
//	handler := ws.NewHandler(engine, logger, metrics)
//	router.GET("/ws", handler.HandleConnection)
package ws
