// Package types provides shared data structures for the terminal backend.
//
// This package defines core types used across all backend components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - Invocation: Resolved command plus arguments, ready for dispatch
//   - Result: Outcome of executing one line (output, exit code, kind)
//   - ErrorKind: Stable failure classification shared with API clients
//   - Capability: Provider identity and the commands it serves
//
// API Types:
//   - ExecuteRequest, ExecuteResponse: Command execution round trip
//   - SessionResponse, HistoryResponse: Session lifecycle payloads
//   - WSMessage, WSCommandResult: WebSocket framing
//
// Example Usage:
//
//	res := &types.Result{
//	    Output:   "total 0",
//	    ExitCode: 0,
//	}
//	if res.Failed() {
//	    log.Println(res.Kind)
//	}
package types
