package types

// ExecuteRequest is the body of POST /api/execute and the payload of the
// WebSocket execute_command frame. An empty command is a no-op, so the
// field carries no required binding. SessionID is optional; unknown or
// empty IDs cause a fresh session to be created.
type ExecuteRequest struct {
	Command   string `json:"command"`
	SessionID string `json:"session_id"`
}

// ExecuteResponse mirrors one executed line back to the client.
type ExecuteResponse struct {
	SessionID    string  `json:"session_id"`
	Command      string  `json:"command"`
	Output       string  `json:"output"`
	ExitCode     int     `json:"exit_code"`
	CurrentDir   string  `json:"current_dir"`
	ErrorKind    string  `json:"error_kind,omitempty"`
	SessionEnded bool    `json:"session_ended,omitempty"`
	Timestamp    float64 `json:"timestamp"`
}

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	SessionID      string `json:"session_id"`
	CurrentDir     string `json:"current_dir"`
	WelcomeMessage string `json:"welcome_message"`
}

// HistoryResponse lists a session's executed lines in submission order.
type HistoryResponse struct {
	SessionID  string   `json:"session_id"`
	History    []string `json:"history"`
	CurrentDir string   `json:"current_dir"`
}

// WSMessage is the envelope for every WebSocket frame in both directions.
// Type selects which of the remaining fields are meaningful.
type WSMessage struct {
	Type      string `json:"type"`
	Command   string `json:"command,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

// WSCommandResult is the command_result frame answering execute_command.
// The embedded response keeps the frame field-compatible with the REST
// execute endpoint.
type WSCommandResult struct {
	Type string `json:"type"`
	ExecuteResponse
}
