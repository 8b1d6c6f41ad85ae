package types

// ErrorKind classifies a command failure into a stable, transport-friendly
// category. Kinds cross package boundaries as plain strings so REST and
// WebSocket clients can switch on them without parsing output text.
type ErrorKind string

const (
	// KindUnknownCommand marks input that looked like a command but named
	// no registered capability or builtin.
	KindUnknownCommand ErrorKind = "unknown_command"

	// KindUnresolvedIntent marks natural language input that no intent
	// rule matched.
	KindUnresolvedIntent ErrorKind = "unresolved_intent"

	KindNotFound           ErrorKind = "not_found"
	KindAlreadyExists      ErrorKind = "already_exists"
	KindNotEmpty           ErrorKind = "not_empty"
	KindPermissionDenied   ErrorKind = "permission_denied"
	KindNoSuchProcess      ErrorKind = "no_such_process"
	KindPathOutsideSandbox ErrorKind = "path_outside_sandbox"
	KindInvalidArguments   ErrorKind = "invalid_arguments"

	// KindSessionEnd signals a clean exit request rather than an error.
	// Results carrying it have ExitCode 0.
	KindSessionEnd ErrorKind = "session_end"
)

// Result is the outcome of executing one line of input.
type Result struct {
	Output   string    `json:"output"`
	ExitCode int       `json:"exit_code"`
	Kind     ErrorKind `json:"error_kind,omitempty"`

	// NewWorkingDir is set by directory-changing commands. The engine
	// applies it to the session only when ExitCode is 0.
	NewWorkingDir string `json:"new_working_dir,omitempty"`
}

// Failed reports whether the result represents a command failure.
func (r *Result) Failed() bool {
	return r.ExitCode != 0
}
