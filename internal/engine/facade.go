package engine

import (
	"errors"
)

// ErrSessionNotFound reports an unknown or already ended session ID.
var ErrSessionNotFound = errors.New("session not found")

// SessionInfo describes a session to transports.
type SessionInfo struct {
	ID         string `json:"session_id"`
	WorkingDir string `json:"current_dir"`
}

// welcomeMessage greets new web sessions.
const welcomeMessage = `🌐 NLTerm Web Terminal v` + Version + `
===========================

Welcome to the NLTerm web terminal!

Features:
• Full terminal command support
• 🤖 AI-powered natural language processing
• Real-time command execution
• File and system operations
• Session-scoped working directories

Try these commands:
• 'help' - Show available commands
• 'ai examples' - Show AI command examples
• 'ls' - List files
• "show me the current directory" - Natural language!

Type your commands below and press Enter to execute.`

// WelcomeMessage returns the greeting transports show on connect.
func WelcomeMessage() string {
	return welcomeMessage
}

// CreateSession starts a fresh session.
func (e *Engine) CreateSession() SessionInfo {
	s := e.sessions.Create()
	e.metrics.IncSessionsCreated()
	e.metrics.SetSessionsActive(e.sessions.Len())

	_, wd, _ := s.Snapshot()
	return SessionInfo{ID: s.ID().String(), WorkingDir: wd}
}

// EnsureSession resolves sessionID to a live session, creating a fresh
// one when the ID is empty or unknown. The bool reports creation.
func (e *Engine) EnsureSession(sessionID string) (SessionInfo, bool) {
	s, created := e.sessions.GetOrCreate(sessionID)
	if created {
		e.metrics.IncSessionsCreated()
		e.metrics.SetSessionsActive(e.sessions.Len())
	}

	_, wd, err := s.Snapshot()
	if err != nil {
		// The session lost a race with teardown after lookup.
		return e.CreateSession(), true
	}
	return SessionInfo{ID: s.ID().String(), WorkingDir: wd}, created
}

// History returns a copy of the session's command history together with
// its current working directory.
func (e *Engine) History(sessionID string) ([]string, string, error) {
	s, ok := e.sessions.Get(sessionID)
	if !ok {
		return nil, "", ErrSessionNotFound
	}
	history, wd, err := s.Snapshot()
	if err != nil {
		return nil, "", ErrSessionNotFound
	}
	return history, wd, nil
}

// WorkingDir returns the session's current working directory.
func (e *Engine) WorkingDir(sessionID string) (string, error) {
	s, ok := e.sessions.Get(sessionID)
	if !ok {
		return "", ErrSessionNotFound
	}
	_, wd, err := s.Snapshot()
	if err != nil {
		return "", ErrSessionNotFound
	}
	return wd, nil
}

// EndSession tears down a session. It returns false for unknown IDs.
func (e *Engine) EndSession(sessionID string) bool {
	ok := e.sessions.Delete(sessionID)
	if ok {
		e.metrics.SetSessionsActive(e.sessions.Len())
	}
	return ok
}

// Sessions counts live sessions.
func (e *Engine) Sessions() int {
	return e.sessions.Len()
}

// Close stops session expiry. Live sessions stay readable, so in-flight
// requests finish normally.
func (e *Engine) Close() {
	e.sessions.Close()
}

// Examples returns curated example commands grouped for display. The
// examples endpoint serves this map verbatim.
func Examples() map[string][]string {
	return map[string][]string{
		"basic_commands": {
			"ls", "pwd", "ls -la", "help", "history",
		},
		"file_operations": {
			"mkdir test_folder",
			"touch test_file.txt",
			"cat README.md",
			"cp file1.txt file2.txt",
			"rm test_file.txt",
		},
		"system_monitoring": {
			"ps", "free -h", "df -h", "uptime", "whoami",
		},
		"ai_natural_language": {
			"show me the files in this directory",
			"create a new folder called projects",
			"what processes are running",
			"show system memory usage",
			"delete the test folder",
			"copy notes.txt to backup",
		},
	}
}
