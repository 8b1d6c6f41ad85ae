// Package session owns terminal session state and its lifecycle.
//
// A session is a single-writer resource: all reads and mutations go
// through Do, which serializes callers on the session mutex. Teardown
// marks the session closed under that same mutex, so a request that lost
// the race observes the closed flag and discards its work instead of
// mutating a dead session.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/Adi-aygd/nlterm/internal/shared/id"
)

// ErrClosed is returned by Do after the session has been torn down.
var ErrClosed = errors.New("session closed")

// Context is the per-session state the engine operates on.
type Context struct {
	ID         id.SessionID
	WorkingDir string
	History    []string
	CreatedAt  time.Time
	LastUsedAt time.Time
}

// Session couples a Context with the mutex that serializes access to it.
type Session struct {
	mu     sync.Mutex
	closed bool
	ctx    Context
}

func newSession(workingDir string) *Session {
	now := time.Now()
	return &Session{
		ctx: Context{
			ID:         id.NewSessionID(),
			WorkingDir: workingDir,
			CreatedAt:  now,
			LastUsedAt: now,
		},
	}
}

// ID returns the immutable session ID.
func (s *Session) ID() id.SessionID {
	return s.ctx.ID
}

// Do runs fn with exclusive access to the session context. Concurrent
// callers for the same session block here, which is what serializes
// requests within a session. Once the session is closed Do refuses to run
// fn, so work that raced with teardown is discarded rather than applied.
func (s *Session) Do(fn func(*Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	fn(&s.ctx)
	return nil
}

// Touch refreshes the idle clock. Callers run it inside Do.
func (c *Context) Touch() {
	c.LastUsedAt = time.Now()
}

// Snapshot returns copies of the fields transports expose. It fails with
// ErrClosed after teardown.
func (s *Session) Snapshot() (history []string, workingDir string, err error) {
	err = s.Do(func(c *Context) {
		history = make([]string, len(c.History))
		copy(history, c.History)
		workingDir = c.WorkingDir
	})
	return history, workingDir, err
}

// close marks the session dead. The caller must not hold the mutex.
func (s *Session) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// idleSince reports whether the session has been unused for longer than
// ttl as of now.
func (s *Session) idleSince(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.ctx.LastUsedAt) > ttl
}
