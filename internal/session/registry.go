package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Adi-aygd/nlterm/internal/infrastructure/logging"
)

// Config controls session creation and expiry.
type Config struct {
	// WorkingDir is the directory new sessions start in.
	WorkingDir string

	// TTL is how long an idle session survives. Zero disables expiry.
	TTL time.Duration

	// CleanupInterval is how often the janitor sweeps. Zero disables
	// the janitor even when TTL is set.
	CleanupInterval time.Duration
}

// Registry tracks live sessions by ID and expires idle ones.
type Registry struct {
	sessions sync.Map // session ID string -> *Session
	cfg      Config
	logger   *logging.Logger

	done      chan struct{}
	closeOnce sync.Once
}

// NewRegistry creates a registry and starts its cleanup janitor when both
// TTL and CleanupInterval are set.
func NewRegistry(cfg Config, logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Registry{
		cfg:    cfg,
		logger: logger,
		done:   make(chan struct{}),
	}
	if cfg.TTL > 0 && cfg.CleanupInterval > 0 {
		go r.janitor()
	}
	return r
}

// Create registers a fresh session.
func (r *Registry) Create() *Session {
	s := newSession(r.cfg.WorkingDir)
	r.sessions.Store(s.ID().String(), s)
	r.logger.Debug("Session created",
		zap.String("session_id", s.ID().String()),
		zap.String("working_dir", r.cfg.WorkingDir))
	return s
}

// Get looks up a session by ID.
func (r *Registry) Get(sessionID string) (*Session, bool) {
	v, ok := r.sessions.Load(sessionID)
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

// GetOrCreate returns the session for sessionID, creating a fresh one when
// the ID is empty or unknown. The bool reports whether a session was
// created.
func (r *Registry) GetOrCreate(sessionID string) (*Session, bool) {
	if sessionID != "" {
		if s, ok := r.Get(sessionID); ok {
			return s, false
		}
	}
	return r.Create(), true
}

// Delete tears down a session. The closed flag is set under the session
// mutex, so a request currently executing finishes first and any request
// that arrives later observes the flag and discards its work. Returns
// false when the ID is unknown.
func (r *Registry) Delete(sessionID string) bool {
	v, ok := r.sessions.LoadAndDelete(sessionID)
	if !ok {
		return false
	}
	v.(*Session).close()
	r.logger.Debug("Session deleted", zap.String("session_id", sessionID))
	return true
}

// Len counts live sessions.
func (r *Registry) Len() int {
	n := 0
	r.sessions.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// Close stops the janitor. Live sessions remain readable.
func (r *Registry) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
	})
}

func (r *Registry) janitor() {
	ticker := time.NewTicker(r.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 {
				r.logger.Info("Expired idle sessions", zap.Int("count", n))
			}
		}
	}
}

// Sweep removes sessions idle beyond the TTL as of now and returns how
// many were removed. The janitor calls it on a timer; tests call it
// directly.
func (r *Registry) Sweep(now time.Time) int {
	if r.cfg.TTL <= 0 {
		return 0
	}
	removed := 0
	r.sessions.Range(func(key, value interface{}) bool {
		s := value.(*Session)
		if s.idleSince(now, r.cfg.TTL) {
			if r.Delete(key.(string)) {
				removed++
			}
		}
		return true
	})
	return removed
}
