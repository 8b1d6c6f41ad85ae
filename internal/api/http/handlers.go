package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Adi-aygd/nlterm/internal/engine"
	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	engine *engine.Engine
}

// NewHandlers creates a new handler set
func NewHandlers(eng *engine.Engine) *Handlers {
	return &Handlers{engine: eng}
}

// Health handles health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "nlterm",
		"version":  engine.Version,
		"sessions": h.engine.Sessions(),
	})
}

// CreateSession creates a new terminal session
func (h *Handlers) CreateSession(c *gin.Context) {
	info := h.engine.CreateSession()

	c.JSON(http.StatusCreated, types.SessionResponse{
		SessionID:      info.ID,
		CurrentDir:     info.WorkingDir,
		WelcomeMessage: engine.WelcomeMessage(),
	})
}

// Execute runs a terminal command via the API
func (h *Handlers) Execute(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	command := strings.TrimSpace(req.Command)
	info, _ := h.engine.EnsureSession(req.SessionID)

	res, err := h.engine.Execute(c.Request.Context(), info.ID, command)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	currentDir, err := h.engine.WorkingDir(info.ID)
	if err != nil {
		currentDir = info.WorkingDir
	}

	resp := types.ExecuteResponse{
		SessionID:  info.ID,
		Command:    command,
		Output:     res.Output,
		ExitCode:   res.ExitCode,
		CurrentDir: currentDir,
		ErrorKind:  string(res.Kind),
		Timestamp:  unixSeconds(),
	}

	if res.Kind == types.KindSessionEnd {
		h.engine.EndSession(info.ID)
		resp.ErrorKind = ""
		resp.SessionEnded = true
	}

	c.JSON(http.StatusOK, resp)
}

// History returns the command history for a session
func (h *Handlers) History(c *gin.Context) {
	sessionID := c.Param("session_id")

	history, currentDir, err := h.engine.History(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, types.HistoryResponse{
		SessionID:  sessionID,
		History:    history,
		CurrentDir: currentDir,
	})
}

// Examples returns example commands and AI queries
func (h *Handlers) Examples(c *gin.Context) {
	c.JSON(http.StatusOK, engine.Examples())
}

// DeleteSession ends a terminal session
func (h *Handlers) DeleteSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	if !h.engine.EndSession(sessionID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// unixSeconds returns the current time as fractional Unix seconds, the
// timestamp format terminal clients expect.
func unixSeconds() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
