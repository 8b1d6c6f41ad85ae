package ws

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Adi-aygd/nlterm/internal/engine"
	"github.com/Adi-aygd/nlterm/internal/infrastructure/logging"
	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Origin policy is the CORS layer's job
	},
}

// Metrics is the subset of connection telemetry the handler reports.
type Metrics interface {
	RecordWSMessage(direction, msgType string)
	IncWSConnections()
	DecWSConnections()
}

type nopMetrics struct{}

func (nopMetrics) RecordWSMessage(string, string) {}
func (nopMetrics) IncWSConnections()              {}
func (nopMetrics) DecWSConnections()              {}

// Handler manages WebSocket connections
type Handler struct {
	engine  *engine.Engine
	logger  *logging.Logger
	metrics Metrics
}

// NewHandler creates a new WebSocket handler. Logger and metrics may be
// nil.
func NewHandler(eng *engine.Engine, logger *logging.Logger, metrics Metrics) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Handler{engine: eng, logger: logger, metrics: metrics}
}

// client is one upgraded connection. The mutex serializes writes, since
// command results and error frames may be produced concurrently.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (cl *client) write(data []byte) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.conn.WriteMessage(websocket.TextMessage, data)
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	cl := &client{id: uuid.NewString(), conn: conn}
	log := h.logger.With(zap.String("connection_id", cl.id))

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()
	log.Debug("WebSocket client connected")

	reqCtx := c.Request.Context()

	h.send(cl, "connected", types.WSMessage{
		Type:    "connected",
		Message: "Connected to NLTerm Web Terminal",
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("WebSocket read error", zap.Error(err))
			}
			break
		}

		var msg types.WSMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.sendError(cl, "malformed message")
			continue
		}
		h.metrics.RecordWSMessage("in", msg.Type)

		switch msg.Type {
		case "execute_command":
			h.handleExecute(reqCtx, cl, msg)
		case "ping":
			h.send(cl, "pong", types.WSMessage{Type: "pong"})
		default:
			h.sendError(cl, "unknown message type")
		}
	}

	log.Debug("WebSocket client disconnected")
}

func (h *Handler) handleExecute(ctx context.Context, cl *client, msg types.WSMessage) {
	command := strings.TrimSpace(msg.Command)
	info, _ := h.engine.EnsureSession(msg.SessionID)

	res, err := h.engine.Execute(ctx, info.ID, command)
	if err != nil {
		h.sendError(cl, err.Error())
		return
	}

	currentDir, err := h.engine.WorkingDir(info.ID)
	if err != nil {
		currentDir = info.WorkingDir
	}

	result := types.WSCommandResult{
		Type: "command_result",
		ExecuteResponse: types.ExecuteResponse{
			SessionID:  info.ID,
			Command:    command,
			Output:     res.Output,
			ExitCode:   res.ExitCode,
			CurrentDir: currentDir,
			ErrorKind:  string(res.Kind),
			Timestamp:  unixSeconds(),
		},
	}

	if res.Kind == types.KindSessionEnd {
		h.engine.EndSession(info.ID)
		result.ErrorKind = ""
		result.SessionEnded = true
	}

	h.send(cl, "command_result", result)
}

func (h *Handler) send(cl *client, msgType string, frame any) {
	data, err := sonic.Marshal(frame)
	if err != nil {
		h.logger.Error("WebSocket frame encode failed", zap.Error(err))
		return
	}
	if err := cl.write(data); err != nil {
		h.logger.Debug("WebSocket write failed", zap.Error(err))
		return
	}
	h.metrics.RecordWSMessage("out", msgType)
}

func (h *Handler) sendError(cl *client, message string) {
	h.send(cl, "error", types.WSMessage{Type: "error", Message: message})
}

func unixSeconds() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
