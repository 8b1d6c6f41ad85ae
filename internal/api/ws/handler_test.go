package ws

import (
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adi-aygd/nlterm/internal/engine"
	"github.com/Adi-aygd/nlterm/internal/intent"
	"github.com/Adi-aygd/nlterm/internal/providers"
	"github.com/Adi-aygd/nlterm/internal/providers/filesystem"
	"github.com/Adi-aygd/nlterm/internal/providers/monitor"
	"github.com/Adi-aygd/nlterm/internal/sandbox"
	"github.com/Adi-aygd/nlterm/internal/session"
	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

func setupTestWS(t *testing.T) (*httptest.Server, *engine.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	res, err := sandbox.New(root, true)
	require.NoError(t, err)

	reg := providers.NewRegistry()
	require.NoError(t, reg.Register(filesystem.NewProvider(res)))
	require.NoError(t, reg.Register(monitor.NewProvider()))

	sessions := session.NewRegistry(session.Config{WorkingDir: res.InitialDir()}, nil)
	t.Cleanup(sessions.Close)

	eng := engine.New(engine.Config{
		Providers: reg,
		Sessions:  sessions,
		Sandbox:   res,
		Table:     intent.NewTable(),
	})

	handler := NewHandler(eng, nil, nil)
	router := gin.New()
	router.GET("/ws", handler.HandleConnection)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, eng, root
}

func dialWS(t *testing.T, srv *httptest.Server) (*websocket.Conn, types.WSMessage) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })

	var greeting types.WSMessage
	require.NoError(t, conn.ReadJSON(&greeting))
	return conn, greeting
}

func executeWS(t *testing.T, conn *websocket.Conn, command, sessionID string) types.WSCommandResult {
	t.Helper()
	require.NoError(t, conn.WriteJSON(types.WSMessage{
		Type:      "execute_command",
		Command:   command,
		SessionID: sessionID,
	}))

	var result types.WSCommandResult
	require.NoError(t, conn.ReadJSON(&result))
	return result
}

func TestConnectGreeting(t *testing.T) {
	srv, _, _ := setupTestWS(t)

	_, greeting := dialWS(t, srv)
	assert.Equal(t, "connected", greeting.Type)
	assert.Equal(t, "Connected to NLTerm Web Terminal", greeting.Message)
}

func TestExecuteCommandFrame(t *testing.T) {
	srv, _, root := setupTestWS(t)
	conn, _ := dialWS(t, srv)

	result := executeWS(t, conn, "pwd", "")
	assert.Equal(t, "command_result", result.Type)
	assert.True(t, strings.HasPrefix(result.SessionID, "sess_"))
	assert.Equal(t, "pwd", result.Command)
	assert.Equal(t, root, result.Output)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, root, result.CurrentDir)
	assert.Greater(t, result.Timestamp, 0.0)
}

func TestSessionReuseAcrossFrames(t *testing.T) {
	srv, _, root := setupTestWS(t)
	conn, _ := dialWS(t, srv)

	first := executeWS(t, conn, "mkdir sub", "")
	require.Equal(t, 0, first.ExitCode)

	second := executeWS(t, conn, "cd sub", first.SessionID)
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, filepath.Join(root, "sub"), second.CurrentDir)
}

func TestNaturalLanguageFrame(t *testing.T) {
	srv, _, _ := setupTestWS(t)
	conn, _ := dialWS(t, srv)

	result := executeWS(t, conn, "what processes are running", "")
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Output, "PID")
}

func TestUnknownCommandFrame(t *testing.T) {
	srv, _, _ := setupTestWS(t)
	conn, _ := dialWS(t, srv)

	result := executeWS(t, conn, "frobnicate", "")
	assert.Equal(t, 127, result.ExitCode)
	assert.Equal(t, "unknown_command", result.ErrorKind)
}

func TestExitFrameEndsSession(t *testing.T) {
	srv, eng, _ := setupTestWS(t)
	conn, _ := dialWS(t, srv)

	created := executeWS(t, conn, "pwd", "")
	require.Equal(t, 1, eng.Sessions())

	result := executeWS(t, conn, "exit", created.SessionID)
	assert.Equal(t, "Goodbye!", result.Output)
	assert.True(t, result.SessionEnded)
	assert.Empty(t, result.ErrorKind)
	assert.Equal(t, 0, eng.Sessions())
}

func TestPingPong(t *testing.T) {
	srv, _, _ := setupTestWS(t)
	conn, _ := dialWS(t, srv)

	require.NoError(t, conn.WriteJSON(types.WSMessage{Type: "ping"}))

	var reply types.WSMessage
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "pong", reply.Type)
}

func TestMalformedFrame(t *testing.T) {
	srv, _, _ := setupTestWS(t)
	conn, _ := dialWS(t, srv)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	var reply types.WSMessage
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "error", reply.Type)
	assert.Equal(t, "malformed message", reply.Message)
}

func TestUnknownFrameType(t *testing.T) {
	srv, _, _ := setupTestWS(t)
	conn, _ := dialWS(t, srv)

	require.NoError(t, conn.WriteJSON(types.WSMessage{Type: "bogus"}))

	var reply types.WSMessage
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "error", reply.Type)
	assert.Equal(t, "unknown message type", reply.Message)
}
