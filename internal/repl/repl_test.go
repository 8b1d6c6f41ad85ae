package repl

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adi-aygd/nlterm/internal/engine"
	"github.com/Adi-aygd/nlterm/internal/intent"
	"github.com/Adi-aygd/nlterm/internal/providers"
	"github.com/Adi-aygd/nlterm/internal/providers/filesystem"
	"github.com/Adi-aygd/nlterm/internal/providers/monitor"
	"github.com/Adi-aygd/nlterm/internal/sandbox"
	"github.com/Adi-aygd/nlterm/internal/session"
)

func newTestEngine(t *testing.T) (*engine.Engine, string) {
	t.Helper()
	root := t.TempDir()
	res, err := sandbox.New(root, true)
	require.NoError(t, err)

	reg := providers.NewRegistry()
	require.NoError(t, reg.Register(filesystem.NewProvider(res)))
	require.NoError(t, reg.Register(monitor.NewProvider()))

	sessions := session.NewRegistry(session.Config{WorkingDir: res.InitialDir()}, nil)
	t.Cleanup(sessions.Close)

	return engine.New(engine.Config{
		Providers: reg,
		Sessions:  sessions,
		Sandbox:   res,
		Table:     intent.NewTable(),
	}), root
}

func newTestTerminal(t *testing.T, input io.Reader) (*Terminal, *bytes.Buffer, string) {
	t.Helper()
	eng, root := newTestEngine(t)
	info := eng.CreateSession()

	var out bytes.Buffer
	term := New(Config{
		Engine:    eng,
		SessionID: info.ID,
		Input:     input,
		Output:    &out,
		Colors:    false,
		Username:  "alice",
		Hostname:  "box",
		Home:      "/home/alice",
	})
	return term, &out, root
}

func TestRunBannerAndExit(t *testing.T) {
	term, out, _ := newTestTerminal(t, strings.NewReader("exit\n"))

	require.NoError(t, term.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "NLTerm v"+engine.Version)
	assert.Contains(t, s, "A Natural Language Command Terminal")
	assert.Contains(t, s, "Features:")
	assert.Contains(t, s, "Type 'help' for a list of available commands or 'exit' to quit.")
	assert.Contains(t, s, "alice@box:")
	assert.Contains(t, s, "Goodbye!")
}

func TestRunExitStopsReading(t *testing.T) {
	term, out, _ := newTestTerminal(t, strings.NewReader("quit\npwd\n"))

	require.NoError(t, term.Run(context.Background()))

	// One prompt only: the line after quit is never consumed.
	assert.Equal(t, 1, strings.Count(out.String(), "$ "))
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRunEOF(t *testing.T) {
	term, out, _ := newTestTerminal(t, strings.NewReader(""))

	require.NoError(t, term.Run(context.Background()))
	assert.Contains(t, out.String(), "\nGoodbye!")
}

func TestRunExecutesCommands(t *testing.T) {
	term, out, root := newTestTerminal(t, strings.NewReader("pwd\nexit\n"))

	require.NoError(t, term.Run(context.Background()))
	assert.Contains(t, out.String(), root)
}

func TestRunPrintsErrorsWithPrefix(t *testing.T) {
	term, out, _ := newTestTerminal(t, strings.NewReader("frobnicate\nexit\n"))

	require.NoError(t, term.Run(context.Background()))
	assert.Contains(t, out.String(), "Error: Command 'frobnicate' not found.")
}

func TestRunSkipsBlankLines(t *testing.T) {
	term, out, _ := newTestTerminal(t, strings.NewReader("\n   \nexit\n"))

	require.NoError(t, term.Run(context.Background()))

	// Blank lines reprint the prompt without touching the engine.
	assert.Equal(t, 3, strings.Count(out.String(), "$ "))
}

func TestRunTracksWorkingDirInPrompt(t *testing.T) {
	term, out, _ := newTestTerminal(t, strings.NewReader("mkdir sub\ncd sub\nexit\n"))

	require.NoError(t, term.Run(context.Background()))

	// Temp roots are long enough to trip the path shortener, so the
	// prompt shows the collapsed form ending in the new directory.
	assert.Contains(t, out.String(), "/sub$ ")
}

// slowReader delays the first read so a pending interrupt wins the
// select race deterministically.
type slowReader struct {
	r     io.Reader
	delay time.Duration
	once  sync.Once
}

func (s *slowReader) Read(p []byte) (int, error) {
	s.once.Do(func() { time.Sleep(s.delay) })
	return s.r.Read(p)
}

func TestRunInterruptCancelsLine(t *testing.T) {
	input := &slowReader{r: strings.NewReader("exit\n"), delay: 50 * time.Millisecond}
	term, out, _ := newTestTerminal(t, input)

	term.sigs <- os.Interrupt

	require.NoError(t, term.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "^C\nOperation cancelled by user")
	assert.Contains(t, s, "Goodbye!")
	assert.Equal(t, 2, strings.Count(s, "$ "))
}

func TestRunContextCancel(t *testing.T) {
	blocked, _ := io.Pipe()
	term, _, _ := newTestTerminal(t, blocked)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := term.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
