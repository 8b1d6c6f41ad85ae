package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Adi-aygd/nlterm/internal/providers"
	"github.com/Adi-aygd/nlterm/internal/providers/filesystem"
	"github.com/Adi-aygd/nlterm/internal/providers/monitor"
	"github.com/Adi-aygd/nlterm/internal/sandbox"
	"github.com/Adi-aygd/nlterm/internal/session"
	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

func newTestEngine(t *testing.T, extra ...providers.Provider) (*Engine, string) {
	t.Helper()
	root := t.TempDir()
	res, err := sandbox.New(root, true)
	require.NoError(t, err)

	reg := providers.NewRegistry()
	require.NoError(t, reg.Register(filesystem.NewProvider(res)))
	require.NoError(t, reg.Register(monitor.NewProvider()))
	for _, p := range extra {
		require.NoError(t, reg.Register(p))
	}

	sessions := session.NewRegistry(session.Config{WorkingDir: res.InitialDir()}, nil)
	t.Cleanup(sessions.Close)

	return New(Config{
		Providers: reg,
		Sessions:  sessions,
		Sandbox:   res,
	}), root
}

func run(t *testing.T, e *Engine, sessionID, line string) *types.Result {
	t.Helper()
	res, err := e.Execute(context.Background(), sessionID, line)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestExecuteEmptyLine(t *testing.T) {
	e, _ := newTestEngine(t)
	info := e.CreateSession()

	for _, line := range []string{"", "   ", "\t"} {
		res := run(t, e, info.ID, line)
		assert.Equal(t, 0, res.ExitCode)
		assert.Empty(t, res.Output)
	}

	history, _, err := e.History(info.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestExecuteUnknownSession(t *testing.T) {
	e, _ := newTestEngine(t)

	res, err := e.Execute(context.Background(), "sess_missing", "pwd")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Nil(t, res)
}

func TestPwd(t *testing.T) {
	e, root := newTestEngine(t)
	info := e.CreateSession()
	assert.Equal(t, root, info.WorkingDir)

	res := run(t, e, info.ID, "pwd")
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, root, res.Output)
}

func TestHistoryListsEntries(t *testing.T) {
	e, _ := newTestEngine(t)
	info := e.CreateSession()

	run(t, e, info.ID, "pwd")
	run(t, e, info.ID, "ls -la")
	res := run(t, e, info.ID, "history")

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "  1  pwd\n  2  ls -la\n  3  history", res.Output)
}

func TestHistoryRecordsFailures(t *testing.T) {
	e, _ := newTestEngine(t)
	info := e.CreateSession()

	res := run(t, e, info.ID, "rm ghost.txt")
	assert.Equal(t, 1, res.ExitCode)

	history, _, err := e.History(info.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"rm ghost.txt"}, history)
}

func TestCd(t *testing.T) {
	e, root := newTestEngine(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0755))
	info := e.CreateSession()

	res := run(t, e, info.ID, "cd sub")
	assert.Equal(t, 0, res.ExitCode)
	assert.Empty(t, res.Output)

	res = run(t, e, info.ID, "pwd")
	assert.Equal(t, filepath.Join(root, "sub"), res.Output)

	wd, err := e.WorkingDir(info.ID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "sub"), wd)
}

func TestCdMissing(t *testing.T) {
	e, root := newTestEngine(t)
	info := e.CreateSession()

	res := run(t, e, info.ID, "cd ghost")
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, "cd: no such file or directory: ghost", res.Output)
	assert.Equal(t, types.KindNotFound, res.Kind)

	res = run(t, e, info.ID, "pwd")
	assert.Equal(t, root, res.Output)
}

func TestCdNotADirectory(t *testing.T) {
	e, root := newTestEngine(t)
	writeFile(t, filepath.Join(root, "plain.txt"), "x")
	info := e.CreateSession()

	res := run(t, e, info.ID, "cd plain.txt")
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, "cd: not a directory: plain.txt", res.Output)
	assert.Equal(t, types.KindInvalidArguments, res.Kind)
}

func TestCdBareGoesHome(t *testing.T) {
	e, root := newTestEngine(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0755))
	info := e.CreateSession()

	run(t, e, info.ID, "cd sub")
	res := run(t, e, info.ID, "cd")
	assert.Equal(t, 0, res.ExitCode)

	res = run(t, e, info.ID, "pwd")
	assert.Equal(t, root, res.Output)
}

func TestCdOutsideRoot(t *testing.T) {
	e, root := newTestEngine(t)
	info := e.CreateSession()

	res := run(t, e, info.ID, "cd ..")
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, "cd: outside sandbox root: ..", res.Output)
	assert.Equal(t, types.KindPathOutsideSandbox, res.Kind)

	res = run(t, e, info.ID, "pwd")
	assert.Equal(t, root, res.Output)
}

func TestCdViaTranslation(t *testing.T) {
	e, root := newTestEngine(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "projects"), 0755))
	info := e.CreateSession()

	res := run(t, e, info.ID, "go to the projects folder")
	assert.Equal(t, 0, res.ExitCode)

	res = run(t, e, info.ID, "pwd")
	assert.Equal(t, filepath.Join(root, "projects"), res.Output)
}

func TestTranslationCreatesFolder(t *testing.T) {
	e, root := newTestEngine(t)
	info := e.CreateSession()

	res := run(t, e, info.ID, "create a new folder called projects")
	assert.Equal(t, 0, res.ExitCode)

	st, err := os.Stat(filepath.Join(root, "projects"))
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}

func TestTranslationListsFiles(t *testing.T) {
	e, root := newTestEngine(t)
	writeFile(t, filepath.Join(root, "alpha.txt"), "a")
	info := e.CreateSession()

	res := run(t, e, info.ID, "show me the files")
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Output, "alpha.txt")
	assert.NotContains(t, res.Output, "Executing:")
}

func TestAiPrefixesRenderedCommand(t *testing.T) {
	e, _ := newTestEngine(t)
	info := e.CreateSession()

	res := run(t, e, info.ID, "ai what processes are running")
	assert.Equal(t, 0, res.ExitCode)
	assert.True(t, strings.HasPrefix(res.Output, "Executing: ps aux\n"), res.Output)
	assert.Contains(t, res.Output, "PID")
}

func TestAiUsage(t *testing.T) {
	e, _ := newTestEngine(t)
	info := e.CreateSession()

	res := run(t, e, info.ID, "ai")
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, aiUsage, res.Output)
	assert.Equal(t, types.KindInvalidArguments, res.Kind)
}

func TestAiExamples(t *testing.T) {
	e, _ := newTestEngine(t)
	info := e.CreateSession()

	for _, line := range []string{"ai examples", "ai help", "ask examples"} {
		res := run(t, e, info.ID, line)
		assert.Equal(t, 0, res.ExitCode)
		assert.True(t, strings.HasPrefix(res.Output, "Natural Language Examples:\n\n"), res.Output)
		assert.Contains(t, res.Output, " 1. ")
		assert.Contains(t, res.Output, "without the 'ai' command")
	}
}

func TestAiUnresolved(t *testing.T) {
	e, _ := newTestEngine(t)
	info := e.CreateSession()

	res := run(t, e, info.ID, "ai does nothing match here")
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, "I couldn't understand that query. Type 'ai examples' for example queries.", res.Output)
	assert.Equal(t, types.KindUnresolvedIntent, res.Kind)
}

func TestUnknownCommandSuggestions(t *testing.T) {
	e, _ := newTestEngine(t)
	info := e.CreateSession()

	res := run(t, e, info.ID, "lls")
	assert.Equal(t, 127, res.ExitCode)
	assert.Equal(t, types.KindUnknownCommand, res.Kind)
	assert.Contains(t, res.Output, "Command 'lls' not found.")
	assert.Contains(t, res.Output, "Did you mean: ")
	assert.Contains(t, res.Output, "ls")
}

func TestUnknownCommandNoSuggestions(t *testing.T) {
	e, _ := newTestEngine(t)
	info := e.CreateSession()

	res := run(t, e, info.ID, "qqqq")
	assert.Equal(t, 127, res.ExitCode)
	assert.Equal(t, "Command 'qqqq' not found.", res.Output)
}

func TestUnresolvedProse(t *testing.T) {
	e, _ := newTestEngine(t)
	info := e.CreateSession()

	res := run(t, e, info.ID, "what is the meaning of life")
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, types.KindUnresolvedIntent, res.Kind)
	assert.Equal(t,
		"I couldn't understand that command. Type 'help' for available commands or 'ai examples' for natural language examples.",
		res.Output)
}

func TestUnresolvedProseSuggestions(t *testing.T) {
	e, _ := newTestEngine(t)
	info := e.CreateSession()

	res := run(t, e, info.ID, "can you make this work")
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, types.KindUnresolvedIntent, res.Kind)
	assert.Contains(t, res.Output, "I couldn't understand that command. Did you mean:")
	assert.Contains(t, res.Output, "• mkdir <directory>")
}

func TestExitKeepsSessionAlive(t *testing.T) {
	e, _ := newTestEngine(t)
	info := e.CreateSession()

	for _, line := range []string{"exit", "quit"} {
		res := run(t, e, info.ID, line)
		assert.Equal(t, 0, res.ExitCode)
		assert.Equal(t, "Goodbye!", res.Output)
		assert.Equal(t, types.KindSessionEnd, res.Kind)
	}

	// Teardown is the transport's decision; the session itself lives on.
	history, _, err := e.History(info.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"exit", "quit"}, history)
}

func TestClearScreen(t *testing.T) {
	e, _ := newTestEngine(t)
	info := e.CreateSession()

	res := run(t, e, info.ID, "clear")
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "\x1b[2J\x1b[H", res.Output)
}

func TestHelp(t *testing.T) {
	e, _ := newTestEngine(t)
	info := e.CreateSession()

	res := run(t, e, info.ID, "help")
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Output, "Available Commands:")
	assert.Contains(t, res.Output, "ai examples")
	assert.Contains(t, res.Output, "zip <archive>")
}

func TestCopyMissingLeavesNoArtifact(t *testing.T) {
	e, root := newTestEngine(t)
	info := e.CreateSession()

	res := run(t, e, info.ID, "cp ghost.txt backup.txt")
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, types.KindNotFound, res.Kind)
	assert.Contains(t, res.Output, "cp: cannot stat 'ghost.txt'")

	_, err := os.Stat(filepath.Join(root, "backup.txt"))
	assert.True(t, os.IsNotExist(err))
}

// mockProvider scripts provider behavior through testify/mock.
type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Definition() types.Capability {
	args := m.Called()
	return args.Get(0).(types.Capability)
}

func (m *mockProvider) Execute(ctx context.Context, cmd string, cmdArgs []string, cwd string) (*types.Result, error) {
	args := m.Called(ctx, cmd, cmdArgs, cwd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Result), args.Error(1)
}

func newMockProvider(t *testing.T, commands ...string) *mockProvider {
	t.Helper()
	m := new(mockProvider)

	specs := make([]types.CommandSpec, len(commands))
	for i, name := range commands {
		specs[i] = types.CommandSpec{Name: name, Usage: name, Description: "Scripted " + name}
	}
	m.On("Definition").Return(types.Capability{
		ID:          "scripted",
		Name:        "Scripted",
		Description: "Scripted provider for engine tests",
		Commands:    specs,
	}).Maybe()

	return m
}

func TestProviderErrorConverted(t *testing.T) {
	broken := newMockProvider(t, "frob")
	broken.On("Execute", mock.Anything, "frob", []string{"x"}, mock.Anything).
		Return(nil, errors.New("backend unavailable"))

	e, _ := newTestEngine(t, broken)
	info := e.CreateSession()

	res := run(t, e, info.ID, "frob x")
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, types.KindInvalidArguments, res.Kind)
	assert.Equal(t, "frob: backend unavailable", res.Output)

	broken.AssertExpectations(t)
}

func TestProviderResultPassesThrough(t *testing.T) {
	scripted := newMockProvider(t, "frob")
	scripted.On("Execute", mock.Anything, "frob", []string{}, mock.Anything).
		Return(&types.Result{Output: "done", ExitCode: 0}, nil)

	e, _ := newTestEngine(t, scripted)
	info := e.CreateSession()

	res := run(t, e, info.ID, "frob")
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "done", res.Output)

	scripted.AssertExpectations(t)
}

type slowProvider struct {
	mu      sync.Mutex
	running bool
	overlap bool
	calls   int
}

func (p *slowProvider) Definition() types.Capability {
	return types.Capability{
		ID:          "slow",
		Name:        "Slow",
		Description: "Sleeps to expose overlapping execution",
		Commands:    []types.CommandSpec{{Name: "slow", Usage: "slow", Description: "Sleep briefly"}},
	}
}

func (p *slowProvider) Execute(context.Context, string, []string, string) (*types.Result, error) {
	p.mu.Lock()
	if p.running {
		p.overlap = true
	}
	p.running = true
	p.calls++
	p.mu.Unlock()

	time.Sleep(3 * time.Millisecond)

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
	return &types.Result{}, nil
}

func TestSameSessionSerializes(t *testing.T) {
	slow := &slowProvider{}
	e, _ := newTestEngine(t, slow)
	info := e.CreateSession()

	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Execute(context.Background(), info.ID, "slow")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	slow.mu.Lock()
	defer slow.mu.Unlock()
	assert.False(t, slow.overlap, "same-session commands overlapped")
	assert.Equal(t, workers, slow.calls)

	history, _, err := e.History(info.ID)
	require.NoError(t, err)
	assert.Len(t, history, workers)
}

func TestEndSessionDiscardsLaterWork(t *testing.T) {
	e, _ := newTestEngine(t)
	info := e.CreateSession()
	run(t, e, info.ID, "pwd")

	assert.True(t, e.EndSession(info.ID))
	assert.False(t, e.EndSession(info.ID))

	_, err := e.Execute(context.Background(), info.ID, "pwd")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, _, err = e.History(info.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEnsureSession(t *testing.T) {
	e, root := newTestEngine(t)

	info, created := e.EnsureSession("")
	assert.True(t, created)
	assert.Equal(t, root, info.WorkingDir)

	again, created := e.EnsureSession(info.ID)
	assert.False(t, created)
	assert.Equal(t, info.ID, again.ID)

	other, created := e.EnsureSession("sess_bogus")
	assert.True(t, created)
	assert.NotEqual(t, info.ID, other.ID)

	assert.Equal(t, 2, e.Sessions())
}

type captureMetrics struct {
	mu           sync.Mutex
	commands     []string
	statuses     []string
	translations []bool
	created      int
	active       []int
}

func (m *captureMetrics) RecordCommand(command, status string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, command)
	m.statuses = append(m.statuses, status)
}

func (m *captureMetrics) RecordTranslation(matched bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.translations = append(m.translations, matched)
}

func (m *captureMetrics) IncSessionsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *captureMetrics) SetSessionsActive(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = append(m.active, count)
}

func TestMetricsRecorded(t *testing.T) {
	root := t.TempDir()
	res, err := sandbox.New(root, true)
	require.NoError(t, err)

	reg := providers.NewRegistry()
	require.NoError(t, reg.Register(filesystem.NewProvider(res)))
	require.NoError(t, reg.Register(monitor.NewProvider()))

	sessions := session.NewRegistry(session.Config{WorkingDir: res.InitialDir()}, nil)
	t.Cleanup(sessions.Close)

	metrics := &captureMetrics{}
	e := New(Config{
		Providers: reg,
		Sessions:  sessions,
		Sandbox:   res,
		Metrics:   metrics,
	})

	info := e.CreateSession()
	run(t, e, info.ID, "pwd")
	run(t, e, info.ID, "rm ghost.txt")
	run(t, e, info.ID, "show me the files")
	run(t, e, info.ID, "gibberish of the day")
	e.EndSession(info.ID)

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	assert.Equal(t, 1, metrics.created)
	assert.Equal(t, []string{"pwd", "rm", "ls"}, metrics.commands)
	assert.Equal(t, []string{"success", "error", "success"}, metrics.statuses)
	assert.Equal(t, []bool{true, false}, metrics.translations)
	assert.Equal(t, []int{1, 0}, metrics.active)
}

func TestExamples(t *testing.T) {
	examples := Examples()
	assert.Contains(t, examples, "basic_commands")
	assert.Contains(t, examples, "ai_natural_language")
	assert.Contains(t, examples["system_monitoring"], "free -h")
}

func TestWelcomeMessage(t *testing.T) {
	msg := WelcomeMessage()
	assert.Contains(t, msg, "NLTerm Web Terminal v"+Version)
	assert.Contains(t, msg, "'ai examples'")
}
