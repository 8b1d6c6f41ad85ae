package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Adi-aygd/nlterm/internal/infrastructure/logging"
	"github.com/Adi-aygd/nlterm/internal/intent"
	"github.com/Adi-aygd/nlterm/internal/parser"
	"github.com/Adi-aygd/nlterm/internal/providers"
	"github.com/Adi-aygd/nlterm/internal/sandbox"
	"github.com/Adi-aygd/nlterm/internal/session"
	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// Version is the release string reported by transports and the REPL.
const Version = "1.0.0"

// Metrics receives engine-level measurements. The monitoring package
// provides the Prometheus implementation; the zero Config uses a no-op.
type Metrics interface {
	RecordCommand(command, status string, duration time.Duration)
	RecordTranslation(matched bool)
	IncSessionsCreated()
	SetSessionsActive(count int)
}

type nopMetrics struct{}

func (nopMetrics) RecordCommand(string, string, time.Duration) {}
func (nopMetrics) RecordTranslation(bool)                      {}
func (nopMetrics) IncSessionsCreated()                         {}
func (nopMetrics) SetSessionsActive(int)                       {}

// Config carries the engine's collaborators.
type Config struct {
	Providers *providers.Registry
	Sessions  *session.Registry
	Sandbox   *sandbox.Resolver

	// Table may be nil; the builtin rule set is used.
	Table *intent.Table

	// Logger and Metrics may be nil; no-op implementations are used.
	Logger  *logging.Logger
	Metrics Metrics
}

// Engine dispatches terminal input to builtins, providers, and the
// intent translator.
type Engine struct {
	providers *providers.Registry
	sessions  *session.Registry
	sandbox   *sandbox.Resolver
	table     *intent.Table
	parser    *parser.Parser
	logger    *logging.Logger
	metrics   Metrics
	builtins  map[string]builtinFunc
}

// New wires an engine. Register every provider before calling New: the
// command parser snapshots the known command set once.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	table := cfg.Table
	if table == nil {
		table = intent.NewTable()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}

	e := &Engine{
		providers: cfg.Providers,
		sessions:  cfg.Sessions,
		sandbox:   cfg.Sandbox,
		table:     table,
		logger:    logger,
		metrics:   metrics,
	}
	e.builtins = map[string]builtinFunc{
		"exit":    e.endSession,
		"quit":    e.endSession,
		"help":    e.showHelp,
		"history": e.showHistory,
		"clear":   e.clearScreen,
		"cd":      e.changeDir,
		"pwd":     e.printWorkingDir,
		"ai":      e.naturalLanguage,
		"ask":     e.naturalLanguage,
	}

	names := make([]string, 0, len(e.builtins)+len(e.providers.Commands()))
	for name := range e.builtins {
		names = append(names, name)
	}
	names = append(names, e.providers.Commands()...)
	e.parser = parser.New(names)
	return e
}

// Execute runs one line of input in the named session. Blank lines are
// no-ops and touch neither the session nor its history. Unknown session
// IDs fail with ErrSessionNotFound; a session torn down mid-request
// fails with session.ErrClosed and the result is discarded.
func (e *Engine) Execute(ctx context.Context, sessionID, line string) (*types.Result, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return &types.Result{}, nil
	}

	s, ok := e.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	var res *types.Result
	err := s.Do(func(c *session.Context) {
		c.Touch()
		c.History = append(c.History, trimmed)
		res = e.dispatch(ctx, c, trimmed)
		if res.ExitCode == 0 && res.NewWorkingDir != "" {
			c.WorkingDir = res.NewWorkingDir
		}
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// dispatch routes one non-empty line. Lines whose first token names a
// known command run directly; everything else goes through the intent
// table, and lines that neither path claims are classified by shape.
func (e *Engine) dispatch(ctx context.Context, c *session.Context, line string) *types.Result {
	if inv, ok := e.parser.Parse(line); ok {
		return e.run(ctx, c, inv)
	}

	tr, ok := e.table.Translate(line)
	e.metrics.RecordTranslation(ok)
	if ok {
		e.logger.Debug("Intent translated",
			zap.String("session_id", c.ID.String()),
			zap.String("rendered", tr.Rendered))
		return e.run(ctx, c, tr.Invocation)
	}

	if intent.IsProse(line) {
		return e.unresolvedCommand(line)
	}
	return e.unknownCommand(strings.ToLower(strings.Fields(line)[0]))
}

// run executes a resolved invocation and records its outcome.
func (e *Engine) run(ctx context.Context, c *session.Context, inv types.Invocation) *types.Result {
	start := time.Now()
	res := e.invoke(ctx, c, inv)

	status := "success"
	if res.Failed() {
		status = "error"
	}
	e.metrics.RecordCommand(inv.Command, status, time.Since(start))
	e.logger.Debug("Command executed",
		zap.String("session_id", c.ID.String()),
		zap.String("command", inv.Command),
		zap.Int("exit_code", res.ExitCode),
		zap.Duration("duration", time.Since(start)))
	return res
}

func (e *Engine) invoke(ctx context.Context, c *session.Context, inv types.Invocation) *types.Result {
	if fn, ok := e.builtins[inv.Command]; ok {
		return fn(ctx, c, inv.Args)
	}
	if p, ok := e.providers.Lookup(inv.Command); ok {
		res, err := p.Execute(ctx, inv.Command, inv.Args, c.WorkingDir)
		if err != nil {
			e.logger.Error("Provider failed",
				zap.String("command", inv.Command),
				zap.Error(err))
			return failure(fmt.Sprintf("%s: %s", inv.Command, err), types.KindInvalidArguments)
		}
		return res
	}
	return e.unknownCommand(inv.Command)
}

// unknownCommand builds the failure for input that looked like a command
// but named none.
func (e *Engine) unknownCommand(name string) *types.Result {
	msg := fmt.Sprintf("Command '%s' not found.", name)
	if near := e.nearest(name); len(near) > 0 {
		msg += fmt.Sprintf("\nDid you mean: %s?", strings.Join(near, ", "))
	}
	return &types.Result{Output: msg, ExitCode: 127, Kind: types.KindUnknownCommand}
}

// unresolvedCommand builds the failure for prose no intent rule matched.
func (e *Engine) unresolvedCommand(line string) *types.Result {
	if suggestions := intent.Suggest(line); len(suggestions) > 0 {
		return failure("I couldn't understand that command. Did you mean:\n"+bulleted(suggestions),
			types.KindUnresolvedIntent)
	}
	return failure("I couldn't understand that command. Type 'help' for available commands or 'ai examples' for natural language examples.",
		types.KindUnresolvedIntent)
}

// nearest suggests registered commands close to a mistyped name: first
// those sharing a two-character prefix, then those within one character
// in length whose character sets nearly cover the shorter name.
func (e *Engine) nearest(name string) []string {
	known := e.parser.Commands()
	sort.Strings(known)

	lower := strings.ToLower(name)
	prefix := lower
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}

	var out []string
	for _, cmd := range known {
		if cmd != lower && strings.HasPrefix(cmd, prefix) {
			out = append(out, cmd)
		}
	}
	if len(out) == 0 {
		want := charSet(lower)
		for _, cmd := range known {
			if abs(len(cmd)-len(lower)) > 1 {
				continue
			}
			shared := 0
			for ch := range charSet(cmd) {
				if want[ch] {
					shared++
				}
			}
			if shared >= min(len(cmd), len(lower))-1 {
				out = append(out, cmd)
			}
		}
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func charSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		set[r] = true
	}
	return set
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func bulleted(items []string) string {
	lines := make([]string, len(items))
	for i, s := range items {
		lines[i] = "  • " + s
	}
	return strings.Join(lines, "\n")
}

func success(output string) *types.Result {
	return &types.Result{Output: output}
}

func failure(message string, kind types.ErrorKind) *types.Result {
	return &types.Result{Output: message, ExitCode: 1, Kind: kind}
}
