package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"os/user"
	"strings"

	"github.com/Adi-aygd/nlterm/internal/engine"
	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// Config controls a Terminal. Engine and SessionID are required; the
// remaining fields default to the invoking user's environment.
type Config struct {
	Engine    *engine.Engine
	SessionID string

	Input  io.Reader // defaults to os.Stdin
	Output io.Writer // defaults to os.Stdout
	Colors bool

	Username string
	Hostname string
	Home     string
}

// Terminal is the interactive read-eval-print loop.
type Terminal struct {
	engine    *engine.Engine
	sessionID string
	in        io.Reader
	out       io.Writer
	pal       *palette
	username  string
	hostname  string
	home      string
	sigs      chan os.Signal
}

// New creates a terminal over an existing session.
func New(cfg Config) *Terminal {
	if cfg.Input == nil {
		cfg.Input = os.Stdin
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Username == "" {
		cfg.Username = currentUser()
	}
	if cfg.Hostname == "" {
		cfg.Hostname = shortHostname()
	}
	if cfg.Home == "" {
		cfg.Home, _ = os.UserHomeDir()
	}

	return &Terminal{
		engine:    cfg.Engine,
		sessionID: cfg.SessionID,
		in:        cfg.Input,
		out:       cfg.Output,
		pal:       newPalette(cfg.Colors),
		username:  cfg.Username,
		hostname:  cfg.Hostname,
		home:      cfg.Home,
		sigs:      make(chan os.Signal, 1),
	}
}

// Run executes the interactive loop until the user exits or input ends.
// Ctrl-C cancels the current line; Ctrl-D ends the session.
func (t *Terminal) Run(ctx context.Context) error {
	t.printBanner()

	signal.Notify(t.sigs, os.Interrupt)
	defer signal.Stop(t.sigs)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		t.showPrompt()

		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-t.sigs:
			fmt.Fprintln(t.out, "\n^C\nOperation cancelled by user")

		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(t.out, "\nGoodbye!")
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !t.execute(ctx, line) {
				return nil
			}
		}
	}
}

// execute runs one line and reports whether the loop should continue.
func (t *Terminal) execute(ctx context.Context, line string) bool {
	res, err := t.engine.Execute(ctx, t.sessionID, line)
	if err != nil {
		fmt.Fprintln(t.out, t.pal.errorText.Sprint("Error: "+err.Error()))
		return true
	}

	if res.Output != "" {
		if res.Failed() {
			fmt.Fprintln(t.out, t.pal.errorText.Sprint("Error: "+res.Output))
		} else {
			fmt.Fprintln(t.out, res.Output)
		}
	}

	return res.Kind != types.KindSessionEnd
}

func (t *Terminal) showPrompt() {
	wd, err := t.engine.WorkingDir(t.sessionID)
	if err != nil {
		wd = "?"
	}
	fmt.Fprint(t.out, t.prompt(wd))
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "user"
}

func shortHostname() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "localhost"
	}
	if i := strings.IndexByte(host, '.'); i > 0 {
		host = host[:i]
	}
	return host
}
