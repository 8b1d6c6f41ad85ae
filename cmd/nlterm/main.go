package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/Adi-aygd/nlterm/internal/engine"
	"github.com/Adi-aygd/nlterm/internal/infrastructure/logging"
	"github.com/Adi-aygd/nlterm/internal/intent"
	"github.com/Adi-aygd/nlterm/internal/providers"
	"github.com/Adi-aygd/nlterm/internal/providers/filesystem"
	"github.com/Adi-aygd/nlterm/internal/providers/monitor"
	"github.com/Adi-aygd/nlterm/internal/repl"
	"github.com/Adi-aygd/nlterm/internal/sandbox"
	"github.com/Adi-aygd/nlterm/internal/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	noColors := flag.Bool("no-colors", false, "Disable colored output")
	debug := flag.Bool("debug", false, "Enable debug logging to stderr")
	version := flag.Bool("version", false, "Print version and exit")
	sandboxRoot := flag.String("sandbox-root", "", "Confine file operations to this directory (default: home)")
	noSandbox := flag.Bool("no-sandbox", false, "Disable sandbox confinement")
	rules := flag.String("rules", "", "Extra intent rule pack (YAML)")
	flag.Parse()

	if *version {
		fmt.Println("NLTerm v" + engine.Version)
		return 0
	}

	prefs, err := repl.LoadPrefs(repl.DefaultPrefsPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: ignoring preferences:", err)
	}

	// Flags win over preferences.
	root := *sandboxRoot
	if root == "" {
		root = prefs.SandboxRoot
	}
	rulesFile := *rules
	if rulesFile == "" {
		rulesFile = prefs.RulesFile
	}

	useColors := !*noColors && !color.NoColor
	if prefs.Colors != nil && !*prefs.Colors {
		useColors = false
	}

	logger := logging.NewNop()
	if *debug {
		logger, err = logging.New(logging.Config{
			Level:       "debug",
			Development: true,
			OutputPaths: []string{"stderr"},
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
	}

	resolver, err := sandbox.New(root, !*noSandbox)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	table := intent.NewTable()
	if rulesFile != "" {
		if _, err := table.LoadFile(rulesFile); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: could not load rule pack:", err)
		}
	}

	registry := providers.NewRegistry()
	if err := registry.Register(filesystem.NewProvider(resolver)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	if err := registry.Register(monitor.NewProvider()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	sessions := session.NewRegistry(session.Config{WorkingDir: resolver.InitialDir()}, logger)
	defer sessions.Close()

	eng := engine.New(engine.Config{
		Providers: registry,
		Sessions:  sessions,
		Sandbox:   resolver,
		Table:     table,
		Logger:    logger,
	})
	info := eng.CreateSession()

	term := repl.New(repl.Config{
		Engine:    eng,
		SessionID: info.ID,
		Colors:    useColors,
	})
	if err := term.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
