// Package repl implements the interactive terminal loop.
//
// A Terminal wraps one engine session: it prints the banner and a
// "user@host:dir$ " prompt, reads lines, and prints command output,
// coloring errors red. Ctrl-C cancels the line being typed and Ctrl-D
// ends the session, the same way a system shell behaves.
//
// Colors come from fatih/color and can be forced off for pipes and
// tests. Per-user defaults load from ~/.nlterm.toml via LoadPrefs.
//
// Example Usage:
//
//	info := eng.CreateSession()
//	term := repl.New(repl.Config{Engine: eng, SessionID: info.ID, Colors: true})
//	term.Run(context.Background())
package repl
