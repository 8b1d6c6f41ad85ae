package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Adi-aygd/nlterm/internal/intent"
	"github.com/Adi-aygd/nlterm/internal/session"
	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

type builtinFunc func(ctx context.Context, c *session.Context, args []string) *types.Result

// historyWindow caps how many entries the history builtin lists.
const historyWindow = 50

const aiUsage = "Usage: ai <natural language query>\nExample: ai 'show me the files in this directory'\nType 'ai examples' for more examples."

const helpText = `Available Commands:
==================

Built-in Commands:
  exit, quit    - Exit the terminal
  help          - Show this help message
  history       - Show command history
  clear         - Clear the screen
  cd <dir>      - Change directory
  pwd           - Print working directory

File Operations:
  ls [options] [path]     - List directory contents
  mkdir <dir>             - Create directory
  rmdir <dir>             - Remove empty directory
  rm <file/dir>           - Remove file or directory
  cp <src> <dest>         - Copy file or directory
  mv <src> <dest>         - Move/rename file or directory
  cat <file>              - Display file contents
  touch <file>            - Create empty file
  head <file>             - Show the first lines of a file
  tail <file>             - Show the last lines of a file
  wc <file>               - Count lines, words, and bytes
  stat <path>             - Show file status
  chmod <mode> <path>     - Change file permissions
  find <path> <name>      - Find files/directories
  zip <archive> <files>   - Create a zip or tar archive
  unzip <archive>         - Extract an archive

System Monitoring:
  ps [options]            - List running processes
  top                     - Show system processes (snapshot)
  df [path]               - Show disk space usage
  free                    - Show memory usage
  uptime                  - Show system uptime
  kill <pid>              - Send a signal to a process
  killall <name>          - Signal every process by name
  jobs                    - List background jobs
  who                     - Show logged-in users
  whoami                  - Show the current user
  uname [-a]              - Show system information

AI Commands:
  ai <query>        - Process natural language query
  ask <query>       - Same as 'ai'
  ai examples       - Show natural language examples

Examples:
  ls -la
  mkdir new_folder
  cp file1.txt backup/
  ps aux
  find . *.py

Natural Language Examples:
  "show me the files in this directory"
  "create a new folder called projects"
  "copy file.txt to backup folder"
  "find all python files"
  "what processes are running"`

func (e *Engine) endSession(_ context.Context, _ *session.Context, _ []string) *types.Result {
	return &types.Result{Output: "Goodbye!", Kind: types.KindSessionEnd}
}

func (e *Engine) showHelp(_ context.Context, _ *session.Context, _ []string) *types.Result {
	return success(helpText)
}

// showHistory lists the most recent entries. The line being executed is
// already recorded, so "history" always lists itself last.
func (e *Engine) showHistory(_ context.Context, c *session.Context, _ []string) *types.Result {
	window := c.History
	if len(window) == 0 {
		return success("No commands in history")
	}
	if len(window) > historyWindow {
		window = window[len(window)-historyWindow:]
	}

	lines := make([]string, len(window))
	for i, cmd := range window {
		lines[i] = fmt.Sprintf("%3d  %s", i+1, cmd)
	}
	return success(strings.Join(lines, "\n"))
}

func (e *Engine) clearScreen(_ context.Context, _ *session.Context, _ []string) *types.Result {
	return success("\x1b[2J\x1b[H")
}

func (e *Engine) printWorkingDir(_ context.Context, c *session.Context, _ []string) *types.Result {
	return success(c.WorkingDir)
}

// changeDir resolves the target against the session working directory
// and stages it on the result; the engine applies it on success. Bare
// cd, "~", and "-" all go to the home directory.
func (e *Engine) changeDir(_ context.Context, c *session.Context, args []string) *types.Result {
	display := "~"
	if len(args) > 0 {
		display = args[0]
	}

	var target string
	if len(args) == 0 || args[0] == "~" || args[0] == "-" {
		target = e.sandbox.HomeDir()
	} else {
		resolved, err := e.sandbox.Resolve(c.WorkingDir, args[0])
		if err != nil {
			return failure(fmt.Sprintf("cd: outside sandbox root: %s", display), types.KindPathOutsideSandbox)
		}
		target = resolved
	}

	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		return &types.Result{NewWorkingDir: target}
	case err == nil:
		return failure(fmt.Sprintf("cd: not a directory: %s", display), types.KindInvalidArguments)
	case errors.Is(err, fs.ErrNotExist):
		return failure(fmt.Sprintf("cd: no such file or directory: %s", display), types.KindNotFound)
	case errors.Is(err, fs.ErrPermission):
		return failure(fmt.Sprintf("cd: permission denied: %s", display), types.KindPermissionDenied)
	default:
		return failure(fmt.Sprintf("cd: %s", err), types.KindInvalidArguments)
	}
}

// naturalLanguage serves the ai and ask builtins. A resolved query runs
// its command and prefixes the output with the rendered line, so users
// learn the shell form of what they asked for.
func (e *Engine) naturalLanguage(ctx context.Context, c *session.Context, args []string) *types.Result {
	if len(args) == 0 {
		return failure(aiUsage, types.KindInvalidArguments)
	}

	query := strings.Join(args, " ")
	switch strings.ToLower(query) {
	case "examples", "example", "help":
		return success(e.renderExamples())
	}

	tr, ok := e.table.Translate(query)
	e.metrics.RecordTranslation(ok)
	if !ok {
		return e.unresolvedQuery(query)
	}

	res := e.run(ctx, c, tr.Invocation)
	res.Output = fmt.Sprintf("Executing: %s\n%s", tr.Rendered, res.Output)
	return res
}

func (e *Engine) renderExamples() string {
	var b strings.Builder
	b.WriteString("Natural Language Examples:\n\n")
	for i, q := range e.table.ExampleQueries() {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, q)
	}
	b.WriteString("\nYou can also use these queries directly without the 'ai' command.")
	return b.String()
}

// unresolvedQuery is the ai builtin's variant of an unmatched query.
func (e *Engine) unresolvedQuery(query string) *types.Result {
	if suggestions := intent.Suggest(query); len(suggestions) > 0 {
		return failure("I couldn't understand that query. Did you mean:\n"+bulleted(suggestions),
			types.KindUnresolvedIntent)
	}
	return failure("I couldn't understand that query. Type 'ai examples' for example queries.",
		types.KindUnresolvedIntent)
}
