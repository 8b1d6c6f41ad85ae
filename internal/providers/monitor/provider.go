package monitor

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// Provider implements system monitoring commands backed by gopsutil.
type Provider struct{}

// NewProvider creates a monitor provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Definition returns the provider metadata.
func (m *Provider) Definition() types.Capability {
	return types.Capability{
		ID:          "monitor",
		Name:        "System Monitor",
		Description: "Process, memory, disk, and host identity reporting",
		Commands: []types.CommandSpec{
			{Name: "ps", Usage: "ps [aux] [-a -u -x -f]", Description: "List running processes"},
			{Name: "top", Usage: "top", Description: "Snapshot of system load and the busiest processes"},
			{Name: "free", Usage: "free [-h]", Description: "Memory and swap usage"},
			{Name: "df", Usage: "df [-h] [path]", Description: "Disk usage by mounted filesystem"},
			{Name: "uptime", Usage: "uptime", Description: "Time since boot, user count, and load averages"},
			{Name: "kill", Usage: "kill [-SIGNAL | -N] pid...", Description: "Send a signal to processes by PID"},
			{Name: "killall", Usage: "killall [-s N] name...", Description: "Signal every process with a matching name"},
			{Name: "jobs", Usage: "jobs", Description: "List shell jobs"},
			{Name: "who", Usage: "who", Description: "Show logged-in users"},
			{Name: "whoami", Usage: "whoami", Description: "Print the current user name"},
			{Name: "uname", Usage: "uname [-a -s -n -r -v -m]", Description: "Print system identification"},
		},
	}
}

// Execute runs a monitoring command. The working directory is ignored;
// every command reports on the host as a whole.
func (m *Provider) Execute(ctx context.Context, cmd string, args []string, _ string) (*types.Result, error) {
	switch cmd {
	case "ps":
		return m.processList(ctx, args)
	case "top":
		return m.topSnapshot(ctx)
	case "free":
		return m.memoryUsage(ctx, args)
	case "df":
		return m.diskUsage(ctx, args)
	case "uptime":
		return m.uptime(ctx)
	case "kill":
		return m.kill(ctx, args)
	case "killall":
		return m.killall(ctx, args)
	case "jobs":
		return m.jobs()
	case "who":
		return m.who(ctx)
	case "whoami":
		return m.whoami()
	case "uname":
		return m.uname(ctx, args)
	default:
		return failure(fmt.Sprintf("Unknown system command: %s", cmd), types.KindUnknownCommand)
	}
}

func success(output string) (*types.Result, error) {
	return &types.Result{Output: output}, nil
}

func failure(message string, kind types.ErrorKind) (*types.Result, error) {
	return &types.Result{Output: message, ExitCode: 1, Kind: kind}, nil
}

// renderTable lays out rows under their headers with two-space padding,
// mirroring a plain-format table.
func renderTable(headers []string, rows [][]string) string {
	var buf strings.Builder
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
	return strings.TrimRight(buf.String(), "\n")
}

func humanBytes(v uint64) string {
	f := float64(v)
	for _, unit := range []string{"B", "K", "M", "G", "T"} {
		if f < 1024.0 {
			return fmt.Sprintf("%.1f%s", f, unit)
		}
		f /= 1024.0
	}
	return fmt.Sprintf("%.1fP", f)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
