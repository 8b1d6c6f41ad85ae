package monitor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/user"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// cpuSampleInterval is how long top samples the CPU before reporting.
const cpuSampleInterval = 250 * time.Millisecond

const killUsage = "kill: usage: kill [-s sigspec | -n signum | -sigspec] pid | jobspec ... or kill -l [sigspec]"

var signalNames = map[string]syscall.Signal{
	"TERM": 15,
	"KILL": 9,
	"HUP":  1,
	"INT":  2,
	"QUIT": 3,
	"USR1": 10,
	"USR2": 12,
}

type processRow struct {
	pid     int32
	ppid    int32
	user    string
	stat    string
	cpu     float64
	mem     float32
	started string
	command string
}

func (m *Provider) processList(ctx context.Context, args []string) (*types.Result, error) {
	var showAll, showUser, showFull bool
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			if strings.Contains(arg, "a") || strings.Contains(arg, "x") {
				showAll = true
			}
			if strings.Contains(arg, "u") {
				showUser = true
			}
			if strings.Contains(arg, "f") {
				showFull = true
			}
		} else if arg == "aux" || arg == "axu" {
			showAll = true
			showUser = true
		}
	}

	me := ""
	if !showAll {
		u, err := user.Current()
		if err != nil {
			return failure(fmt.Sprintf("ps: %s", err), types.KindInvalidArguments)
		}
		me = u.Username
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return failure(fmt.Sprintf("ps: %s", err), types.KindInvalidArguments)
	}

	var rows []processRow
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		username, err := p.UsernameWithContext(ctx)
		if err != nil || username == "" {
			username = "?"
		}
		if !showAll && username != me {
			continue
		}

		row := processRow{pid: p.Pid, user: username, stat: "?", started: "?", command: name}
		if ppid, err := p.PpidWithContext(ctx); err == nil {
			row.ppid = ppid
		}
		if st, err := p.StatusWithContext(ctx); err == nil && len(st) > 0 {
			row.stat = strings.Join(st, "")
		}
		if pct, err := p.CPUPercentWithContext(ctx); err == nil {
			row.cpu = pct
		}
		if pct, err := p.MemoryPercentWithContext(ctx); err == nil {
			row.mem = pct
		}
		if created, err := p.CreateTimeWithContext(ctx); err == nil && created > 0 {
			row.started = time.UnixMilli(created).Format("15:04")
		}
		if showFull {
			if cmdline, err := p.CmdlineWithContext(ctx); err == nil && cmdline != "" {
				row.command = cmdline
			}
		}
		if len(row.command) > 60 {
			row.command = row.command[:57] + "..."
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].pid < rows[j].pid })

	var headers []string
	var table [][]string
	if showUser {
		headers = []string{"USER", "PID", "PPID", "%CPU", "%MEM", "STAT", "TIME", "COMMAND"}
		for _, r := range rows {
			table = append(table, []string{
				r.user,
				strconv.Itoa(int(r.pid)),
				strconv.Itoa(int(r.ppid)),
				fmt.Sprintf("%.1f", r.cpu),
				fmt.Sprintf("%.1f", r.mem),
				r.stat,
				r.started,
				r.command,
			})
		}
	} else {
		headers = []string{"PID", "PPID", "STAT", "TIME", "COMMAND"}
		for _, r := range rows {
			table = append(table, []string{
				strconv.Itoa(int(r.pid)),
				strconv.Itoa(int(r.ppid)),
				r.stat,
				r.started,
				r.command,
			})
		}
	}

	return success(renderTable(headers, table))
}

func (m *Provider) topSnapshot(ctx context.Context) (*types.Result, error) {
	loads := [3]float64{}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		loads = [3]float64{avg.Load1, avg.Load5, avg.Load15}
	}

	cpuPct := 0.0
	if usage, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false); err == nil && len(usage) > 0 {
		cpuPct = usage[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return failure(fmt.Sprintf("top: %s", err), types.KindInvalidArguments)
	}

	lines := []string{
		fmt.Sprintf("System Load: %.2f, %.2f, %.2f", loads[0], loads[1], loads[2]),
		fmt.Sprintf("CPU Usage: %.1f%%", cpuPct),
		fmt.Sprintf("Memory Usage: %.1f%% (%s/%s)", vm.UsedPercent, humanBytes(vm.Used), humanBytes(vm.Total)),
		"",
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return failure(fmt.Sprintf("top: %s", err), types.KindInvalidArguments)
	}

	var rows []processRow
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			name = "?"
		}
		username, err := p.UsernameWithContext(ctx)
		if err != nil || username == "" {
			username = "?"
		}

		row := processRow{pid: p.Pid, user: clip(username, 10), stat: "?", command: clip(name, 20)}
		if st, err := p.StatusWithContext(ctx); err == nil && len(st) > 0 {
			row.stat = strings.Join(st, "")
		}
		if pct, err := p.CPUPercentWithContext(ctx); err == nil {
			row.cpu = pct
		}
		if pct, err := p.MemoryPercentWithContext(ctx); err == nil {
			row.mem = pct
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].cpu > rows[j].cpu })
	if len(rows) > 20 {
		rows = rows[:20]
	}

	var table [][]string
	for _, r := range rows {
		table = append(table, []string{
			strconv.Itoa(int(r.pid)),
			r.user,
			fmt.Sprintf("%.1f", r.cpu),
			fmt.Sprintf("%.1f", r.mem),
			r.stat,
			r.command,
		})
	}
	lines = append(lines, renderTable([]string{"PID", "USER", "CPU%", "MEM%", "STAT", "COMMAND"}, table))

	return success(strings.Join(lines, "\n"))
}

func (m *Provider) kill(ctx context.Context, args []string) (*types.Result, error) {
	if len(args) == 0 {
		return failure(killUsage, types.KindInvalidArguments)
	}

	sig := syscall.Signal(15)
	var pids []int32
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			spec := arg[1:]
			if n, err := strconv.Atoi(spec); err == nil {
				sig = syscall.Signal(n)
			} else if named, ok := signalNames[strings.ToUpper(spec)]; ok {
				sig = named
			} else {
				sig = syscall.Signal(15)
			}
			continue
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return failure(fmt.Sprintf("kill: '%s': arguments must be process or job IDs", arg), types.KindInvalidArguments)
		}
		pids = append(pids, int32(n))
	}
	if len(pids) == 0 {
		return failure(killUsage, types.KindInvalidArguments)
	}

	var errs []string
	var kind types.ErrorKind
	fail := func(message string, k types.ErrorKind) {
		errs = append(errs, message)
		if kind == "" {
			kind = k
		}
	}

	for _, pid := range pids {
		proc, err := process.NewProcessWithContext(ctx, pid)
		if err != nil {
			fail(fmt.Sprintf("kill: (%d) - No such process", pid), types.KindNoSuchProcess)
			continue
		}
		if err := proc.SendSignalWithContext(ctx, sig); err != nil {
			switch {
			case errors.Is(err, process.ErrorProcessNotRunning) || errors.Is(err, os.ErrProcessDone):
				fail(fmt.Sprintf("kill: (%d) - No such process", pid), types.KindNoSuchProcess)
			case errors.Is(err, os.ErrPermission):
				fail(fmt.Sprintf("kill: (%d) - Operation not permitted", pid), types.KindPermissionDenied)
			default:
				fail(fmt.Sprintf("kill: (%d) - %s", pid, err), types.KindInvalidArguments)
			}
		}
	}

	if len(errs) > 0 {
		return failure(strings.Join(errs, "\n"), kind)
	}
	return success("")
}

func (m *Provider) killall(ctx context.Context, args []string) (*types.Result, error) {
	if len(args) == 0 {
		return failure("killall: usage: killall [-s signal] process_name", types.KindInvalidArguments)
	}

	sig := syscall.Signal(15)
	var names []string
	for i := 0; i < len(args); i++ {
		if args[i] == "-s" && i+1 < len(args) {
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				return failure(fmt.Sprintf("killall: invalid signal '%s'", args[i+1]), types.KindInvalidArguments)
			}
			sig = syscall.Signal(n)
			i++
			continue
		}
		names = append(names, args[i])
	}
	if len(names) == 0 {
		return failure("killall: usage: killall [-s signal] process_name", types.KindInvalidArguments)
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return failure(fmt.Sprintf("killall: %s", err), types.KindInvalidArguments)
	}

	killed := 0
	for _, target := range names {
		for _, p := range procs {
			name, err := p.NameWithContext(ctx)
			if err != nil || name != target {
				continue
			}
			if err := p.SendSignalWithContext(ctx, sig); err == nil {
				killed++
			}
		}
	}

	if killed == 0 {
		return failure("killall: no process found", types.KindNoSuchProcess)
	}
	return success(fmt.Sprintf("Killed %d process(es)", killed))
}

func (m *Provider) jobs() (*types.Result, error) {
	return success("No active jobs")
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
