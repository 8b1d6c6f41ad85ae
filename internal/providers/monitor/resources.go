package monitor

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

func (m *Provider) memoryUsage(ctx context.Context, args []string) (*types.Result, error) {
	human := slices.Contains(args, "-h")

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return failure(fmt.Sprintf("free: %s", err), types.KindInvalidArguments)
	}
	swap, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return failure(fmt.Sprintf("free: %s", err), types.KindInvalidArguments)
	}

	// Free memory is the reclaimable figure, matching free's "available".
	format := func(v uint64) string {
		if human {
			return humanBytes(v)
		}
		return strconv.FormatUint(v/1024, 10)
	}
	rows := [][]string{
		{"Mem:", format(vm.Total), format(vm.Used), format(vm.Available)},
		{"Swap:", format(swap.Total), format(swap.Used), format(swap.Free)},
	}

	return success(renderTable([]string{"", "total", "used", "free"}, rows))
}

func (m *Provider) diskUsage(ctx context.Context, args []string) (*types.Result, error) {
	human := slices.Contains(args, "-h")
	path := ""
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		path = args[0]
	}

	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return failure(fmt.Sprintf("df: %s", err), types.KindInvalidArguments)
	}

	var rows [][]string
	for _, part := range partitions {
		usage, err := disk.UsageWithContext(ctx, part.Mountpoint)
		if err != nil || usage.Total == 0 {
			continue
		}
		if path != "" && part.Mountpoint != path {
			continue
		}

		var total, used, free string
		if human {
			total = humanBytes(usage.Total)
			used = humanBytes(usage.Used)
			free = humanBytes(usage.Free)
		} else {
			total = strconv.FormatUint(usage.Total/1024, 10)
			used = strconv.FormatUint(usage.Used/1024, 10)
			free = strconv.FormatUint(usage.Free/1024, 10)
		}
		usePct := fmt.Sprintf("%.1f%%", float64(usage.Used)/float64(usage.Total)*100)

		rows = append(rows, []string{part.Device, total, used, free, usePct, part.Mountpoint})
	}

	headers := []string{"Filesystem", "Size", "Used", "Available", "Use%", "Mounted on"}
	return success(renderTable(headers, rows))
}

func (m *Provider) uptime(ctx context.Context) (*types.Result, error) {
	boot, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return failure(fmt.Sprintf("uptime: %s", err), types.KindInvalidArguments)
	}

	now := time.Now()
	secs := now.Unix() - int64(boot)
	if secs < 0 {
		secs = 0
	}
	days := int(secs / 86400)
	hours := int(secs % 86400 / 3600)
	minutes := int(secs % 3600 / 60)

	loadStr := ""
	if avg, err := load.AvgWithContext(ctx); err == nil {
		loadStr = fmt.Sprintf(", load average: %.2f, %.2f, %.2f", avg.Load1, avg.Load5, avg.Load15)
	}

	// User count approximates logged-in users by counting the distinct
	// owners of running processes.
	users := make(map[string]struct{})
	if procs, err := process.ProcessesWithContext(ctx); err == nil {
		for _, p := range procs {
			if name, err := p.UsernameWithContext(ctx); err == nil && name != "" {
				users[name] = struct{}{}
			}
		}
	}
	userCount := len(users)

	var uptimeStr string
	if days > 0 {
		uptimeStr = fmt.Sprintf("%d day%s, %02d:%02d", days, plural(days), hours, minutes)
	} else {
		uptimeStr = fmt.Sprintf("%02d:%02d", hours, minutes)
	}

	output := fmt.Sprintf(" %s up %s, %d user%s%s",
		now.Format("15:04:05"), uptimeStr, userCount, plural(userCount), loadStr)
	return success(output)
}
