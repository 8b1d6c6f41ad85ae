package monitor

import (
	"context"
	"fmt"
	"os/user"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

func (m *Provider) who(ctx context.Context) (*types.Result, error) {
	users, err := host.UsersWithContext(ctx)
	if err != nil {
		return failure(fmt.Sprintf("who: %s", err), types.KindInvalidArguments)
	}
	if len(users) == 0 {
		return success("No users currently logged in")
	}

	var rows [][]string
	for _, u := range users {
		terminal := u.Terminal
		if terminal == "" {
			terminal = "console"
		}
		login := time.Unix(int64(u.Started), 0).Format("2006-01-02 15:04")
		rows = append(rows, []string{u.User, terminal, login})
	}

	return success(renderTable([]string{"USER", "TTY", "LOGIN"}, rows))
}

func (m *Provider) whoami() (*types.Result, error) {
	u, err := user.Current()
	if err != nil {
		return failure(fmt.Sprintf("whoami: %s", err), types.KindInvalidArguments)
	}
	return success(u.Username)
}

func (m *Provider) uname(ctx context.Context, args []string) (*types.Result, error) {
	all := slices.Contains(args, "-a")
	system := slices.Contains(args, "-s") || len(args) == 0 || all
	node := slices.Contains(args, "-n") || all
	release := slices.Contains(args, "-r") || all
	version := slices.Contains(args, "-v") || all
	machine := slices.Contains(args, "-m") || all

	var parts []string
	if system {
		parts = append(parts, systemName())
	}
	if node || release || version || machine {
		info, err := host.InfoWithContext(ctx)
		if err != nil {
			return failure(fmt.Sprintf("uname: %s", err), types.KindInvalidArguments)
		}
		if node {
			parts = append(parts, info.Hostname)
		}
		if release {
			parts = append(parts, info.KernelVersion)
		}
		if version {
			parts = append(parts, strings.TrimSpace(info.Platform+" "+info.PlatformVersion))
		}
		if machine {
			parts = append(parts, info.KernelArch)
		}
	}

	return success(strings.Join(parts, " "))
}

func systemName() string {
	switch runtime.GOOS {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	default:
		return runtime.GOOS
	}
}
