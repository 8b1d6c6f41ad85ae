package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// DirectoryOps handles listing and the directory lifecycle
type DirectoryOps struct {
	*FilesystemOps
}

// List implements ls. Per-path problems become error lines in the output;
// the command itself still exits zero, matching the usual shell habit of
// listing what it can.
func (d *DirectoryOps) List(args []string, cwd string) (*types.Result, error) {
	var showAll, showLong, showHuman bool
	var paths []string

	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			if strings.Contains(arg, "a") {
				showAll = true
			}
			if strings.Contains(arg, "l") {
				showLong = true
			}
			if strings.Contains(arg, "h") {
				showHuman = true
			}
		} else {
			paths = append(paths, arg)
		}
	}
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var out []string
	for _, pathArg := range paths {
		target, err := d.resolve(cwd, pathArg)
		if err != nil {
			return sandboxFailure("ls", pathArg)
		}

		info, err := os.Stat(target)
		if err != nil {
			out = append(out, fmt.Sprintf("ls: cannot access '%s': %s", pathArg, reason(err)))
			continue
		}

		if !info.IsDir() {
			if showLong {
				out = append(out, longListing([]string{target}, showHuman))
			} else {
				out = append(out, filepath.Base(target))
			}
			continue
		}

		entries, err := os.ReadDir(target)
		if err != nil {
			out = append(out, fmt.Sprintf("ls: cannot open directory '%s': %s", pathArg, reason(err)))
			continue
		}

		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if !showAll && strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			names = append(names, entry.Name())
		}
		sort.Strings(names)

		if showLong {
			full := make([]string, len(names))
			for i, name := range names {
				full[i] = filepath.Join(target, name)
			}
			out = append(out, longListing(full, showHuman))
		} else {
			if len(paths) > 1 {
				out = append(out, pathArg+":")
			}
			out = append(out, strings.Join(names, "  "))
		}
	}

	return Success(strings.Join(out, "\n"))
}

// Create implements mkdir.
func (d *DirectoryOps) Create(args []string, cwd string) (*types.Result, error) {
	if len(args) == 0 {
		return Failure("mkdir: missing operand", types.KindInvalidArguments)
	}

	var parents bool
	var dirs []string
	for _, arg := range args {
		if arg == "-p" {
			parents = true
		} else if !strings.HasPrefix(arg, "-") {
			dirs = append(dirs, arg)
		}
	}
	if len(dirs) == 0 {
		return Failure("mkdir: missing operand", types.KindInvalidArguments)
	}

	var errs []string
	var kind types.ErrorKind
	for _, name := range dirs {
		target, err := d.resolve(cwd, name)
		if err != nil {
			return sandboxFailure("mkdir", name)
		}

		if parents {
			err = os.MkdirAll(target, 0755)
		} else {
			err = os.Mkdir(target, 0755)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("mkdir: cannot create directory '%s': %s", name, reason(err)))
			if kind == "" {
				kind = kindFor(err)
			}
		}
	}

	if len(errs) > 0 {
		return Failure(strings.Join(errs, "\n"), kind)
	}
	return Success("")
}

// Remove implements rmdir. Only empty directories go away.
func (d *DirectoryOps) Remove(args []string, cwd string) (*types.Result, error) {
	if len(args) == 0 {
		return Failure("rmdir: missing operand", types.KindInvalidArguments)
	}

	var errs []string
	var kind types.ErrorKind
	for _, name := range args {
		if strings.HasPrefix(name, "-") {
			continue
		}

		target, err := d.resolve(cwd, name)
		if err != nil {
			return sandboxFailure("rmdir", name)
		}

		info, err := os.Lstat(target)
		if err != nil {
			errs = append(errs, fmt.Sprintf("rmdir: failed to remove '%s': %s", name, reason(err)))
			if kind == "" {
				kind = kindFor(err)
			}
			continue
		}
		if !info.IsDir() {
			errs = append(errs, fmt.Sprintf("rmdir: failed to remove '%s': Not a directory", name))
			if kind == "" {
				kind = types.KindInvalidArguments
			}
			continue
		}

		if err := os.Remove(target); err != nil {
			msg := fmt.Sprintf("rmdir: failed to remove '%s': %s", name, reason(err))
			if kindFor(err) == types.KindNotEmpty {
				msg += fmt.Sprintf(" (use 'rm -r %s' to remove it)", name)
			}
			errs = append(errs, msg)
			if kind == "" {
				kind = kindFor(err)
			}
		}
	}

	if len(errs) > 0 {
		return Failure(strings.Join(errs, "\n"), kind)
	}
	return Success("")
}

// longListing renders the -l format: permissions, link count, numeric
// owner and group, size, mtime, name.
func longListing(paths []string, human bool) string {
	lines := make([]string, 0, len(paths))
	for _, path := range paths {
		info, err := os.Lstat(path)
		if err != nil {
			lines = append(lines, fmt.Sprintf("ls: cannot access '%s': %s", path, reason(err)))
			continue
		}

		var uid, gid uint32
		var links uint64 = 1
		if st, ok := info.Sys().(*syscall.Stat_t); ok {
			uid = st.Uid
			gid = st.Gid
			links = uint64(st.Nlink)
		}

		sizeStr := strconv.FormatInt(info.Size(), 10)
		if human {
			sizeStr = humanSize(info.Size())
		}
		mtime := info.ModTime().Format("Jan 02 15:04")

		lines = append(lines, fmt.Sprintf("%s %3d %8d %8d %-8s %s %s",
			modeString(info), links, uid, gid, sizeStr, mtime, info.Name()))
	}
	return strings.Join(lines, "\n")
}

func modeString(info os.FileInfo) string {
	mode := info.Mode()
	typ := byte('-')
	switch {
	case mode.IsDir():
		typ = 'd'
	case mode&os.ModeSymlink != 0:
		typ = 'l'
	}

	buf := []byte{typ, '-', '-', '-', '-', '-', '-', '-', '-', '-'}
	const bits = "rwxrwxrwx"
	perm := mode.Perm()
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			buf[i+1] = bits[i]
		}
	}
	return string(buf)
}

func humanSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "K", "M", "G", "T"} {
		if value < 1024.0 {
			return fmt.Sprintf("%3.1f%s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.1fP", value)
}
