package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// OperationsOps handles file manipulation commands
type OperationsOps struct {
	*FilesystemOps
}

// Remove implements rm.
func (o *OperationsOps) Remove(args []string, cwd string) (*types.Result, error) {
	if len(args) == 0 {
		return Failure("rm: missing operand", types.KindInvalidArguments)
	}

	var recursive, force bool
	var names []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			if strings.ContainsAny(arg, "rR") {
				recursive = true
			}
			if strings.Contains(arg, "f") {
				force = true
			}
		} else {
			names = append(names, arg)
		}
	}
	if len(names) == 0 {
		return Failure("rm: missing operand", types.KindInvalidArguments)
	}

	var errs []string
	var kind types.ErrorKind
	fail := func(msg string, k types.ErrorKind) {
		errs = append(errs, msg)
		if kind == "" {
			kind = k
		}
	}

	for _, name := range names {
		target, err := o.resolve(cwd, name)
		if err != nil {
			return sandboxFailure("rm", name)
		}

		info, err := os.Lstat(target)
		if err != nil {
			if !force {
				fail(fmt.Sprintf("rm: cannot remove '%s': %s", name, reason(err)), kindFor(err))
			}
			continue
		}

		if info.IsDir() && !recursive {
			fail(fmt.Sprintf("rm: cannot remove '%s': Is a directory (use 'rm -r %s' to remove it)", name, name), types.KindNotEmpty)
			continue
		}

		var rmErr error
		if info.IsDir() {
			rmErr = os.RemoveAll(target)
		} else {
			rmErr = os.Remove(target)
		}
		if rmErr != nil && !force {
			fail(fmt.Sprintf("rm: cannot remove '%s': %s", name, reason(rmErr)), kindFor(rmErr))
		}
	}

	if len(errs) > 0 {
		return Failure(strings.Join(errs, "\n"), kind)
	}
	return Success("")
}

// Copy implements cp. Every source is checked before the first byte is
// written, so a missing source never leaves a partial destination behind.
func (o *OperationsOps) Copy(args []string, cwd string) (*types.Result, error) {
	if len(args) < 2 {
		return Failure("cp: missing file operand", types.KindInvalidArguments)
	}

	var recursive, preserve bool
	var files []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			if strings.ContainsAny(arg, "rR") {
				recursive = true
			}
			if strings.Contains(arg, "p") {
				preserve = true
			}
		} else {
			files = append(files, arg)
		}
	}
	if len(files) < 2 {
		return Failure("cp: missing destination file operand", types.KindInvalidArguments)
	}

	sources := files[:len(files)-1]
	dest := files[len(files)-1]

	destPath, err := o.resolve(cwd, dest)
	if err != nil {
		return sandboxFailure("cp", dest)
	}

	type pending struct {
		name string
		path string
		info os.FileInfo
	}
	plan := make([]pending, 0, len(sources))
	for _, src := range sources {
		srcPath, err := o.resolve(cwd, src)
		if err != nil {
			return sandboxFailure("cp", src)
		}
		info, err := os.Stat(srcPath)
		if err != nil {
			return Failure(fmt.Sprintf("cp: cannot stat '%s': %s", src, reason(err)), kindFor(err))
		}
		if info.IsDir() && !recursive {
			return Failure(fmt.Sprintf("cp: -r not specified; omitting directory '%s'", src), types.KindInvalidArguments)
		}
		plan = append(plan, pending{name: src, path: srcPath, info: info})
	}

	destInfo, err := os.Stat(destPath)
	destIsDir := err == nil && destInfo.IsDir()

	if !destIsDir && len(plan) > 1 {
		return Failure(fmt.Sprintf("cp: target '%s' is not a directory", dest), types.KindInvalidArguments)
	}

	for _, p := range plan {
		target := destPath
		if destIsDir {
			target = filepath.Join(destPath, filepath.Base(p.path))
		}

		var copyErr error
		if p.info.IsDir() {
			copyErr = copyTree(p.path, target, preserve)
		} else {
			copyErr = copyFile(p.path, target, preserve)
		}
		if copyErr != nil {
			return Failure(fmt.Sprintf("cp: %s", reason(copyErr)), kindFor(copyErr))
		}
	}

	return Success("")
}

// Move implements mv.
func (o *OperationsOps) Move(args []string, cwd string) (*types.Result, error) {
	if len(args) < 2 {
		return Failure("mv: missing file operand", types.KindInvalidArguments)
	}

	sources := args[:len(args)-1]
	dest := args[len(args)-1]

	destPath, err := o.resolve(cwd, dest)
	if err != nil {
		return sandboxFailure("mv", dest)
	}

	srcPaths := make([]string, 0, len(sources))
	for _, src := range sources {
		srcPath, err := o.resolve(cwd, src)
		if err != nil {
			return sandboxFailure("mv", src)
		}
		if _, err := os.Lstat(srcPath); err != nil {
			return Failure(fmt.Sprintf("mv: cannot stat '%s': %s", src, reason(err)), kindFor(err))
		}
		srcPaths = append(srcPaths, srcPath)
	}

	destInfo, err := os.Stat(destPath)
	destIsDir := err == nil && destInfo.IsDir()

	if !destIsDir && len(srcPaths) > 1 {
		return Failure(fmt.Sprintf("mv: target '%s' is not a directory", dest), types.KindInvalidArguments)
	}

	for _, srcPath := range srcPaths {
		target := destPath
		if destIsDir {
			target = filepath.Join(destPath, filepath.Base(srcPath))
		}
		if err := rename(srcPath, target); err != nil {
			return Failure(fmt.Sprintf("mv: %s", reason(err)), kindFor(err))
		}
	}

	return Success("")
}

// Chmod implements chmod with octal modes.
func (o *OperationsOps) Chmod(args []string, cwd string) (*types.Result, error) {
	if len(args) < 2 {
		return Failure("chmod: missing operand", types.KindInvalidArguments)
	}

	modeArg := args[0]
	parsed, err := strconv.ParseUint(modeArg, 8, 32)
	if err != nil || parsed > 07777 {
		return Failure(fmt.Sprintf("chmod: invalid mode: '%s'", modeArg), types.KindInvalidArguments)
	}

	var errs []string
	var kind types.ErrorKind
	for _, name := range args[1:] {
		target, err := o.resolve(cwd, name)
		if err != nil {
			return sandboxFailure("chmod", name)
		}
		if err := os.Chmod(target, os.FileMode(parsed)); err != nil {
			errs = append(errs, fmt.Sprintf("chmod: cannot access '%s': %s", name, reason(err)))
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

func copyFile(src, dst string, preserve bool) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if preserve {
		return os.Chtimes(dst, time.Now(), info.ModTime())
	}
	return nil
}

func copyTree(src, dst string, preserve bool) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.Mkdir(dst, info.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		s := filepath.Join(src, entry.Name())
		d := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			err = copyTree(s, d, preserve)
		} else {
			err = copyFile(s, d, preserve)
		}
		if err != nil {
			return err
		}
	}

	if preserve {
		return os.Chtimes(dst, time.Now(), info.ModTime())
	}
	return nil
}

// rename falls back to copy and delete when the target sits on another
// filesystem.
func rename(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		err = copyTree(src, dst, true)
	} else {
		err = copyFile(src, dst, true)
	}
	if err != nil {
		return err
	}
	return os.RemoveAll(src)
}
