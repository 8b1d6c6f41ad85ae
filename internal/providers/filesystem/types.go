package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	"github.com/Adi-aygd/nlterm/internal/sandbox"
	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// FilesystemOps provides common helpers shared by the command groups
type FilesystemOps struct {
	Resolver *sandbox.Resolver
}

// resolve maps a user path against the working directory and the sandbox
// root.
func (ops *FilesystemOps) resolve(cwd, path string) (string, error) {
	return ops.Resolver.Resolve(cwd, path)
}

// Success helper
func Success(output string) (*types.Result, error) {
	return &types.Result{Output: output}, nil
}

// Failure helper
func Failure(message string, kind types.ErrorKind) (*types.Result, error) {
	return &types.Result{Output: message, ExitCode: 1, Kind: kind}, nil
}

// sandboxFailure reports a path that resolved outside the sandbox root.
func sandboxFailure(cmd, path string) (*types.Result, error) {
	return Failure(fmt.Sprintf("%s: %s: Outside sandbox root", cmd, path), types.KindPathOutsideSandbox)
}

// kindFor maps operating system errors onto the result taxonomy.
func kindFor(err error) types.ErrorKind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return types.KindNotFound
	case errors.Is(err, fs.ErrExist):
		return types.KindAlreadyExists
	case errors.Is(err, fs.ErrPermission):
		return types.KindPermissionDenied
	case errors.Is(err, syscall.ENOTEMPTY):
		return types.KindNotEmpty
	default:
		return types.KindInvalidArguments
	}
}

// reason renders an OS error the way shell one-liners spell it.
func reason(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "No such file or directory"
	case errors.Is(err, fs.ErrExist):
		return "File exists"
	case errors.Is(err, fs.ErrPermission):
		return "Permission denied"
	case errors.Is(err, syscall.ENOTEMPTY):
		return "Directory not empty"
	case errors.Is(err, syscall.ENOTDIR):
		return "Not a directory"
	case errors.Is(err, syscall.EISDIR):
		return "Is a directory"
	default:
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return pathErr.Err.Error()
		}
		return err.Error()
	}
}
