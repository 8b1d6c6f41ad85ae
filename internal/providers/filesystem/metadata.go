package filesystem

import (
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// MetadataOps handles file status commands
type MetadataOps struct {
	*FilesystemOps
}

const ctimeLayout = "Mon Jan  2 15:04:05 2006"

// Stat implements stat. Regular files get a trailing Type line with the
// detected MIME type.
func (m *MetadataOps) Stat(args []string, cwd string) (*types.Result, error) {
	if len(args) == 0 {
		return Failure("stat: missing operand", types.KindInvalidArguments)
	}

	name := args[0]
	target, err := m.resolve(cwd, name)
	if err != nil {
		return sandboxFailure("stat", name)
	}

	info, err := os.Stat(target)
	if err != nil {
		return Failure(fmt.Sprintf("stat: cannot stat '%s': %s", name, reason(err)), kindFor(err))
	}

	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return Failure(fmt.Sprintf("stat: cannot stat '%s': unsupported platform", name), types.KindInvalidArguments)
	}

	lines := []string{
		fmt.Sprintf("File: %s", name),
		fmt.Sprintf("Size: %d", info.Size()),
		fmt.Sprintf("Blocks: %d", st.Blocks),
		fmt.Sprintf("Device: %d", st.Dev),
		fmt.Sprintf("Inode: %d", st.Ino),
		fmt.Sprintf("Links: %d", st.Nlink),
		fmt.Sprintf("Access: 0o%o", st.Mode),
		fmt.Sprintf("Uid: %d", st.Uid),
		fmt.Sprintf("Gid: %d", st.Gid),
		fmt.Sprintf("Access Time: %s", timespecTime(st.Atim).Format(ctimeLayout)),
		fmt.Sprintf("Modify Time: %s", timespecTime(st.Mtim).Format(ctimeLayout)),
		fmt.Sprintf("Change Time: %s", timespecTime(st.Ctim).Format(ctimeLayout)),
	}

	if info.Mode().IsRegular() {
		if mt, err := mimetype.DetectFile(target); err == nil {
			lines = append(lines, fmt.Sprintf("Type: %s", mt.String()))
		}
	}

	return Success(strings.Join(lines, "\n"))
}

func timespecTime(ts syscall.Timespec) time.Time {
	return time.Unix(int64(ts.Sec), int64(ts.Nsec))
}
