package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"

	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// SearchOps handles recursive search commands
type SearchOps struct {
	*FilesystemOps
}

// Find implements find. The pattern matches entry base names; a pattern
// containing a slash or a ** segment matches against the path relative to
// the search root instead. Hidden entries stay out unless the pattern
// itself starts with a dot.
func (s *SearchOps) Find(ctx context.Context, args []string, cwd string) (*types.Result, error) {
	if len(args) == 0 {
		return Failure("find: missing search path", types.KindInvalidArguments)
	}

	pathArg := args[0]
	pattern := "*"
	if len(args) > 1 {
		pattern = args[1]
	}

	root, err := s.resolve(cwd, pathArg)
	if err != nil {
		return sandboxFailure("find", pathArg)
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return Failure(fmt.Sprintf("find: '%s': No such file or directory", pathArg), types.KindNotFound)
	}

	if !doublestar.ValidatePattern(pattern) {
		return Failure(fmt.Sprintf("find: invalid pattern: '%s'", pattern), types.KindInvalidArguments)
	}

	deep := strings.Contains(pattern, "/") || strings.Contains(pattern, "**")

	// fastwalk runs the callback from multiple goroutines.
	var mu sync.Mutex
	var matches []string

	conf := fastwalk.Config{Follow: false}
	walkErr := fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || p == root {
			return nil
		}

		base := filepath.Base(p)
		if strings.HasPrefix(base, ".") && !strings.HasPrefix(pattern, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		subject := base
		if deep {
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				return nil
			}
			subject = rel
		}

		if matched, _ := doublestar.Match(pattern, subject); matched {
			mu.Lock()
			matches = append(matches, p)
			mu.Unlock()
		}
		return nil
	})
	if walkErr != nil {
		return Failure(fmt.Sprintf("find: %s", walkErr), types.KindInvalidArguments)
	}

	sort.Strings(matches)
	return Success(strings.Join(matches, "\n"))
}
