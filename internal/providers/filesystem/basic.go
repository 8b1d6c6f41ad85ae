package filesystem

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// BasicOps handles file content commands
type BasicOps struct {
	*FilesystemOps
}

// Cat implements cat. The first unreadable file aborts the command.
func (b *BasicOps) Cat(args []string, cwd string) (*types.Result, error) {
	if len(args) == 0 {
		return Failure("cat: missing file operand", types.KindInvalidArguments)
	}

	var out strings.Builder
	for _, name := range args {
		if strings.HasPrefix(name, "-") {
			continue
		}

		target, err := b.resolve(cwd, name)
		if err != nil {
			return sandboxFailure("cat", name)
		}

		info, err := os.Stat(target)
		if err != nil {
			return Failure(fmt.Sprintf("cat: %s: %s", name, reason(err)), kindFor(err))
		}
		if info.IsDir() {
			return Failure(fmt.Sprintf("cat: %s: Is a directory", name), types.KindInvalidArguments)
		}

		data, err := os.ReadFile(target)
		if err != nil {
			return Failure(fmt.Sprintf("cat: %s: %s", name, reason(err)), kindFor(err))
		}
		if !utf8.Valid(data) {
			return Failure(fmt.Sprintf("cat: %s: Binary file", name), types.KindInvalidArguments)
		}
		out.Write(data)
	}

	return Success(out.String())
}

// Touch implements touch: create missing files, refresh timestamps on
// existing ones.
func (b *BasicOps) Touch(args []string, cwd string) (*types.Result, error) {
	if len(args) == 0 {
		return Failure("touch: missing file operand", types.KindInvalidArguments)
	}

	for _, name := range args {
		if strings.HasPrefix(name, "-") {
			continue
		}

		target, err := b.resolve(cwd, name)
		if err != nil {
			return sandboxFailure("touch", name)
		}

		now := time.Now()
		if err := os.Chtimes(target, now, now); err != nil {
			if !os.IsNotExist(err) {
				return Failure(fmt.Sprintf("touch: cannot touch '%s': %s", name, reason(err)), kindFor(err))
			}
			f, err := os.Create(target)
			if err != nil {
				return Failure(fmt.Sprintf("touch: cannot touch '%s': %s", name, reason(err)), kindFor(err))
			}
			f.Close()
		}
	}

	return Success("")
}

// Head implements head.
func (b *BasicOps) Head(args []string, cwd string) (*types.Result, error) {
	n, files, res := parseLineCount("head", args)
	if res != nil {
		return res, nil
	}
	if len(files) == 0 {
		return Failure("head: missing file operand", types.KindInvalidArguments)
	}

	var out []string
	for _, name := range files {
		lines, failRes := b.readLines("head", name, cwd)
		if failRes != nil {
			return failRes, nil
		}
		out = append(out, headSlice(lines, n)...)
	}

	return Success(strings.TrimRight(strings.Join(out, ""), "\n"))
}

// Tail implements tail.
func (b *BasicOps) Tail(args []string, cwd string) (*types.Result, error) {
	n, files, res := parseLineCount("tail", args)
	if res != nil {
		return res, nil
	}
	if len(files) == 0 {
		return Failure("tail: missing file operand", types.KindInvalidArguments)
	}

	var out []string
	for _, name := range files {
		lines, failRes := b.readLines("tail", name, cwd)
		if failRes != nil {
			return failRes, nil
		}
		out = append(out, tailSlice(lines, n)...)
	}

	return Success(strings.TrimRight(strings.Join(out, ""), "\n"))
}

// Count implements wc. The flags are exclusive; the last dash group wins
// one counter, no flags means all three.
func (b *BasicOps) Count(args []string, cwd string) (*types.Result, error) {
	if len(args) == 0 {
		return Failure("wc: missing file operand", types.KindInvalidArguments)
	}

	showLines, showWords, showChars := true, true, true
	var files []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			switch {
			case strings.Contains(arg, "l"):
				showLines, showWords, showChars = true, false, false
			case strings.Contains(arg, "w"):
				showLines, showWords, showChars = false, true, false
			case strings.Contains(arg, "c"):
				showLines, showWords, showChars = false, false, true
			}
		} else {
			files = append(files, arg)
		}
	}
	if len(files) == 0 {
		return Failure("wc: missing file operand", types.KindInvalidArguments)
	}

	var out []string
	for _, name := range files {
		target, err := b.resolve(cwd, name)
		if err != nil {
			return sandboxFailure("wc", name)
		}

		data, err := os.ReadFile(target)
		if err != nil {
			return Failure(fmt.Sprintf("wc: %s: %s", name, reason(err)), kindFor(err))
		}
		content := string(data)

		var fields []string
		if showLines {
			fields = append(fields, strconv.Itoa(strings.Count(content, "\n")))
		}
		if showWords {
			fields = append(fields, strconv.Itoa(len(strings.Fields(content))))
		}
		if showChars {
			fields = append(fields, strconv.Itoa(utf8.RuneCountInString(content)))
		}
		fields = append(fields, name)
		out = append(out, strings.Join(fields, " "))
	}

	return Success(strings.Join(out, "\n"))
}

// parseLineCount handles the -n N and -N forms shared by head and tail.
func parseLineCount(cmd string, args []string) (int, []string, *types.Result) {
	n := 10
	var files []string

	for i := 0; i < len(args); {
		arg := args[i]
		switch {
		case arg == "-n" && i+1 < len(args):
			parsed, err := strconv.Atoi(args[i+1])
			if err != nil {
				res, _ := Failure(fmt.Sprintf("%s: invalid number of lines: '%s'", cmd, args[i+1]), types.KindInvalidArguments)
				return 0, nil, res
			}
			n = parsed
			i += 2
		case len(arg) > 1 && arg[0] == '-' && isDigits(arg[1:]):
			n, _ = strconv.Atoi(arg[1:])
			i++
		default:
			files = append(files, arg)
			i++
		}
	}

	return n, files, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// readLines returns a file split into lines with their newlines kept.
func (b *BasicOps) readLines(cmd, name, cwd string) ([]string, *types.Result) {
	target, err := b.resolve(cwd, name)
	if err != nil {
		res, _ := sandboxFailure(cmd, name)
		return nil, res
	}

	data, err := os.ReadFile(target)
	if err != nil {
		res, _ := Failure(fmt.Sprintf("%s: cannot open '%s' for reading: %s", cmd, name, reason(err)), kindFor(err))
		return nil, res
	}

	return strings.SplitAfter(string(data), "\n"), nil
}

// headSlice keeps the first n lines; a negative n drops the last -n.
func headSlice(lines []string, n int) []string {
	lines = trimEmptyTail(lines)
	if n >= 0 {
		if n > len(lines) {
			n = len(lines)
		}
		return lines[:n]
	}
	keep := len(lines) + n
	if keep < 0 {
		keep = 0
	}
	return lines[:keep]
}

// tailSlice keeps the last n lines; a negative n drops the first -n.
func tailSlice(lines []string, n int) []string {
	lines = trimEmptyTail(lines)
	if n >= 0 {
		if n > len(lines) {
			n = len(lines)
		}
		return lines[len(lines)-n:]
	}
	drop := -n
	if drop > len(lines) {
		drop = len(lines)
	}
	return lines[drop:]
}

// trimEmptyTail drops the empty slot SplitAfter leaves after a trailing
// newline.
func trimEmptyTail(lines []string) []string {
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	return lines
}
