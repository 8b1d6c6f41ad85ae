package filesystem

import (
	"archive/tar"
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/klauspost/compress/gzip"

	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// ArchivesOps handles archive commands
type ArchivesOps struct {
	*FilesystemOps
}

type archiveEntry struct {
	path string // absolute source path
	name string // name inside the archive
	dir  bool
}

func isTarball(name string) bool {
	return strings.HasSuffix(name, ".tar.gz") || strings.HasSuffix(name, ".tgz")
}

// Create implements zip. A .tar.gz or .tgz archive name builds a gzipped
// tarball, anything else a zip file. Directories are archived recursively
// under their base name.
func (a *ArchivesOps) Create(ctx context.Context, args []string, cwd string) (*types.Result, error) {
	if len(args) == 0 {
		return Failure("zip: missing archive operand", types.KindInvalidArguments)
	}
	if len(args) < 2 {
		return Failure("zip: missing source operand", types.KindInvalidArguments)
	}

	archiveArg := args[0]
	sources := args[1:]

	archivePath, err := a.resolve(cwd, archiveArg)
	if err != nil {
		return sandboxFailure("zip", archiveArg)
	}

	var entries []archiveEntry
	for _, src := range sources {
		srcPath, err := a.resolve(cwd, src)
		if err != nil {
			return sandboxFailure("zip", src)
		}
		info, err := os.Stat(srcPath)
		if err != nil {
			return Failure(fmt.Sprintf("zip: cannot stat '%s': %s", src, reason(err)), kindFor(err))
		}

		base := filepath.Base(srcPath)
		if !info.IsDir() {
			entries = append(entries, archiveEntry{path: srcPath, name: base})
			continue
		}
		sub, err := collectTree(ctx, srcPath, base)
		if err != nil {
			return Failure(fmt.Sprintf("zip: %s", err), types.KindInvalidArguments)
		}
		entries = append(entries, sub...)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	if isTarball(archiveArg) {
		if err := writeTarball(archivePath, entries); err != nil {
			return Failure(fmt.Sprintf("zip: %s", reason(err)), kindFor(err))
		}
		return Success("")
	}

	added, err := writeZip(archivePath, entries)
	if err != nil {
		return Failure(fmt.Sprintf("zip: %s", reason(err)), kindFor(err))
	}
	return Success(strings.Join(added, "\n"))
}

// Extract implements unzip for both zip files and gzipped tarballs.
func (a *ArchivesOps) Extract(ctx context.Context, args []string, cwd string) (*types.Result, error) {
	if len(args) == 0 {
		return Failure("unzip: missing archive operand", types.KindInvalidArguments)
	}

	archiveArg := args[0]
	destArg := "."
	if len(args) > 1 {
		destArg = args[1]
	}

	archivePath, err := a.resolve(cwd, archiveArg)
	if err != nil {
		return sandboxFailure("unzip", archiveArg)
	}
	destPath, err := a.resolve(cwd, destArg)
	if err != nil {
		return sandboxFailure("unzip", destArg)
	}

	if _, err := os.Stat(archivePath); err != nil {
		return Failure(fmt.Sprintf("unzip: cannot find or open '%s': %s", archiveArg, reason(err)), kindFor(err))
	}
	if err := os.MkdirAll(destPath, 0755); err != nil {
		return Failure(fmt.Sprintf("unzip: cannot create destination '%s': %s", destArg, reason(err)), kindFor(err))
	}

	var lines []string
	var extractErr error
	if isTarball(archiveArg) {
		lines, extractErr = extractTarball(ctx, archivePath, destPath)
	} else {
		lines, extractErr = extractZip(ctx, archivePath, destPath)
	}
	if extractErr != nil {
		switch {
		case errors.Is(extractErr, errEscapesDest):
			return Failure(fmt.Sprintf("unzip: %s", extractErr), types.KindPathOutsideSandbox)
		case errors.Is(extractErr, zip.ErrFormat) || errors.Is(extractErr, gzip.ErrHeader):
			return Failure(fmt.Sprintf("unzip: %s: not a valid archive", archiveArg), types.KindInvalidArguments)
		default:
			return Failure(fmt.Sprintf("unzip: %s", reason(extractErr)), kindFor(extractErr))
		}
	}

	out := append([]string{fmt.Sprintf("Archive:  %s", archiveArg)}, lines...)
	return Success(strings.Join(out, "\n"))
}

// collectTree gathers a directory's contents with archive names rooted at
// prefix.
func collectTree(ctx context.Context, root, prefix string) ([]archiveEntry, error) {
	entries := []archiveEntry{{path: root, name: prefix, dir: true}}

	// fastwalk runs the callback from multiple goroutines.
	var mu sync.Mutex
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || p == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		mu.Lock()
		entries = append(entries, archiveEntry{path: p, name: filepath.Join(prefix, rel), dir: d.IsDir()})
		mu.Unlock()
		return nil
	})
	return entries, err
}

func writeZip(archivePath string, entries []archiveEntry) ([]string, error) {
	out, err := os.Create(archivePath)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	w := zip.NewWriter(out)
	defer w.Close()

	var added []string
	for _, e := range entries {
		if e.dir {
			if _, err := w.Create(e.name + "/"); err != nil {
				return nil, err
			}
			added = append(added, "  adding: "+e.name+"/")
			continue
		}

		dst, err := w.Create(e.name)
		if err != nil {
			return nil, err
		}
		src, err := os.Open(e.path)
		if err != nil {
			return nil, err
		}
		_, err = io.Copy(dst, src)
		src.Close()
		if err != nil {
			return nil, err
		}
		added = append(added, "  adding: "+e.name)
	}

	return added, w.Close()
}

func writeTarball(archivePath string, entries []archiveEntry) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer out.Close()

	gzw := gzip.NewWriter(out)
	defer gzw.Close()

	tw := tar.NewWriter(gzw)
	defer tw.Close()

	for _, e := range entries {
		info, err := os.Lstat(e.path)
		if err != nil {
			return err
		}
		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = e.name
		if e.dir {
			header.Name += "/"
		}
		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		if !e.dir && info.Mode().IsRegular() {
			src, err := os.Open(e.path)
			if err != nil {
				return err
			}
			_, err = io.Copy(tw, src)
			src.Close()
			if err != nil {
				return err
			}
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return gzw.Close()
}

func extractZip(ctx context.Context, archivePath, destPath string) ([]string, error) {
	// ErrInsecurePath is fine here: entryTarget rejects escaping names.
	r, err := zip.OpenReader(archivePath)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, err
	}
	defer r.Close()

	var lines []string
	for _, f := range r.File {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		target, err := entryTarget(destPath, f.Name)
		if err != nil {
			return nil, err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return nil, err
			}
			lines = append(lines, "   creating: "+f.Name)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return nil, err
		}
		src, err := f.Open()
		if err != nil {
			return nil, err
		}
		err = writeEntry(target, src, f.Mode().Perm())
		src.Close()
		if err != nil {
			return nil, err
		}
		lines = append(lines, "  inflating: "+f.Name)
	}

	return lines, nil
}

func extractTarball(ctx context.Context, archivePath, destPath string) ([]string, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	gzr, err := gzip.NewReader(file)
	if err != nil {
		return nil, err
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	var lines []string
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil && !errors.Is(err, tar.ErrInsecurePath) {
			return nil, err
		}

		target, err := entryTarget(destPath, header.Name)
		if err != nil {
			return nil, err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return nil, err
			}
			lines = append(lines, "   creating: "+header.Name)
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return nil, err
			}
			if err := writeEntry(target, tr, os.FileMode(header.Mode).Perm()); err != nil {
				return nil, err
			}
			lines = append(lines, "  inflating: "+header.Name)
		}
	}

	return lines, nil
}

var errEscapesDest = errors.New("entry escapes the destination")

// entryTarget joins an archive entry name under dest and rejects names
// that climb out of it.
func entryTarget(destPath, name string) (string, error) {
	target := filepath.Join(destPath, name)
	if !strings.HasPrefix(target, filepath.Clean(destPath)+string(os.PathSeparator)) {
		return "", fmt.Errorf("entry '%s': %w", name, errEscapesDest)
	}
	return target, nil
}

func writeEntry(target string, src io.Reader, perm os.FileMode) error {
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
