package filesystem

import (
	"context"
	"fmt"

	"github.com/Adi-aygd/nlterm/internal/sandbox"
	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// Provider implements the filesystem command group.
type Provider struct {
	dirs     *DirectoryOps
	basic    *BasicOps
	files    *OperationsOps
	meta     *MetadataOps
	search   *SearchOps
	archives *ArchivesOps
}

// NewProvider creates a filesystem provider confined by the resolver.
func NewProvider(res *sandbox.Resolver) *Provider {
	ops := &FilesystemOps{Resolver: res}
	return &Provider{
		dirs:     &DirectoryOps{FilesystemOps: ops},
		basic:    &BasicOps{FilesystemOps: ops},
		files:    &OperationsOps{FilesystemOps: ops},
		meta:     &MetadataOps{FilesystemOps: ops},
		search:   &SearchOps{FilesystemOps: ops},
		archives: &ArchivesOps{FilesystemOps: ops},
	}
}

// Definition returns capability metadata and command specs
func (p *Provider) Definition() types.Capability {
	return types.Capability{
		ID:          "filesystem",
		Name:        "Filesystem",
		Description: "File and directory commands scoped to the session working directory",
		Commands: []types.CommandSpec{
			{Name: "ls", Usage: "ls [-a -l -h] [path...]", Description: "List directory contents"},
			{Name: "mkdir", Usage: "mkdir [-p] directory...", Description: "Create directories"},
			{Name: "rmdir", Usage: "rmdir directory...", Description: "Remove empty directories"},
			{Name: "rm", Usage: "rm [-r -f] path...", Description: "Remove files or directories"},
			{Name: "cp", Usage: "cp [-r -p] source... dest", Description: "Copy files or directories"},
			{Name: "mv", Usage: "mv source... dest", Description: "Move or rename files"},
			{Name: "cat", Usage: "cat file...", Description: "Print file contents"},
			{Name: "touch", Usage: "touch file...", Description: "Create files or update timestamps"},
			{Name: "find", Usage: "find path [pattern]", Description: "Find files by glob pattern"},
			{Name: "chmod", Usage: "chmod mode path...", Description: "Change file permissions"},
			{Name: "stat", Usage: "stat path", Description: "Show file status"},
			{Name: "head", Usage: "head [-n N] file...", Description: "Print the first lines of files"},
			{Name: "tail", Usage: "tail [-n N] file...", Description: "Print the last lines of files"},
			{Name: "wc", Usage: "wc [-l -w -c] file...", Description: "Count lines, words and characters"},
			{Name: "zip", Usage: "zip archive source...", Description: "Create a zip or tar.gz archive"},
			{Name: "unzip", Usage: "unzip archive [dest]", Description: "Extract a zip or tar.gz archive"},
		},
	}
}

// Execute runs one filesystem command against the working directory
func (p *Provider) Execute(ctx context.Context, cmd string, args []string, cwd string) (*types.Result, error) {
	switch cmd {
	case "ls":
		return p.dirs.List(args, cwd)
	case "mkdir":
		return p.dirs.Create(args, cwd)
	case "rmdir":
		return p.dirs.Remove(args, cwd)
	case "rm":
		return p.files.Remove(args, cwd)
	case "cp":
		return p.files.Copy(args, cwd)
	case "mv":
		return p.files.Move(args, cwd)
	case "chmod":
		return p.files.Chmod(args, cwd)
	case "cat":
		return p.basic.Cat(args, cwd)
	case "touch":
		return p.basic.Touch(args, cwd)
	case "head":
		return p.basic.Head(args, cwd)
	case "tail":
		return p.basic.Tail(args, cwd)
	case "wc":
		return p.basic.Count(args, cwd)
	case "find":
		return p.search.Find(ctx, args, cwd)
	case "stat":
		return p.meta.Stat(args, cwd)
	case "zip":
		return p.archives.Create(ctx, args, cwd)
	case "unzip":
		return p.archives.Extract(ctx, args, cwd)
	default:
		return Failure(fmt.Sprintf("Unknown file operation: %s", cmd), types.KindUnknownCommand)
	}
}
