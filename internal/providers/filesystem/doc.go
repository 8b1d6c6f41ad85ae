// Package filesystem provides the file and directory commands.
//
// This package is organized into specialized modules:
//   - directory: listing and directory lifecycle (ls, mkdir, rmdir)
//   - basic: file content commands (cat, touch, head, tail, wc)
//   - operations: file manipulation (rm, cp, mv, chmod)
//   - metadata: file status (stat)
//   - search: recursive glob search (find)
//   - archives: archive commands (zip, unzip for .zip and .tar.gz)
//
// All operations:
//   - Resolve paths against the session working directory
//   - Respect the sandbox root when confinement is enabled
//   - Emit GNU-style one-line error messages with taxonomy kinds
//
// Example Usage:
//
//	p := filesystem.NewProvider(resolver)
//	result, err := p.Execute(ctx, "ls", []string{"-la"}, "/home/user")
package filesystem
