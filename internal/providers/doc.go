// Package providers implements the command registry and its providers.
//
// A provider bundles a group of related shell commands behind one
// implementation. The registry maps each command name to the provider
// that claims it, so the engine can dispatch a parsed invocation without
// knowing which provider owns which command.
//
// Available Providers:
//   - Filesystem: files, directories, search, archives
//   - Monitor: processes, resource usage, system identity
//
// Provider Interface:
//   - Definition(): Returns capability metadata and command specs
//   - Execute(): Runs one command against a working directory
//
// All providers receive the session working directory explicitly and
// never touch process-global state such as os.Chdir.
//
// Example Usage:
//
//	registry := providers.NewRegistry()
//	registry.Register(filesystem.NewProvider(resolver))
//	result, err := registry.Execute(ctx, "ls", []string{"-la"}, "/home/user")
package providers
