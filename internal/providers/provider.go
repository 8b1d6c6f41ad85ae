package providers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Adi-aygd/nlterm/internal/shared/types"
)

// Provider interface for command implementations
type Provider interface {
	Definition() types.Capability
	Execute(ctx context.Context, cmd string, args []string, cwd string) (*types.Result, error)
}

// Registry maps command names to the provider that serves them
type Registry struct {
	providers sync.Map // capability ID -> Provider
	commands  sync.Map // command name -> Provider
}

// NewRegistry creates an empty command registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a provider and claims every command it declares. It fails
// when the capability ID is empty, the provider declares no commands, or a
// command name is already claimed. A failed registration leaves the
// registry unchanged.
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("capability ID cannot be empty")
	}
	if len(def.Commands) == 0 {
		return fmt.Errorf("capability %s declares no commands", def.ID)
	}

	claimed := make([]string, 0, len(def.Commands))
	release := func() {
		for _, name := range claimed {
			r.commands.Delete(name)
		}
	}

	for _, cmd := range def.Commands {
		if cmd.Name == "" {
			release()
			return fmt.Errorf("capability %s declares a command with no name", def.ID)
		}
		if existing, loaded := r.commands.LoadOrStore(cmd.Name, provider); loaded {
			release()
			owner := existing.(Provider).Definition().ID
			return fmt.Errorf("command %s already registered by %s", cmd.Name, owner)
		}
		claimed = append(claimed, cmd.Name)
	}

	r.providers.Store(def.ID, provider)
	return nil
}

// Unregister removes a provider and releases its commands
func (r *Registry) Unregister(capabilityID string) {
	val, ok := r.providers.LoadAndDelete(capabilityID)
	if !ok {
		return
	}
	def := val.(Provider).Definition()
	for _, cmd := range def.Commands {
		r.commands.Delete(cmd.Name)
	}
}

// Lookup returns the provider that serves a command
func (r *Registry) Lookup(cmd string) (Provider, bool) {
	val, ok := r.commands.Load(cmd)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// Has reports whether a command is registered
func (r *Registry) Has(cmd string) bool {
	_, ok := r.commands.Load(cmd)
	return ok
}

// Commands returns every registered command name, sorted
func (r *Registry) Commands() []string {
	var names []string
	r.commands.Range(func(key, _ interface{}) bool {
		names = append(names, key.(string))
		return true
	})
	sort.Strings(names)
	return names
}

// Capabilities returns all provider definitions sorted by ID
func (r *Registry) Capabilities() []types.Capability {
	var caps []types.Capability
	r.providers.Range(func(_, value interface{}) bool {
		caps = append(caps, value.(Provider).Definition())
		return true
	})
	sort.Slice(caps, func(i, j int) bool {
		return caps[i].ID < caps[j].ID
	})
	return caps
}

// Execute dispatches a command to its provider
func (r *Registry) Execute(ctx context.Context, cmd string, args []string, cwd string) (*types.Result, error) {
	provider, ok := r.Lookup(cmd)
	if !ok {
		return &types.Result{
			Output:   fmt.Sprintf("%s: command not found", cmd),
			ExitCode: 127,
			Kind:     types.KindUnknownCommand,
		}, fmt.Errorf("command not found: %s", cmd)
	}
	return provider.Execute(ctx, cmd, args, cwd)
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var totalProviders, totalCommands int
	perCapability := make(map[string]int)

	r.providers.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		totalProviders++
		totalCommands += len(def.Commands)
		perCapability[def.ID] = len(def.Commands)
		return true
	})

	return map[string]interface{}{
		"total_providers": totalProviders,
		"total_commands":  totalCommands,
		"capabilities":    perCapability,
	}
}
