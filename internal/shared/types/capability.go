package types

// Capability describes a provider: identity, human-readable metadata, and
// the commands it serves. Registries index providers by command name.
type Capability struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Commands    []CommandSpec `json:"commands"`
}

// CommandSpec documents a single command exposed by a capability.
type CommandSpec struct {
	Name        string `json:"name"`
	Usage       string `json:"usage"`
	Description string `json:"description"`
}
