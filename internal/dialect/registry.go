package dialect

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/smaspe/kafka-connect-jdbc-exasol/internal/config"
)

// Provider creates dialect instances for a named dialect and claims the URL
// subprotocols it serves.
type Provider interface {
	// Name returns the dialect name, e.g. "exasol".
	Name() string

	// Subprotocols returns the connection URL subprotocols this dialect
	// serves, e.g. ["exa"].
	Subprotocols() []string

	// Create builds a dialect instance for the given configuration.
	Create(cfg *config.Config) (Dialect, error)
}

var (
	registryMu    sync.RWMutex
	providers     = make(map[string]Provider)
	bySubprotocol = make(map[string]Provider)
)

// Register adds a provider to the global registry. It is typically called
// from a dialect package's init function. Panics if the name or any
// subprotocol is already claimed.
func Register(p Provider) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := strings.ToLower(p.Name())
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("dialect %q already registered", name))
	}
	providers[name] = p

	for _, sub := range p.Subprotocols() {
		sub = strings.ToLower(sub)
		if _, exists := bySubprotocol[sub]; exists {
			panic(fmt.Sprintf("subprotocol %q already registered", sub))
		}
		bySubprotocol[sub] = p
	}
}

// Get retrieves a provider by dialect name (case-insensitive).
func Get(name string) (Provider, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	p, exists := providers[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownDialect, name, availableLocked())
	}
	return p, nil
}

// ForURL retrieves the provider that claims the URL's subprotocol. When no
// provider claims it, the provider registered as "generic" serves as the
// fallback.
func ForURL(url string) (Provider, error) {
	sub := Subprotocol(url)

	registryMu.RLock()
	defer registryMu.RUnlock()

	if p, exists := bySubprotocol[sub]; exists {
		return p, nil
	}
	if p, exists := providers["generic"]; exists {
		return p, nil
	}
	return nil, fmt.Errorf("%w: no dialect for subprotocol %q", ErrUnknownDialect, sub)
}

// ForConfig picks the provider named by the configuration's dialect override,
// falling back to matching the connection URL's subprotocol.
func ForConfig(cfg *config.Config) (Provider, error) {
	if cfg.Dialect != "" {
		return Get(cfg.Dialect)
	}
	return ForURL(cfg.ConnectionURL())
}

// Subprotocol extracts the lowercased subprotocol from a connection URL,
// accepting and stripping a leading "jdbc:" prefix. For "jdbc:exa:host:8563"
// and "exa://host:8563" it returns "exa".
func Subprotocol(url string) string {
	url = strings.TrimPrefix(strings.TrimSpace(url), "jdbc:")
	if i := strings.Index(url, ":"); i > 0 {
		return strings.ToLower(url[:i])
	}
	return ""
}

// Available returns the sorted names of registered dialects.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return availableLocked()
}

func availableLocked() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
