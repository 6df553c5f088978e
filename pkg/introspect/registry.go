package introspect

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-resourcegen/pkg/config"
)

// Registry stores dialects by name.
type Registry struct {
	mu       sync.RWMutex
	dialects map[string]Dialect
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{dialects: make(map[string]Dialect)}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared registry preloaded with the MySQL,
// PostgreSQL and SQLite dialects.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		defaultRegistry.MustRegister(MySQL{})
		defaultRegistry.MustRegister(Postgres{})
		defaultRegistry.MustRegister(SQLite{})
	})
	return defaultRegistry
}

// Register adds a dialect by its Name(). Duplicate names return an error.
func (r *Registry) Register(dialect Dialect) error {
	if dialect == nil {
		return fmt.Errorf("introspect: dialect is required")
	}
	name := config.NormalizeDriver(dialect.Name())
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dialects[name]; exists {
		return fmt.Errorf("introspect: dialect %q already registered", name)
	}
	r.dialects[name] = dialect
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(dialect Dialect) {
	if err := r.Register(dialect); err != nil {
		panic(err)
	}
}

// Get retrieves a dialect by driver name or alias.
func (r *Registry) Get(driver string) (Dialect, error) {
	name := config.NormalizeDriver(driver)
	r.mu.RLock()
	defer r.mu.RUnlock()

	dialect, ok := r.dialects[name]
	if !ok {
		return nil, fmt.Errorf("%w: no dialect for driver %q", ErrUnavailable, name)
	}
	return dialect, nil
}

// List returns the registered dialect names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.dialects))
	for name := range r.dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
