package formgraph

import (
	"sort"
	"strings"
)

// Registry is an immutable dotted-path-keyed table of boxed validators.
// It is built once per form configuration by a Builder, typically outlives
// many validation runs, and is safe for concurrent readers because nothing
// mutates it after Build.
type Registry struct {
	rootName string
	entries  map[string]*envelope
}

// RootName returns the root type name the registry was built against.
func (r *Registry) RootName() string {
	return r.rootName
}

// Len returns the number of registered paths.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Has reports whether a validator is registered at the given dotted path.
// Keys are case-sensitive.
func (r *Registry) Has(path string) bool {
	_, ok := r.lookup(path)
	return ok
}

// Paths returns every registered dotted path in sorted order.
func (r *Registry) Paths() []string {
	if r == nil {
		return nil
	}
	paths := make([]string, 0, len(r.entries))
	for k := range r.entries {
		paths = append(paths, k)
	}
	sort.Strings(paths)
	return paths
}

func (r *Registry) lookup(path string) (*envelope, bool) {
	if r == nil {
		return nil, false
	}
	env, ok := r.entries[path]
	return env, ok
}

// rewriteKey re-roots a sub-registry key under a parent member name. Only
// the first two segments survive: the first segment is replaced by parent
// and anything beyond the second segment is discarded. This matches the
// attach-time simplification for singly-nested registries; attaching a
// registry that itself nests deeper than one level loses the middle
// segments rather than re-deriving a full multi-level path.
func rewriteKey(parent, key string) string {
	parts := strings.Split(key, ".")
	if len(parts) == 1 {
		return JoinKey(parent, parts[0])
	}
	return JoinKey(parent, parts[1])
}
