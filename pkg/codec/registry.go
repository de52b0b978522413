package codec

import (
	"fmt"
	"sort"

	"github.com/ssargent/stylegraph/pkg/guid"
)

// Registry maps class identifiers to decoder factories, plus a catalog of
// identifiers that name real types without a decoder.
//
// A Registry is filled once during initialisation and then sealed. After Seal
// it is read-only and may be shared by any number of concurrent decode
// sessions without locking.
type Registry struct {
	factories   map[guid.GUID]entry
	unsupported map[guid.GUID]string
	sealed      bool
}

type entry struct {
	name    string
	factory Factory
}

// ClassInfo describes one identifier known to a Registry.
type ClassInfo struct {
	ID        guid.GUID `json:"id"`
	Wire      string    `json:"wire"`
	Name      string    `json:"name"`
	Supported bool      `json:"supported"`
	Versions  []int     `json:"versions,omitempty"`
}

// NewRegistry creates an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{
		factories:   make(map[guid.GUID]entry),
		unsupported: make(map[guid.GUID]string),
	}
}

// Register adds a decoder factory for id. Duplicate identifiers, the null
// identifier, identifiers already in the unsupported catalog, and factories
// whose instances report a different ClassID are rejected.
func (r *Registry) Register(id guid.GUID, f Factory) error {
	if r.sealed {
		return ErrRegistrySealed
	}
	if id.IsNull() {
		return ErrNullID
	}
	if f == nil {
		return fmt.Errorf("codec: nil factory for %s", id)
	}
	if _, ok := r.factories[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	if name, ok := r.unsupported[id]; ok {
		return fmt.Errorf("%w: %s is catalogued as unsupported %s", ErrDuplicateID, id, name)
	}
	sample := f()
	if sample == nil {
		return fmt.Errorf("codec: factory for %s returned nil", id)
	}
	if sample.ClassID() != id {
		return fmt.Errorf("codec: factory for %s builds %s (%s)", id, sample.ClassName(), sample.ClassID())
	}
	r.factories[id] = entry{name: sample.ClassName(), factory: f}
	return nil
}

// RegisterUnsupported catalogues id as a known type that has no decoder.
func (r *Registry) RegisterUnsupported(id guid.GUID, name string) error {
	if r.sealed {
		return ErrRegistrySealed
	}
	if id.IsNull() {
		return ErrNullID
	}
	if _, ok := r.factories[id]; ok {
		return fmt.Errorf("%w: %s already has a decoder", ErrDuplicateID, id)
	}
	if _, ok := r.unsupported[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	r.unsupported[id] = name
	return nil
}

// Seal ends the registration phase.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Create returns a new, empty instance for id. The null identifier yields
// (nil, nil): it means "no object" and is never an error.
func (r *Registry) Create(id guid.GUID) (Object, error) {
	if id.IsNull() {
		return nil, nil
	}
	if name, ok := r.unsupported[id]; ok {
		return nil, &UnsupportedError{ID: id, Name: name}
	}
	e, ok := r.factories[id]
	if !ok {
		return nil, &UnknownIDError{ID: id}
	}
	return e.factory(), nil
}

// Lookup describes id if the registry knows it.
func (r *Registry) Lookup(id guid.GUID) (ClassInfo, bool) {
	if e, ok := r.factories[id]; ok {
		return ClassInfo{
			ID:        id,
			Wire:      id.WireHex(),
			Name:      e.name,
			Supported: true,
			Versions:  e.factory().CompatibleVersions(),
		}, true
	}
	if name, ok := r.unsupported[id]; ok {
		return ClassInfo{ID: id, Wire: id.WireHex(), Name: name}, true
	}
	return ClassInfo{}, false
}

// Classes lists every known identifier, supported ones first, each group
// sorted by name.
func (r *Registry) Classes() []ClassInfo {
	out := make([]ClassInfo, 0, len(r.factories)+len(r.unsupported))
	for id := range r.factories {
		info, _ := r.Lookup(id)
		out = append(out, info)
	}
	for id := range r.unsupported {
		info, _ := r.Lookup(id)
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Supported != out[j].Supported {
			return out[i].Supported
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Len returns the number of registered decoders.
func (r *Registry) Len() int {
	return len(r.factories)
}

// UnsupportedLen returns the number of catalogued identifiers.
func (r *Registry) UnsupportedLen() int {
	return len(r.unsupported)
}
