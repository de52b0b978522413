package objects

import (
	"fmt"

	"github.com/ssargent/stylegraph/pkg/codec"
)

// Register adds every supported decoder and every catalogued identifier to
// reg. It does not seal reg, so callers may add their own types first.
func Register(reg *codec.Registry) error {
	for _, f := range Factories {
		id := f().ClassID()
		if err := reg.Register(id, f); err != nil {
			return fmt.Errorf("failed to register %s: %w", id, err)
		}
	}
	for _, e := range Catalog {
		if err := reg.RegisterUnsupported(e.ID, e.Name); err != nil {
			return fmt.Errorf("failed to catalogue %s (%s): %w", e.Name, e.ID, err)
		}
	}
	return nil
}

// NewRegistry returns a sealed registry holding every known class.
func NewRegistry() (*codec.Registry, error) {
	reg := codec.NewRegistry()
	if err := Register(reg); err != nil {
		return nil, err
	}
	reg.Seal()
	return reg, nil
}

// MustRegistry is like NewRegistry but panics on error. The built-in tables
// are fixed, so an error here is a programming mistake.
func MustRegistry() *codec.Registry {
	reg, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return reg
}
