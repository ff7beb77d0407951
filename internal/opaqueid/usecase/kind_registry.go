package usecase

import (
	"fmt"
	"slices"
	"strings"

	"github.com/allisson/opaqueid/internal/opaqueid/domain"
)

// KindRegistry maps kind names to tags. It is immutable after construction.
type KindRegistry struct {
	byName map[string]domain.KindInfo
	kinds  []domain.KindInfo
}

// NewKindRegistry registers every name in names. Surrounding whitespace is
// trimmed and empty names are skipped. Two names may not share a tag.
func NewKindRegistry(names []string) (*KindRegistry, error) {
	r := &KindRegistry{byName: make(map[string]domain.KindInfo, len(names))}
	byTag := make(map[domain.Tag]string, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		tag, err := domain.DeriveTag(name)
		if err != nil {
			return nil, err
		}
		if other, ok := byTag[tag]; ok {
			return nil, fmt.Errorf("%w: %q collides with %q", domain.ErrKindAlreadyRegistered, name, other)
		}

		info := domain.KindInfo{Name: name, Tag: tag}
		byTag[tag] = name
		r.byName[name] = info
		r.kinds = append(r.kinds, info)
	}

	slices.SortFunc(r.kinds, func(a, b domain.KindInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return r, nil
}

// Lookup returns the kind registered under name.
func (r *KindRegistry) Lookup(name string) (domain.KindInfo, error) {
	info, ok := r.byName[name]
	if !ok {
		return domain.KindInfo{}, fmt.Errorf("%w: %q", domain.ErrKindNotFound, name)
	}
	return info, nil
}

// Known reports whether name is registered.
func (r *KindRegistry) Known(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// List returns the registered kinds sorted by name.
func (r *KindRegistry) List() []domain.KindInfo {
	return slices.Clone(r.kinds)
}

// Len returns the number of registered kinds.
func (r *KindRegistry) Len() int {
	return len(r.kinds)
}
