package analytics

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/dmitrymomot/waypoint/pkg/kv"
)

// Variant is one arm of an experiment with a relative weight.
type Variant struct {
	Name   string
	Weight int
}

// Assignment assigns experiment variants by weighted random pick and
// keeps them sticky by persisting the choice per experiment key.
// Concurrent first-time assignments of the same experiment are
// deduplicated, so exactly one pick is made and shared.
type Assignment struct {
	store  kv.Store
	prefix string
}

// NewAssignment creates an assignment backed by the given store. An
// empty prefix defaults to "experiment".
func NewAssignment(store kv.Store, prefix string) *Assignment {
	if prefix == "" {
		prefix = "experiment"
	}
	return &Assignment{store: store, prefix: prefix}
}

// Assign returns the sticky variant name for the experiment, picking
// one by weighted random choice on first call.
func (a *Assignment) Assign(ctx context.Context, experiment string, variants []Variant) (string, error) {
	key := a.prefix + ":" + experiment

	picked, err := kv.GetOrSet(ctx, a.store, key, func(ctx context.Context) ([]byte, error) {
		name, err := pick(variants)
		if err != nil {
			return nil, err
		}
		return []byte(name), nil
	})
	if err != nil {
		return "", fmt.Errorf("analytics: assign %q: %w", experiment, err)
	}
	return string(picked), nil
}

// Clear forgets the sticky assignment for an experiment, so the next
// Assign picks again.
func (a *Assignment) Clear(ctx context.Context, experiment string) error {
	return a.store.Delete(ctx, a.prefix+":"+experiment)
}

// pick selects a variant name proportionally to the variant weights.
// Variants with non-positive weight are never selected.
func pick(variants []Variant) (string, error) {
	total := 0
	for _, v := range variants {
		if v.Weight > 0 {
			total += v.Weight
		}
	}
	if total == 0 {
		return "", ErrNoVariants
	}

	n := rand.Intn(total)
	for _, v := range variants {
		if v.Weight <= 0 {
			continue
		}
		if n < v.Weight {
			return v.Name, nil
		}
		n -= v.Weight
	}

	// Unreachable: n < total by construction.
	return variants[len(variants)-1].Name, nil
}
