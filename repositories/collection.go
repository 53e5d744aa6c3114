package repositories

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Entity is implemented by every record the store owns.
// Clone must return a copy sharing no mutable memory with the receiver.
type Entity[T any] interface {
	Identity() int
	WithID(id int) T
	Clone() T
}

// Collection is an insertion-ordered set of entities keyed by id.
// Reads hand out clones; writes go through the owning Store so that
// every successful mutation is persisted.
type Collection[T Entity[T]] struct {
	name     string
	notFound error
	store    *Store
	items    []T
}

func newCollection[T Entity[T]](store *Store, name string, notFound error) *Collection[T] {
	return &Collection[T]{name: name, notFound: notFound, store: store, items: []T{}}
}

func (c *Collection[T]) FindByID(id int) (T, bool) {
	item, ok := lo.Find(c.items, func(item T) bool { return item.Identity() == id })
	if !ok {
		return item, false
	}
	return item.Clone(), true
}

// FindBy returns every entity matching predicate, in insertion order.
func (c *Collection[T]) FindBy(predicate func(T) bool) []T {
	return lo.FilterMap(c.items, func(item T, _ int) (T, bool) {
		if !predicate(item) {
			return item, false
		}
		return item.Clone(), true
	})
}

func (c *Collection[T]) All() []T {
	return c.FindBy(func(T) bool { return true })
}

func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Insert assigns the next id to entity, appends it and persists the store.
func (c *Collection[T]) Insert(entity T) (T, error) {
	var stored T
	err := c.store.mutate(func() error {
		stored = entity.WithID(c.nextID())
		c.items = append(c.items, stored.Clone())
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return stored, nil
}

// Update applies mutator to a copy of the entity and swaps it in when the
// mutator succeeds. An error from the mutator leaves the collection untouched.
// The id cannot be changed by the mutator.
func (c *Collection[T]) Update(id int, mutator func(entity *T) error) (T, error) {
	var updated T
	err := c.store.mutate(func() error {
		i := slices.IndexFunc(c.items, func(item T) bool { return item.Identity() == id })
		if i < 0 {
			return fmt.Errorf("%w: %s %d", c.notFound, c.name, id)
		}
		candidate := c.items[i].Clone()
		if err := mutator(&candidate); err != nil {
			return err
		}
		c.items[i] = candidate.WithID(id)
		updated = c.items[i].Clone()
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// nextID is one above the highest id in use, so ids stay unique and
// increasing even if entities are removed later.
func (c *Collection[T]) nextID() int {
	highest := 0
	for _, item := range c.items {
		highest = max(highest, item.Identity())
	}
	return highest + 1
}

func (c *Collection[T]) snapshot() []T {
	return lo.Map(c.items, func(item T, _ int) T { return item.Clone() })
}

func (c *Collection[T]) reset(items []T) {
	c.items = lo.Map(items, func(item T, _ int) T { return item.Clone() })
}
