package ids

// Identifiable is implemented by any value that can live in a Collection.
type Identifiable interface {
	GetId() Id
}

// Collection is an insertion-ordered, id-indexed container. Lookups by id
// are O(1); iteration with Each preserves insertion order, which matters
// for reproducing a deterministic simulation run.
type Collection[T Identifiable] struct {
	order []Id
	byId  map[Id]T
}

// NewCollection returns an empty Collection.
func NewCollection[T Identifiable]() *Collection[T] {
	return &Collection[T]{byId: make(map[Id]T)}
}

// CollectionOf builds a Collection from items, preserving their given order.
func CollectionOf[T Identifiable](items ...T) *Collection[T] {
	c := NewCollection[T]()
	for _, it := range items {
		c.Add(it)
	}
	return c
}

// Add inserts or replaces item, keyed by its GetId(). A replace does not
// change the item's position in iteration order.
func (c *Collection[T]) Add(item T) {
	id := item.GetId()
	if _, exists := c.byId[id]; !exists {
		c.order = append(c.order, id)
	}
	c.byId[id] = item
}

// Get returns the item for id and whether it was found.
func (c *Collection[T]) Get(id Id) (T, bool) {
	v, ok := c.byId[id]
	return v, ok
}

// MustGet returns the item for id, panicking if absent. Use only where the
// id is known-valid by construction (e.g. iterating the collection itself).
func (c *Collection[T]) MustGet(id Id) T {
	v, ok := c.byId[id]
	if !ok {
		panic("ids: unknown id " + id.String())
	}
	return v
}

// Remove deletes the item with id, if present.
func (c *Collection[T]) Remove(id Id) {
	if _, ok := c.byId[id]; !ok {
		return
	}
	delete(c.byId, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of items in the collection.
func (c *Collection[T]) Len() int {
	return len(c.order)
}

// Each calls fn for every item in insertion order, stopping early if fn
// returns false.
func (c *Collection[T]) Each(fn func(T) bool) {
	for _, id := range c.order {
		if !fn(c.byId[id]) {
			return
		}
	}
}

// All returns a slice of every item, in insertion order.
func (c *Collection[T]) All() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byId[id])
	}
	return out
}

// Ids returns every key, in insertion order.
func (c *Collection[T]) Ids() []Id {
	out := make([]Id, len(c.order))
	copy(out, c.order)
	return out
}

// Filter returns the items for which pred returns true, in insertion order.
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	var out []T
	c.Each(func(v T) bool {
		if pred(v) {
			out = append(out, v)
		}
		return true
	})
	return out
}
