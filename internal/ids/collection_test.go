package ids_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"halfearth/internal/ids"
)

type thing struct {
	id   ids.Id
	name string
}

func (t thing) GetId() ids.Id { return t.id }

func TestCollectionInsertionOrder(t *testing.T) {
	a := thing{id: ids.New(), name: "a"}
	b := thing{id: ids.New(), name: "b"}
	c := thing{id: ids.New(), name: "c"}

	col := ids.CollectionOf(a, b, c)
	var names []string
	col.Each(func(v thing) bool {
		names = append(names, v.name)
		return true
	})
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestCollectionGetRemove(t *testing.T) {
	a := thing{id: ids.New(), name: "a"}
	col := ids.NewCollection[thing]()
	col.Add(a)

	got, ok := col.Get(a.id)
	assert.True(t, ok)
	assert.Equal(t, "a", got.name)

	col.Remove(a.id)
	assert.Equal(t, 0, col.Len())
	_, ok = col.Get(a.id)
	assert.False(t, ok)
}

func TestCollectionReplaceKeepsPosition(t *testing.T) {
	a := thing{id: ids.New(), name: "a"}
	b := thing{id: ids.New(), name: "b"}
	col := ids.CollectionOf(a, b)

	col.Add(thing{id: a.id, name: "a2"})
	all := col.All()
	assert.Equal(t, "a2", all[0].name)
	assert.Equal(t, "b", all[1].name)
}

func TestCollectionFilter(t *testing.T) {
	a := thing{id: ids.New(), name: "a"}
	b := thing{id: ids.New(), name: "b"}
	col := ids.CollectionOf(a, b)

	out := col.Filter(func(v thing) bool { return v.name == "b" })
	assert.Len(t, out, 1)
	assert.Equal(t, "b", out[0].name)
}
