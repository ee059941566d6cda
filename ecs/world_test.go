package ecs

import (
	"testing"

	"github.com/milk9111/fpscontroller/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld(NewEventBus())
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			require.Len(t, w.Entities(), c.create)
			if c.destroyIndex < 0 {
				return
			}
			require.True(t, w.DestroyEntity(ents[c.destroyIndex]))
			assert.False(t, w.IsAlive(ents[c.destroyIndex]))
			assert.False(t, w.DestroyEntity(ents[c.destroyIndex]), "double destroy")
			assert.Len(t, w.Entities(), c.create-1)
		})
	}
}

func TestWorldRecycledSlotIsNewEntity(t *testing.T) {
	w := NewWorld(NewEventBus())
	e1 := w.CreateEntity()
	require.True(t, w.DestroyEntity(e1))
	e2 := w.CreateEntity()

	assert.NotEqual(t, e1, e2)
	assert.True(t, w.IsAlive(e2))
	assert.False(t, w.IsAlive(e1))
	assert.False(t, Entity(0).Valid())
}

type health struct{ hp int }
type tag struct{}

func TestWorldComponents(t *testing.T) {
	hh := component.NewComponent[health]()
	th := component.NewComponent[tag]()

	w := NewWorld(NewEventBus())
	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	require.NoError(t, Add(w, e1, hh, &health{hp: 3}))
	require.NoError(t, Add(w, e2, hh, &health{hp: 5}))
	require.NoError(t, Add(w, e2, th, &tag{}))

	assert.ErrorIs(t, Add[health](w, e1, hh, nil), component.ErrNilComponent)
	assert.ErrorIs(t, Add(w, e1, component.ComponentHandle[tag]{}, &tag{}), component.ErrInvalidComponentKind)

	h, ok := Get(w, e1, hh)
	require.True(t, ok)
	h.hp--
	h, _ = Get(w, e1, hh)
	assert.Equal(t, 2, h.hp, "Get returns the stored pointer")

	assert.Equal(t, []Entity{e2}, w.Query(hh.ID(), th.ID()))

	visited := 0
	ForEach2(w, hh, th, func(e Entity, h *health, _ *tag) {
		visited++
		assert.Equal(t, e2, e)
		assert.Equal(t, 5, h.hp)
	})
	assert.Equal(t, 1, visited)

	require.True(t, w.DestroyEntity(e2))
	assert.False(t, Has(w, e2, hh))
	assert.ErrorIs(t, Add(w, e2, hh, &health{}), component.ErrEntityNotAlive)

	assert.True(t, Remove(w, e1, hh))
	assert.False(t, Remove(w, e1, hh))
}

type recordSystem struct {
	name string
	log  *[]string
}

func (s recordSystem) Update(w *World) {
	*s.log = append(*s.log, s.name)
}

func TestWorldUpdateRunsSystemsInOrder(t *testing.T) {
	var log []string
	w := NewWorld(NewEventBus())
	w.AddSystem(recordSystem{"a", &log})
	w.AddSystem(nil)
	w.AddSystem(recordSystem{"b", &log})

	w.Update(0.5)
	w.Update(0.25)

	assert.Equal(t, []string{"a", "b", "a", "b"}, log)
	assert.Equal(t, 0.25, w.Delta())
	assert.Equal(t, uint64(2), w.Tick())
	assert.Equal(t, []string{"record", "record"}, w.Systems())
}
