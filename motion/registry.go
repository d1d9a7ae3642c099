package motion

import (
	"sort"

	"github.com/automoto/mazerun-mp/components"
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Registry owns one motion entity per connected player. Storage is a donburi
// world so render-side components can live on the same entity; the id index
// keeps lookup and removal O(1).
type Registry struct {
	world donburi.World
	index map[netconfig.EntityID]donburi.Entity
	query *donburi.Query
	extra []donburi.IComponentType
}

// NewRegistry creates a registry on world. Every entity it creates also gets
// the extra component types.
func NewRegistry(world donburi.World, extra ...donburi.IComponentType) *Registry {
	return &Registry{
		world: world,
		index: make(map[netconfig.EntityID]donburi.Entity),
		query: donburi.NewQuery(filter.Contains(components.Motion)),
		extra: extra,
	}
}

func (r *Registry) World() donburi.World { return r.world }

// Create adds an entity for id with the given motion state. If id is already
// present the existing entry is returned untouched.
func (r *Registry) Create(id netconfig.EntityID, state components.MotionData) *donburi.Entry {
	if entry, ok := r.Entry(id); ok {
		return entry
	}

	ctypes := make([]donburi.IComponentType, 0, 1+len(r.extra))
	ctypes = append(ctypes, components.Motion)
	ctypes = append(ctypes, r.extra...)

	entity := r.world.Create(ctypes...)
	entry := r.world.Entry(entity)
	state.EntityID = id
	components.Motion.SetValue(entry, state)
	r.index[id] = entity
	return entry
}

// Entry returns the entity entry for id.
func (r *Registry) Entry(id netconfig.EntityID) (*donburi.Entry, bool) {
	entity, ok := r.index[id]
	if !ok || !r.world.Valid(entity) {
		return nil, false
	}
	return r.world.Entry(entity), true
}

// Get returns the motion state for id.
func (r *Registry) Get(id netconfig.EntityID) (*components.MotionData, bool) {
	entry, ok := r.Entry(id)
	if !ok {
		return nil, false
	}
	return components.Motion.Get(entry), true
}

// Remove deletes the entity for id and reports whether it existed.
func (r *Registry) Remove(id netconfig.EntityID) bool {
	entity, ok := r.index[id]
	if !ok {
		return false
	}
	delete(r.index, id)
	if r.world.Valid(entity) {
		r.world.Remove(entity)
	}
	return true
}

func (r *Registry) Len() int {
	return len(r.index)
}

// Each calls fn for every registered entity. fn must not create or remove
// entities.
func (r *Registry) Each(fn func(entry *donburi.Entry, m *components.MotionData)) {
	r.query.Each(r.world, func(entry *donburi.Entry) {
		fn(entry, components.Motion.Get(entry))
	})
}

// IDs returns the registered ids in ascending order.
func (r *Registry) IDs() []netconfig.EntityID {
	ids := make([]netconfig.EntityID, 0, len(r.index))
	for id := range r.index {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
