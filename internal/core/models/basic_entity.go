package models

import (
	"fmt"
	"sort"
	"sync/atomic"
)

var _ Entity = (*BasicEntity)(nil)

var nextEntityID uint64

// BasicEntity is a map-backed Entity implementation, enough for tests,
// examples and games without their own entity container.
type BasicEntity struct {
	id         EntityID
	name       string
	components map[ComponentID]Component
	tags       map[string]struct{}
}

// NewEntity creates an entity with a process-unique ID.
func NewEntity(name string) *BasicEntity {
	return &BasicEntity{
		id:         EntityID(atomic.AddUint64(&nextEntityID, 1)),
		name:       name,
		components: make(map[ComponentID]Component),
		tags:       make(map[string]struct{}),
	}
}

func (e *BasicEntity) ID() EntityID { return e.id }
func (e *BasicEntity) Name() string { return e.name }

func (e *BasicEntity) AddComponent(id ComponentID, c Component) error {
	if c == nil {
		return fmt.Errorf("entity %d: nil component %d", e.id, id)
	}
	if _, exists := e.components[id]; exists {
		return fmt.Errorf("entity %d: component %d already attached", e.id, id)
	}
	e.components[id] = c
	return nil
}

func (e *BasicEntity) RemoveComponent(id ComponentID) error {
	if _, exists := e.components[id]; !exists {
		return fmt.Errorf("entity %d: component %d not attached", e.id, id)
	}
	delete(e.components, id)
	return nil
}

func (e *BasicEntity) GetComponent(id ComponentID) (Component, bool) {
	c, ok := e.components[id]
	return c, ok
}

func (e *BasicEntity) HasComponent(id ComponentID) bool {
	_, ok := e.components[id]
	return ok
}

func (e *BasicEntity) ListComponents() []ComponentID {
	out := make([]ComponentID, 0, len(e.components))
	for id := range e.components {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (e *BasicEntity) Tags() []string {
	out := make([]string, 0, len(e.tags))
	for t := range e.tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (e *BasicEntity) AddTag(tag string) {
	e.tags[tag] = struct{}{}
}

func (e *BasicEntity) HasTag(tag string) bool {
	_, ok := e.tags[tag]
	return ok
}
