// Package models holds the object-model contracts the framework's
// components plug into. The entity container itself is a collaborator
// supplied by the embedding game; the framework only requires the narrow
// surface below.
package models

type (
	EntityID    uint64
	ComponentID uint32
)

// Component is a behavior or data container attachable to an entity.
type Component interface {
	TypeID() ComponentID
	TypeName() string

	// Validate checks the component's internal invariants.
	Validate() error
	// Clone returns a deep copy detached from live observers.
	Clone() Component
}

// Entity is the minimal game-object surface the framework components rely
// on: identity, component storage and tag queries.
type Entity interface {
	ID() EntityID
	Name() string

	AddComponent(ComponentID, Component) error
	RemoveComponent(ComponentID) error
	GetComponent(ComponentID) (Component, bool)
	HasComponent(ComponentID) bool
	ListComponents() []ComponentID

	Tags() []string
	AddTag(string)
	HasTag(string) bool
}
