package event

import (
	"reflect"

	"github.com/mlange-42/ark/ecs"
)

// ModifyTrait requests that the named trait on a component of ComponentType be
// changed on the event's target entity. The new value is not carried; the
// handler derives it.
type ModifyTrait struct {
	ComponentType reflect.Type
	TraitName     string
}

// NewModifyTrait builds a request for trait on component type C.
func NewModifyTrait[C any](trait string) ModifyTrait {
	return ModifyTrait{
		ComponentType: reflect.TypeFor[C](),
		TraitName:     trait,
	}
}

// EmitModifyTrait queues a ModifyTrait for entity.
func EmitModifyTrait(q *Queue, entity ecs.Entity, req ModifyTrait, tick int64) {
	q.Push(Event{
		Type:    EventModifyTrait,
		Entity:  entity,
		Tick:    tick,
		Payload: req,
	})
}

// BirthPayload records the parents of a newborn entity.
type BirthPayload struct {
	ParentA ecs.Entity
	ParentB ecs.Entity
	Species string
}

// EmitBirth queues a Birth event for child.
func EmitBirth(q *Queue, child ecs.Entity, p BirthPayload, tick int64) {
	q.Push(Event{
		Type:    EventBirth,
		Entity:  child,
		Tick:    tick,
		Payload: p,
	})
}
