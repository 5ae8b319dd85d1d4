// Package event carries trait requests between systems.
package event

import "github.com/mlange-42/ark/ecs"

// EventType identifies an event's payload kind.
type EventType uint8

const (
	EventNone EventType = iota
	EventModifyTrait
	EventBirth
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventModifyTrait:
		return "ModifyTrait"
	case EventBirth:
		return "Birth"
	default:
		return "None"
	}
}

// Event is a single queued event addressed to an entity.
type Event struct {
	Type    EventType
	Entity  ecs.Entity
	Tick    int64
	Payload any
}
