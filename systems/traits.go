package systems

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/genome/components"
	"github.com/pthm-cable/genome/event"
	"github.com/pthm-cable/genome/registry"
)

// ErrNoComponent reports a ModifyTrait addressed to a component the entity lacks.
var ErrNoComponent = errors.New("entity has no such component")

// componentAccessor returns a pointer to an entity's component, or nil.
type componentAccessor func(e ecs.Entity) any

func accessor[C any](w *ecs.World) (reflect.Type, componentAccessor) {
	m := ecs.NewMap[C](w)
	return reflect.TypeFor[C](), func(e ecs.Entity) any {
		if !m.Has(e) {
			return nil
		}
		return m.Get(e)
	}
}

// ExpressedComponents lists the component types whose tagged fields are
// expressed from the genome.
func ExpressedComponents() []reflect.Type {
	return []reflect.Type{
		reflect.TypeFor[components.Appearance](),
		reflect.TypeFor[components.Vitality](),
	}
}

// TraitSystem handles ModifyTrait events by re-decoding the named trait from
// the entity's genome and writing it into the tagged component field.
type TraitSystem struct {
	world     *ecs.World
	registry  *registry.Registry
	genomeMap *ecs.Map[components.Genome]
	access    map[reflect.Type]componentAccessor

	applied int
	failed  int
}

// NewTraitSystem creates a trait system.
func NewTraitSystem(w *ecs.World, reg *registry.Registry) *TraitSystem {
	s := &TraitSystem{
		world:     w,
		registry:  reg,
		genomeMap: ecs.NewMap[components.Genome](w),
		access:    make(map[reflect.Type]componentAccessor),
	}
	for _, register := range []func(*ecs.World) (reflect.Type, componentAccessor){
		accessor[components.Appearance],
		accessor[components.Vitality],
	} {
		t, get := register(w)
		s.access[t] = get
	}
	return s
}

// EventTypes implements event.Handler.
func (s *TraitSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventModifyTrait}
}

// HandleEvent implements event.Handler. Failures are logged and counted.
func (s *TraitSystem) HandleEvent(_ *ecs.World, ev event.Event) {
	req, ok := ev.Payload.(event.ModifyTrait)
	if !ok {
		s.failed++
		slog.Warn("modify trait: unexpected payload", "payload", fmt.Sprintf("%T", ev.Payload))
		return
	}
	if err := s.Apply(ev.Entity, req); err != nil {
		slog.Warn("modify trait failed",
			"entity", ev.Entity.ID(),
			"component", req.ComponentType.String(),
			"trait", req.TraitName,
			"error", err,
		)
	}
}

// Apply expresses one trait of one entity and counts the outcome.
func (s *TraitSystem) Apply(entity ecs.Entity, req event.ModifyTrait) error {
	if err := s.apply(entity, req); err != nil {
		s.failed++
		return err
	}
	s.applied++
	return nil
}

func (s *TraitSystem) apply(entity ecs.Entity, req event.ModifyTrait) error {
	if !s.world.Alive(entity) {
		return fmt.Errorf("entity %d is not alive", entity.ID())
	}
	if !s.genomeMap.Has(entity) {
		return fmt.Errorf("entity %d: %w: Genome", entity.ID(), ErrNoComponent)
	}
	g := s.genomeMap.Get(entity)

	def, err := s.registry.Get(g.Species)
	if err != nil {
		return err
	}

	get, ok := s.access[req.ComponentType]
	if !ok {
		return fmt.Errorf("component %v is not expressed from genomes", req.ComponentType)
	}
	comp := get(entity)
	if comp == nil {
		return fmt.Errorf("entity %d: %w: %v", entity.ID(), ErrNoComponent, req.ComponentType)
	}

	fieldType, ok := components.TraitType(req.ComponentType, req.TraitName)
	if !ok {
		return fmt.Errorf("component %v has no trait %q", req.ComponentType, req.TraitName)
	}

	value, err := def.Map.Property(req.TraitName, g.Genes, fieldType)
	if err != nil {
		return err
	}
	if err := components.SetTrait(comp, req.TraitName, value); err != nil {
		return err
	}
	slog.Debug("trait expressed",
		"entity", entity.ID(),
		"species", g.Species,
		"trait", req.TraitName,
		"value", components.FormatValue(value),
	)
	return nil
}

// Express applies every trait of every expressed component the entity's
// species defines. Returns the first error; remaining traits are still applied.
func (s *TraitSystem) Express(entity ecs.Entity) error {
	var first error
	for _, req := range s.Requests(entity) {
		if err := s.Apply(entity, req); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Requests lists the ModifyTrait requests that fully express an entity: one per
// tagged trait that its species defines.
func (s *TraitSystem) Requests(entity ecs.Entity) []event.ModifyTrait {
	if !s.genomeMap.Has(entity) {
		return nil
	}
	def, err := s.registry.Get(s.genomeMap.Get(entity).Species)
	if err != nil {
		return nil
	}

	var reqs []event.ModifyTrait
	for _, t := range ExpressedComponents() {
		for _, trait := range components.Traits(t) {
			if _, ok := def.Map.Definition(trait); ok {
				reqs = append(reqs, event.ModifyTrait{ComponentType: t, TraitName: trait})
			}
		}
	}
	return reqs
}

// Applied returns the number of successfully applied requests, from events or Express.
func (s *TraitSystem) Applied() int { return s.applied }

// Failed returns the number of rejected requests.
func (s *TraitSystem) Failed() int { return s.failed }
