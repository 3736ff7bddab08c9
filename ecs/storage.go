package ecs

import (
	"reflect"
	"slices"
	"unsafe"
	"weak"

	"github.com/kamstrup/intmap"
)

// Storage is the main ECS storage interface
type Storage struct {
	registry   *ComponentRegistry
	archetypes *intmap.Map[uint32, *Archetype]
	// order keeps archetypes in creation order so iteration is deterministic
	order      []*Archetype
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   reflect.Value // *T
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: intmap.New[uint32, *Archetype](32),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Archetype returns the archetype with the given id, or nil
func (s *Storage) Archetype(id uint32) *Archetype {
	archetype, _ := s.archetypes.Get(id)
	return archetype
}

// Archetypes returns every archetype in creation order
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.Spawn(components))
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	if archetype, ok := s.archetypes.Get(id); ok {
		return archetype
	}
	archetype := NewArchetype(id, types, s.registry)
	s.archetypes.Put(id, archetype)
	s.order = append(s.order, archetype)
	return archetype
}

// CreateEntityRef returns the EntityRef for a live entity, creating it on
// first use. Every call for the same entity returns the same ref while the
// ref is reachable. It returns nil for ids that name no live entity.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.Archetype(id.ArchetypeId())
	if archetype == nil || archetype.Len() == 0 || archetype.storages[0].Get(int(id.Index())) == nil {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: archetype}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the entity a ref points at, or false once the
// entity is deleted or the ref invalidated.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil || ref.Id == 0 {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches ref from its entity without deleting it.
// It reports false if the ref was already invalid.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if ref == nil || ref.Id == 0 {
		return false
	}
	if archetype := s.Archetype(ref.Id.ArchetypeId()); archetype != nil {
		archetype.refs.Del(ref.Id)
	}
	ref.Id = 0
	ref.Archetype = nil
	return true
}

// Delete removes all data related to the entity ID
func (s *Storage) Delete(id EntityId) {
	if archetype := s.Archetype(id.ArchetypeId()); archetype != nil {
		archetype.Delete(id.Index())
	}
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype := s.Archetype(id.ArchetypeId())
	if archetype == nil {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype := s.Archetype(id.ArchetypeId())
	return archetype != nil && archetype.HasComponent(compType)
}

// Count returns the number of live entities across all archetypes
func (s *Storage) Count() int {
	n := 0
	for _, archetype := range s.order {
		n += archetype.Len()
	}
	return n
}

// AddSingleton stores a component that belongs to no entity. Adding a
// singleton of a type that already exists overwrites it in place, so
// pointers obtained earlier stay valid.
func (s *Storage) AddSingleton(component any) {
	value := reflect.ValueOf(component)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}

	if entry, ok := s.singletons[value.Type()]; ok {
		entry.value.Elem().Set(value)
		return
	}

	ptr := reflect.New(value.Type())
	ptr.Elem().Set(value)
	s.singletons[value.Type()] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton points *out at the stored singleton. out must be a **T.
// It reports false when no singleton of type T exists.
func (s *Storage) ReadSingleton(out any) bool {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Ptr || target.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	entry := s.getSingletonEntry(target.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	target.Elem().Set(entry.value)
	return true
}

// Singletons returns a pointer to every singleton, ordered by type name.
func (s *Storage) Singletons() []any {
	types := make([]reflect.Type, 0, len(s.singletons))
	for t := range s.singletons {
		types = append(types, t)
	}
	slices.SortFunc(types, byTypeName)

	out := make([]any, len(types))
	for i, t := range types {
		out[i] = s.singletons[t].value.Interface()
	}
	return out
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		// Components can be structs or primitives, but not reference kinds
		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		if slices.Contains(types, compType) {
			panic("component type " + compType.String() + " given twice")
		}
		types = append(types, compType)
	}
	slices.SortFunc(types, byTypeName)
	return types
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		// The *rtype behind a reflect.Type is unique per type
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr) ^ uint32(uint64(ptr)>>32)

		h ^= val
		h *= prime
	}

	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's component of type T, or nil
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
