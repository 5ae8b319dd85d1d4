package genome

import "errors"

var (
	// ErrPropertyNotFound reports a lookup of a property name that was never registered.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrInvalidType reports a query whose requested value type differs from the
	// registered one.
	ErrInvalidType = errors.New("invalid type")

	// ErrIndexOutOfRange reports a gene index past the end of the supplied gene string.
	ErrIndexOutOfRange = errors.New("gene index out of range")

	// ErrInvalidDefinition reports a property registration that breaks a definition invariant.
	ErrInvalidDefinition = errors.New("invalid property definition")

	// ErrTransform wraps failures returned by a property's transform.
	ErrTransform = errors.New("transform failed")

	// ErrIncompatible reports parents that cannot be crossed.
	ErrIncompatible = errors.New("incompatible genomes")

	// ErrFrozen reports a registration attempt on a map that has been frozen.
	ErrFrozen = errors.New("genome map is frozen")
)
