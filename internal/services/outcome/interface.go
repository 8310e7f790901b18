package outcome

import "context"

// Service defines the interface for outcome resolution
type Service interface {
	// Resolve draws one outcome kind from the weighted table. A forced
	// kind (from the input, or armed earlier via ForceNext) bypasses the
	// draw.
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)

	// ForceNext arms a one-shot override consumed by the next Resolve
	// call, for operator and test tooling
	ForceNext(kind Kind)

	// ComputeEffect maps a drawn kind to the mutation and display effect
	// it carries for the given player
	ComputeEffect(ctx context.Context, input *ComputeEffectInput) (*Effect, error)
}
