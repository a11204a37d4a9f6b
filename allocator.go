package boardkit

import "github.com/pkg/errors"

// Allocator provides the storage a descriptor owns. Build releases anything
// it got from the allocator when a later allocation fails.
type Allocator interface {
	AllocPins(n int) ([]PinInfo, error)
	AllocAdvancedFunctions() (*AdvancedFunctions, error)
	ReleasePins(pins []PinInfo)
	ReleaseAdvancedFunctions(af *AdvancedFunctions)
}

type heapAllocator struct{}

func (heapAllocator) AllocPins(n int) ([]PinInfo, error) {
	if n < 1 {
		return nil, errors.Errorf("pin table needs at least one slot, got %d", n)
	}
	return make([]PinInfo, n), nil
}

func (heapAllocator) AllocAdvancedFunctions() (*AdvancedFunctions, error) {
	return &AdvancedFunctions{}, nil
}

func (heapAllocator) ReleasePins(pins []PinInfo) {}

func (heapAllocator) ReleaseAdvancedFunctions(af *AdvancedFunctions) {}
