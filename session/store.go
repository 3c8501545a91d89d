package session

import "context"

// Store is the durable key-value contract behind the Manager. Implementations
// must be safe for concurrent use and must survive process restarts (the
// in-memory store excepted).
type Store interface {
	// Read returns the value stored under slot, or (nil, nil) when the slot
	// is absent. Implementations never interpret the payload.
	Read(ctx context.Context, slot string) ([]byte, error)

	// Write stores data under slot. A nil value removes the slot.
	Write(ctx context.Context, slot string, data []byte) error

	// WriteAll applies every slot mutation in a single atomic step where the
	// engine supports transactions; nil values remove slots. Guarantees the
	// user record and token pair can never be observed half-written.
	WriteAll(ctx context.Context, values map[string][]byte) error

	// Close releases engine resources. Reads and writes after Close fail.
	Close() error
}
