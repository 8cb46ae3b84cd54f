package handle

// Handle is an opaque reference to a foreign-runtime-owned object.
// Handle 0 is reserved and always invalid. Handles compare by identity:
// two handles refer to the same foreign object iff they are equal.
type Handle uint32

// None is the invalid handle.
const None Handle = 0

// Event types for handle lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventReleased
)

// Event represents a handle lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	TypeID uint32
	Type   EventType
}

// Observer receives notifications about handle lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// Dropper is optionally implemented by stored values that need cleanup
// when their handle is released.
type Dropper interface {
	Drop()
}
