package types

// DestinationState classifies a target path. It is derived fresh on every
// check and never cached.
type DestinationState int

const (
	DestAbsent DestinationState = iota
	DestOccupied
	DestSymlinked
)

func (s DestinationState) String() string {
	switch s {
	case DestAbsent:
		return "absent"
	case DestOccupied:
		return "occupied"
	case DestSymlinked:
		return "symlinked"
	default:
		return "unknown"
	}
}
