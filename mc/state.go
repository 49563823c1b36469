package mc

import "fmt"

// State is the protocol phase a connection is in. The named phases map onto
// fixed numbers, any other number requested by a handshake is kept as a
// custom state so it never collides with a named one.
type State struct {
	id     int32
	custom bool
}

var (
	Handshake = State{id: 0}
	Status    = State{id: 1}
	Login     = State{id: 2}
	Transfer  = State{id: 3}
)

func Custom(id int32) State {
	return State{id: id, custom: true}
}

// NextState maps the next_state field of a handshake onto a State.
func NextState(v int32) State {
	switch v {
	case 1:
		return Status
	case 2:
		return Login
	case 3:
		return Transfer
	default:
		return Custom(v)
	}
}

// ID returns the number the state is identified by on the wire.
func (s State) ID() int32 {
	return s.id
}

func (s State) IsCustom() bool {
	return s.custom
}

func (s State) String() string {
	switch s {
	case Handshake:
		return "Handshake"
	case Status:
		return "Status"
	case Login:
		return "Login"
	case Transfer:
		return "Transfer"
	}
	return fmt.Sprintf("Custom(%d)", s.id)
}
