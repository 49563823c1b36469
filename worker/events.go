package worker

import "github.com/realDragonium/picocraft/mc"

// PacketEvent is what a decoded packet asks the session to do. A known
// packet produces exactly one event.
type PacketEvent interface {
	isPacketEvent()
}

// ChangeState moves the session into another protocol state. Every packet
// read after it has been applied is decoded under the new state.
type ChangeState struct {
	State mc.State

	// Set when the change comes from a handshake.
	ServerAddress string
	Protocol      int32
	// Forge clients append their mod marker to the address.
	Forge bool
}

type StatusRequest struct{}

type PingRequest struct {
	Payload int64
}

func (ChangeState) isPacketEvent()   {}
func (StatusRequest) isPacketEvent() {}
func (PingRequest) isPacketEvent()   {}

func eventType(ev PacketEvent) string {
	switch ev.(type) {
	case ChangeState:
		return "change_state"
	case StatusRequest:
		return "status"
	case PingRequest:
		return "ping"
	}
	return "unknown"
}
