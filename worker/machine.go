package worker

import (
	"fmt"

	"github.com/realDragonium/picocraft/mc"
)

// A Decoder turns the packet into the event it stands for. It only fails on
// data that cannot be trusted anymore.
type Decoder func(pk mc.Packet) (PacketEvent, error)

type tableKey struct {
	state mc.State
	id    int32
}

// Table maps a state and packet id onto the decoder for that packet. It is
// filled before the first session starts and only read afterwards, so one
// table can be shared by all sessions.
type Table struct {
	decoders map[tableKey]Decoder
}

func NewTable() *Table {
	return &Table{
		decoders: make(map[tableKey]Decoder),
	}
}

// Register replaces any decoder known for the same state and id.
func (t *Table) Register(state mc.State, id int32, decoder Decoder) {
	t.decoders[tableKey{state: state, id: id}] = decoder
}

func (t *Table) Lookup(state mc.State, id int32) (Decoder, bool) {
	decoder, ok := t.decoders[tableKey{state: state, id: id}]
	return decoder, ok
}

// DefaultTable knows the handshake and everything the status state accepts.
// Login, Transfer and custom states accept nothing yet.
func DefaultTable(maxAddressLength int) *Table {
	t := NewTable()
	t.Register(mc.Handshake, mc.ServerBoundHandshakePacketID, func(pk mc.Packet) (PacketEvent, error) {
		hs, err := mc.UnmarshalServerBoundHandshake(pk, maxAddressLength)
		if err != nil {
			return nil, fmt.Errorf("decoding handshake: %w", err)
		}
		return ChangeState{
			State:         hs.State(),
			ServerAddress: hs.ParseServerAddress(),
			Protocol:      hs.ProtocolVersion,
			Forge:         hs.IsForgeAddress(),
		}, nil
	})
	t.Register(mc.Status, mc.ServerBoundRequestPacketID, func(pk mc.Packet) (PacketEvent, error) {
		if _, err := mc.UnmarshalServerBoundRequest(pk); err != nil {
			return nil, fmt.Errorf("decoding status request: %w", err)
		}
		return StatusRequest{}, nil
	})
	t.Register(mc.Status, mc.ServerBoundPingPacketID, func(pk mc.Packet) (PacketEvent, error) {
		ping, err := mc.UnmarshalServerBoundPing(pk)
		if err != nil {
			return nil, fmt.Errorf("decoding ping: %w", err)
		}
		return PingRequest{Payload: int64(ping.Payload)}, nil
	})
	return t
}

// StateMachine decodes packets under the state of one connection. It never
// changes state on its own, only Apply does.
type StateMachine struct {
	state mc.State
	table *Table
}

func NewStateMachine(table *Table) *StateMachine {
	return &StateMachine{
		state: mc.Handshake,
		table: table,
	}
}

func (m *StateMachine) State() mc.State {
	return m.state
}

// Decode fails with mc.ErrUnknownPacket when the current state has no decoder
// for the packet. The frame has been read completely at that point so the
// caller can go on with the next one.
func (m *StateMachine) Decode(pk mc.Packet) (PacketEvent, error) {
	decode, ok := m.table.Lookup(m.state, pk.ID)
	if !ok {
		return nil, fmt.Errorf("%w: id 0x%02x in state %v", mc.ErrUnknownPacket, pk.ID, m.state)
	}
	return decode(pk)
}

func (m *StateMachine) Apply(ev PacketEvent) {
	if change, ok := ev.(ChangeState); ok {
		m.state = change.State
	}
}
