package mc

import "strings"

const (
	ServerBoundHandshakePacketID int32 = 0x00

	MaxServerAddressLength = 255

	ForgeSeparator = "\x00"
)

type ServerBoundHandshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       int32
}

func (pk ServerBoundHandshake) Marshal() Packet {
	return MarshalPacket(
		ServerBoundHandshakePacketID,
		VarInt(pk.ProtocolVersion),
		String(pk.ServerAddress),
		UnsignedShort(pk.ServerPort),
		VarInt(pk.NextState),
	)
}

func (pk ServerBoundHandshake) MarshalPacket() Packet {
	return pk.Marshal()
}

// UnmarshalServerBoundHandshake refuses server addresses longer than
// maxAddressLength bytes, zero means MaxServerAddressLength.
func UnmarshalServerBoundHandshake(packet Packet, maxAddressLength int) (ServerBoundHandshake, error) {
	var (
		protocol VarInt
		addr     String
		port     UnsignedShort
		next     VarInt
		hs       ServerBoundHandshake
	)

	if packet.ID != ServerBoundHandshakePacketID {
		return hs, ErrInvalidPacketID
	}
	if maxAddressLength <= 0 {
		maxAddressLength = MaxServerAddressLength
	}

	if err := packet.Scan(
		&protocol,
		MaxLength(&addr, maxAddressLength),
		&port,
		&next,
	); err != nil {
		return hs, err
	}

	return ServerBoundHandshake{
		ProtocolVersion: int32(protocol),
		ServerAddress:   string(addr),
		ServerPort:      uint16(port),
		NextState:       int32(next),
	}, nil
}

// State is the phase the client asked to continue in.
func (pk ServerBoundHandshake) State() State {
	return NextState(pk.NextState)
}

func (pk ServerBoundHandshake) IsForgeAddress() bool {
	return strings.Contains(pk.ServerAddress, ForgeSeparator)
}

// ParseServerAddress strips what modded clients append to the address.
func (pk ServerBoundHandshake) ParseServerAddress() string {
	return strings.SplitN(pk.ServerAddress, ForgeSeparator, 2)[0]
}
