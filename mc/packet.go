package mc

import "fmt"

// Packet is the raw representation of message that is send between the client and the server
type Packet struct {
	ID   int32
	Data []byte
}

type McPacket interface {
	MarshalPacket() Packet
}

// Scan decodes and copies the Packet data into the fields
func (pk Packet) Scan(fields ...FieldDecoder) error {
	return ScanFields(NewCursor(pk.Data), fields...)
}

// Payload is everything a frame carries after its length prefix.
func (pk Packet) Payload() []byte {
	bb := make([]byte, 0, VarIntLen(pk.ID)+len(pk.Data))
	bb = AppendVarInt(bb, pk.ID)
	return append(bb, pk.Data...)
}

// Marshal encodes the packet as a complete frame, including the length prefix
func (pk Packet) Marshal() []byte {
	payload := pk.Payload()
	bb := make([]byte, 0, VarIntLen(int32(len(payload)))+len(payload))
	bb = AppendVarInt(bb, int32(len(payload)))
	return append(bb, payload...)
}

// ScanFields decodes a byte stream into fields
func ScanFields(r DecodeReader, fields ...FieldDecoder) error {
	for _, field := range fields {
		if err := field.Decode(r); err != nil {
			return err
		}
	}
	return nil
}

// MarshalPacket transforms an ID and Fields into a Packet
func MarshalPacket(id int32, fields ...FieldEncoder) Packet {
	pk := Packet{ID: id, Data: []byte{}}
	for _, v := range fields {
		pk.Data = append(pk.Data, v.Encode()...)
	}
	return pk
}

// ParsePacket splits a frame into its packet id and the remaining data.
func ParsePacket(frame []byte) (Packet, error) {
	c := NewCursor(frame)
	id, err := c.ReadVarInt()
	if err != nil {
		return Packet{}, fmt.Errorf("reading packet id: %w", err)
	}
	return Packet{
		ID:   id,
		Data: c.Rest(),
	}, nil
}
