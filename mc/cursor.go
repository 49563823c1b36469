package mc

// Cursor reads the fields of a single decoded frame. It never reads past the
// end of the frame and its position only moves forward.
type Cursor struct {
	data []byte
	pos  int
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Remaining returns the amount of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Read fills b completely or fails with ErrShortPacket without consuming anything.
func (c *Cursor) Read(b []byte) (int, error) {
	if len(b) > c.Remaining() {
		return 0, ErrShortPacket
	}
	n := copy(b, c.data[c.pos:])
	c.pos += n
	return n, nil
}

func (c *Cursor) ReadByte() (byte, error) {
	if c.Remaining() < 1 {
		return 0, ErrShortPacket
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// Rest consumes and returns all unread bytes.
func (c *Cursor) Rest() []byte {
	rest := c.data[c.pos:]
	c.pos = len(c.data)
	return rest
}

func (c *Cursor) ReadBool() (bool, error) {
	var v Boolean
	err := v.Decode(c)
	return bool(v), err
}

func (c *Cursor) ReadInt8() (int8, error) {
	var v Byte
	err := v.Decode(c)
	return int8(v), err
}

func (c *Cursor) ReadUint8() (uint8, error) {
	var v UnsignedByte
	err := v.Decode(c)
	return uint8(v), err
}

func (c *Cursor) ReadInt16() (int16, error) {
	var v Short
	err := v.Decode(c)
	return int16(v), err
}

func (c *Cursor) ReadUint16() (uint16, error) {
	var v UnsignedShort
	err := v.Decode(c)
	return uint16(v), err
}

func (c *Cursor) ReadInt32() (int32, error) {
	var v Int
	err := v.Decode(c)
	return int32(v), err
}

func (c *Cursor) ReadInt64() (int64, error) {
	var v Long
	err := v.Decode(c)
	return int64(v), err
}

func (c *Cursor) ReadFloat32() (float32, error) {
	var v Float
	err := v.Decode(c)
	return float32(v), err
}

func (c *Cursor) ReadFloat64() (float64, error) {
	var v Double
	err := v.Decode(c)
	return float64(v), err
}

func (c *Cursor) ReadVarInt() (int32, error) {
	return ReadVarInt(c)
}

func (c *Cursor) ReadVarLong() (int64, error) {
	return ReadVarLong(c)
}

// ReadString reads a length prefixed string of at most maxLength bytes.
func (c *Cursor) ReadString(maxLength int) (string, error) {
	var s String
	err := s.decode(c, maxLength)
	return string(s), err
}
