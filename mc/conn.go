package mc

import (
	"bufio"
	"net"
)

func NewMcConn(conn net.Conn) *McConn {
	return NewBufferedMcConn(bufio.NewReader(conn), bufio.NewWriter(conn), DefaultMaxFrameLength)
}

// NewBufferedMcConn reads and writes frames through buffers the caller owns.
func NewBufferedMcConn(r *bufio.Reader, w *bufio.Writer, maxFrameLength int) *McConn {
	return &McConn{
		reader:         r,
		writer:         w,
		maxFrameLength: maxFrameLength,
	}
}

type McConn struct {
	reader         *bufio.Reader
	writer         *bufio.Writer
	maxFrameLength int
}

func (conn *McConn) ReadPacket() (Packet, error) {
	return ReadPacket(conn.reader, conn.maxFrameLength)
}

func (conn *McConn) WritePacket(p Packet) error {
	return WritePacket(conn.writer, p)
}

func (conn *McConn) WriteMcPacket(s McPacket) error {
	return conn.WritePacket(s.MarshalPacket())
}
