package mc

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrMalformed means the byte stream can no longer be trusted and the
	// connection has to be closed.
	ErrMalformed        = errors.New("malformed data")
	ErrConnectionClosed = errors.New("connection closed")
	ErrTimeout          = errors.New("connection idle for too long")
	// ErrUnknownPacket is not fatal, the frame has been consumed completely.
	ErrUnknownPacket = errors.New("unknown packet")

	ErrInvalidPacketID = errors.New("invalid packet id")

	ErrVarIntSize    = fmt.Errorf("%w: varint is too big", ErrMalformed)
	ErrFrameSize     = fmt.Errorf("%w: invalid frame length", ErrMalformed)
	ErrStringTooLong = fmt.Errorf("%w: string is too long", ErrMalformed)
	ErrInvalidString = fmt.Errorf("%w: string is not valid utf-8", ErrMalformed)
	ErrShortPacket   = fmt.Errorf("%w: read past the end of the packet", ErrMalformed)
)

// ClassifyIOError maps an error returned by the underlying stream onto
// ErrTimeout or ErrConnectionClosed. Protocol errors are returned unchanged.
func ClassifyIOError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrMalformed),
		errors.Is(err, ErrConnectionClosed),
		errors.Is(err, ErrTimeout):
		return err
	case errors.Is(err, os.ErrDeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %v", ErrConnectionClosed, err)
	}
}
