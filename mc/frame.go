package mc

import (
	"errors"
	"fmt"
	"io"
)

// DefaultMaxFrameLength is the largest frame length a 3 byte varint can declare.
const DefaultMaxFrameLength = 2097151

// ReadFrame reads one length prefixed frame. The declared length is checked
// against maxLength before anything is allocated.
func ReadFrame(r DecodeReader, maxLength int) ([]byte, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxFrameLength
	}

	length, err := ReadVarInt(r)
	if err != nil {
		return nil, ClassifyIOError(err)
	}
	if length < 1 || int(length) > maxLength {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", ErrFrameSize, length, maxLength)
	}

	frame := make([]byte, length)
	if _, err := io.ReadFull(r, frame); err != nil {
		return nil, ClassifyIOError(err)
	}
	return frame, nil
}

// ReadPacket reads one frame and splits off its packet id.
func ReadPacket(r DecodeReader, maxLength int) (Packet, error) {
	frame, err := ReadFrame(r, maxLength)
	if err != nil {
		return Packet{}, err
	}
	return ParsePacket(frame)
}

type flusher interface {
	Flush() error
}

// WriteFrame prefixes payload with its length, writes all of it and flushes
// w when it is buffered.
func WriteFrame(w io.Writer, payload []byte) error {
	frame := make([]byte, 0, VarIntLen(int32(len(payload)))+len(payload))
	frame = AppendVarInt(frame, int32(len(payload)))
	frame = append(frame, payload...)

	if err := writeFull(w, frame); err != nil {
		return ClassifyIOError(err)
	}
	if f, ok := w.(flusher); ok {
		return ClassifyIOError(f.Flush())
	}
	return nil
}

// WritePacket writes pk as a single frame.
func WritePacket(w io.Writer, pk Packet) error {
	return WriteFrame(w, pk.Payload())
}

func writeFull(w io.Writer, bb []byte) error {
	for len(bb) > 0 {
		n, err := w.Write(bb)
		bb = bb[n:]
		if err != nil && !errors.Is(err, io.ErrShortWrite) {
			return err
		}
		if n == 0 && len(bb) > 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}
