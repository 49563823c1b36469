package mc_test

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/realDragonium/picocraft/mc"
)

func TestReadFrame(t *testing.T) {
	tt := []struct {
		data          []byte
		frame         []byte
		dataAfterRead []byte
	}{
		{
			data:          []byte{0x03, 0x00, 0x00, 0xf2, 0x05, 0x0f, 0x00, 0xf2, 0x03, 0x50},
			frame:         []byte{0x00, 0x00, 0xf2},
			dataAfterRead: []byte{0x05, 0x0f, 0x00, 0xf2, 0x03, 0x50},
		},
		{
			data:          []byte{0x05, 0x0f, 0x00, 0xf2, 0x03, 0x50, 0x30, 0x01, 0xef, 0xaa},
			frame:         []byte{0x0f, 0x00, 0xf2, 0x03, 0x50},
			dataAfterRead: []byte{0x30, 0x01, 0xef, 0xaa},
		},
	}

	for _, tc := range tt {
		buf := bytes.NewBuffer(tc.data)
		frame, err := mc.ReadFrame(buf, 0)
		if err != nil {
			t.Error(err)
		}

		if !bytes.Equal(frame, tc.frame) {
			t.Errorf("got: %v; want: %v", frame, tc.frame)
		}

		if !bytes.Equal(buf.Bytes(), tc.dataAfterRead) {
			t.Errorf("data after read: got: %v; want: %v", buf.Bytes(), tc.dataAfterRead)
		}
	}
}

func TestReadFrame_Errors(t *testing.T) {
	tt := []struct {
		name      string
		data      []byte
		maxLength int
		err       error
	}{
		{
			name:      "length above limit",
			data:      []byte{0x80, 0x02, 0x00},
			maxLength: 255,
			err:       mc.ErrMalformed,
		},
		{
			name:      "zero length",
			data:      []byte{0x00},
			maxLength: 255,
			err:       mc.ErrMalformed,
		},
		{
			name:      "negative length",
			data:      []byte{0xff, 0xff, 0xff, 0xff, 0x0f},
			maxLength: 255,
			err:       mc.ErrMalformed,
		},
		{
			name:      "length varint too big",
			data:      []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
			maxLength: 255,
			err:       mc.ErrMalformed,
		},
		{
			name:      "stream ends inside frame",
			data:      []byte{0x05, 0x00, 0x01},
			maxLength: 255,
			err:       mc.ErrConnectionClosed,
		},
		{
			name:      "stream ends inside length",
			data:      []byte{0x80},
			maxLength: 255,
			err:       mc.ErrConnectionClosed,
		},
		{
			name:      "empty stream",
			data:      []byte{},
			maxLength: 255,
			err:       mc.ErrConnectionClosed,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mc.ReadFrame(bytes.NewReader(tc.data), tc.maxLength)
			if !errors.Is(err, tc.err) {
				t.Errorf("got error: %v; want: %v", err, tc.err)
			}
		})
	}
}

func TestReadPacket(t *testing.T) {
	data := []byte{0x05, 0x0f, 0x00, 0xf2, 0x03, 0x50}
	pk, err := mc.ReadPacket(bytes.NewReader(data), 0)
	if err != nil {
		t.Fatal(err)
	}
	if pk.ID != 0x0f {
		t.Errorf("packet ID: got: %v; want: %v", pk.ID, 0x0f)
	}
	if !bytes.Equal(pk.Data, []byte{0x00, 0xf2, 0x03, 0x50}) {
		t.Errorf("packet data: got: %v", pk.Data)
	}
}

// shortWriter accepts at most n bytes per call.
type shortWriter struct {
	n   int
	buf bytes.Buffer
}

func (w *shortWriter) Write(b []byte) (int, error) {
	if len(b) > w.n {
		w.buf.Write(b[:w.n])
		return w.n, io.ErrShortWrite
	}
	return w.buf.Write(b)
}

type failingWriter struct{}

func (failingWriter) Write(b []byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestWriteFrame(t *testing.T) {
	payload := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x07, 0x5b, 0xcd, 0x15}
	expected := append([]byte{0x09}, payload...)

	t.Run("retries partial writes", func(t *testing.T) {
		w := &shortWriter{n: 2}
		if err := mc.WriteFrame(w, payload); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(w.buf.Bytes(), expected) {
			t.Errorf("got: %v; want: %v", w.buf.Bytes(), expected)
		}
	})

	t.Run("flushes buffered writers", func(t *testing.T) {
		var out bytes.Buffer
		w := bufio.NewWriter(&out)
		if err := mc.WriteFrame(w, payload); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(out.Bytes(), expected) {
			t.Errorf("got: %v; want: %v", out.Bytes(), expected)
		}
	})

	t.Run("closed stream", func(t *testing.T) {
		err := mc.WriteFrame(failingWriter{}, payload)
		if !errors.Is(err, mc.ErrConnectionClosed) {
			t.Errorf("expected connection closed error but got: %v", err)
		}
	})
}
