package library

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func FuzzDecodeEnvelope(f *testing.F) {
	e, err := newEnvelope("roads", rendererRecord(), time.Unix(1700000000, 0))
	if err != nil {
		f.Fatal(err)
	}
	f.Add(e.encode())
	f.Add([]byte{})
	f.Add(make([]byte, headerSize))
	f.Add(e.encode()[:headerSize+2])

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1<<20 {
			t.Skip("Input too large for fuzz test")
		}

		env, err := decodeEnvelope(data)
		if err != nil {
			if !errors.Is(err, ErrCorrupt) {
				t.Fatalf("decodeEnvelope returned %v, want ErrCorrupt", err)
			}
			return
		}

		// A verified envelope re-encodes to exactly the stored bytes.
		if !bytes.Equal(env.encode(), data) {
			t.Fatalf("re-encoded envelope differs from input")
		}
	})
}

func FuzzEnvelopeCorruption(f *testing.F) {
	f.Add("roads", rendererRecord(), uint16(0))
	f.Add("roads", rendererRecord(), uint16(headerSize))
	f.Add("", []byte{0x00}, uint16(12))
	f.Add("empty", []byte{}, uint16(7))

	f.Fuzz(func(t *testing.T, name string, data []byte, pos uint16) {
		if len(name)+len(data) > 1<<16 {
			t.Skip("Input too large for fuzz test")
		}

		e, err := newEnvelope(name, data, time.Unix(1700000000, 0))
		if err != nil {
			t.Fatalf("newEnvelope failed: %v", err)
		}
		encoded := e.encode()

		// Flip one byte anywhere in the envelope
		corrupted := append([]byte(nil), encoded...)
		i := int(pos) % len(corrupted)
		corrupted[i] ^= 0xFF

		if _, err := decodeEnvelope(corrupted); !errors.Is(err, ErrCorrupt) {
			t.Errorf("corruption at byte %d of %d not detected: %v", i, len(corrupted), err)
		}
	})
}
