package library

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"time"
)

// headerSize covers CRC32(4) + NameSize(4) + DataSize(4) + Timestamp(8).
const headerSize = 20

// ErrCorrupt is returned when a stored envelope fails its integrity check.
var ErrCorrupt = errors.New("library: corrupt entry")

// envelope is the stored form of one library entry.
// Format: [CRC32(4)][NameSize(4)][DataSize(4)][Timestamp(8)][Name][Data]
type envelope struct {
	CRC32     uint32
	Timestamp uint64
	Name      []byte
	Data      []byte
}

func newEnvelope(name string, data []byte, now time.Time) (*envelope, error) {
	if uint64(len(name)) > uint64(^uint32(0)) || uint64(len(data)) > uint64(^uint32(0)) {
		return nil, fmt.Errorf("library: entry too large")
	}
	e := &envelope{
		Timestamp: uint64(now.UnixNano()),
		Name:      []byte(name),
		Data:      data,
	}
	e.CRC32 = e.checksum()
	return e, nil
}

func (e *envelope) size() int {
	return headerSize + len(e.Name) + len(e.Data)
}

func (e *envelope) encode() []byte {
	buf := make([]byte, e.size())
	binary.LittleEndian.PutUint32(buf[0:], e.CRC32)
	binary.LittleEndian.PutUint32(buf[4:], uint32(len(e.Name)))
	binary.LittleEndian.PutUint32(buf[8:], uint32(len(e.Data)))
	binary.LittleEndian.PutUint64(buf[12:], e.Timestamp)
	copy(buf[headerSize:], e.Name)
	copy(buf[headerSize+len(e.Name):], e.Data)
	return buf
}

// decodeEnvelope parses and verifies buf. The result aliases buf.
func decodeEnvelope(buf []byte) (*envelope, error) {
	if len(buf) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(buf))
	}
	nameSize := uint64(binary.LittleEndian.Uint32(buf[4:8]))
	dataSize := uint64(binary.LittleEndian.Uint32(buf[8:12]))
	if uint64(len(buf)) != headerSize+nameSize+dataSize {
		return nil, fmt.Errorf("%w: size %d does not match name %d + data %d", ErrCorrupt, len(buf), nameSize, dataSize)
	}
	e := &envelope{
		CRC32:     binary.LittleEndian.Uint32(buf[0:4]),
		Timestamp: binary.LittleEndian.Uint64(buf[12:20]),
		Name:      buf[headerSize : headerSize+nameSize],
		Data:      buf[headerSize+nameSize:],
	}
	if sum := e.checksum(); sum != e.CRC32 {
		return nil, fmt.Errorf("%w: CRC32 mismatch: %d != %d", ErrCorrupt, e.CRC32, sum)
	}
	return e, nil
}

// checksum covers every field except the CRC itself.
func (e *envelope) checksum() uint32 {
	var hdr [16]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(len(e.Name)))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(e.Data)))
	binary.LittleEndian.PutUint64(hdr[8:], e.Timestamp)

	crc := crc32.NewIEEE()
	crc.Write(hdr[:])
	crc.Write(e.Name)
	crc.Write(e.Data)
	return crc.Sum32()
}
