package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderSize is the fixed length of a frame header: version, flags, a
// big-endian stream id, opcode, and a big-endian body length.
const HeaderSize = 9

// MaxBodySize bounds the length field so a corrupt or hostile peer cannot
// make a node allocate an unbounded buffer.
const MaxBodySize = 256 * 1024 * 1024

// Frame is the unit of transport for every request and response. Body holds
// the already-serialized Request or Response; see codec.go for encoding.
type Frame struct {
	Version Version
	Flags   Flags
	Stream  uint16
	Opcode  Opcode
	Body    []byte
}

// Encode writes the frame header followed by the body to w.
func (f Frame) Encode(w io.Writer) error {
	var header [HeaderSize]byte
	header[0] = byte(f.Version)
	header[1] = byte(f.Flags)
	binary.BigEndian.PutUint16(header[2:4], f.Stream)
	header[4] = byte(f.Opcode)
	binary.BigEndian.PutUint32(header[5:9], uint32(len(f.Body)))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("protocol: write frame header: %w", err)
	}
	if len(f.Body) == 0 {
		return nil
	}
	if _, err := w.Write(f.Body); err != nil {
		return fmt.Errorf("protocol: write frame body: %w", err)
	}
	return nil
}

// DecodeFrame reads one frame from r. It returns io.EOF unmodified when the
// peer closes the connection before sending a header, so callers can treat
// that as a normal disconnect rather than a protocol error.
func DecodeFrame(r io.Reader) (Frame, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return Frame{}, fmt.Errorf("protocol: short frame header: %w", err)
		}
		return Frame{}, err
	}

	version, err := ParseVersion(header[0])
	if err != nil {
		return Frame{}, err
	}
	flags, err := ParseFlags(header[1])
	if err != nil {
		return Frame{}, err
	}
	stream := binary.BigEndian.Uint16(header[2:4])
	opcode, err := ParseOpcode(header[4])
	if err != nil {
		return Frame{}, err
	}
	length := binary.BigEndian.Uint32(header[5:9])
	if length > MaxBodySize {
		return Frame{}, fmt.Errorf("protocol: frame body length %d exceeds maximum %d", length, MaxBodySize)
	}

	body := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, body); err != nil {
			return Frame{}, fmt.Errorf("protocol: short frame body: %w", err)
		}
	}

	return Frame{
		Version: version,
		Flags:   flags,
		Stream:  stream,
		Opcode:  opcode,
		Body:    body,
	}, nil
}
