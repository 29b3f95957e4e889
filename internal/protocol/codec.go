package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Body encoding is a compact, little-endian, length-prefixed format: each
// sum type is a little-endian uint32 variant tag followed by its fields.
// Strings and slices are a little-endian uint64 length followed by raw
// bytes or encoded elements. This mirrors the format the reference
// implementation's values were already serialized with, so frame bodies
// captured from that implementation decode unchanged.

func putUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func putUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func putString(buf *bytes.Buffer, s string) {
	putUint64(buf, uint64(len(s)))
	buf.WriteString(s)
}

func putStrings(buf *bytes.Buffer, values []string) {
	putUint64(buf, uint64(len(values)))
	for _, v := range values {
		putString(buf, v)
	}
}

func putRanges(buf *bytes.Buffer, ranges []Range) {
	putUint64(buf, uint64(len(ranges)))
	for _, r := range ranges {
		putUint64(buf, r.Start)
		putUint64(buf, r.End)
	}
}

type bodyReader struct {
	r   io.Reader
	err error
}

func (b *bodyReader) uint32() uint32 {
	if b.err != nil {
		return 0
	}
	var buf [4]byte
	if _, err := io.ReadFull(b.r, buf[:]); err != nil {
		b.err = err
		return 0
	}
	return binary.LittleEndian.Uint32(buf[:])
}

func (b *bodyReader) uint64() uint64 {
	if b.err != nil {
		return 0
	}
	var buf [8]byte
	if _, err := io.ReadFull(b.r, buf[:]); err != nil {
		b.err = err
		return 0
	}
	return binary.LittleEndian.Uint64(buf[:])
}

func (b *bodyReader) string() string {
	n := b.uint64()
	if b.err != nil || n == 0 {
		return ""
	}
	if n > MaxBodySize {
		b.err = fmt.Errorf("protocol: string length %d exceeds maximum", n)
		return ""
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(b.r, buf); err != nil {
		b.err = err
		return ""
	}
	return string(buf)
}

func (b *bodyReader) strings() []string {
	n := b.uint64()
	if b.err != nil || n == 0 {
		return nil
	}
	out := make([]string, 0, n)
	for i := uint64(0); i < n; i++ {
		out = append(out, b.string())
		if b.err != nil {
			return nil
		}
	}
	return out
}

func (b *bodyReader) ranges() []Range {
	n := b.uint64()
	if b.err != nil {
		return nil
	}
	out := make([]Range, 0, n)
	for i := uint64(0); i < n; i++ {
		start := b.uint64()
		end := b.uint64()
		if b.err != nil {
			return nil
		}
		out = append(out, Range{Start: start, End: end})
	}
	return out
}

// EncodeRequest serializes a Request to its wire body representation.
func EncodeRequest(req Request) ([]byte, error) {
	var buf bytes.Buffer
	switch r := req.(type) {
	case AddRequest:
		putUint32(&buf, uint32(requestAdd))
		putString(&buf, r.Value)
	case CheckRequest:
		putUint32(&buf, uint32(requestCheck))
		putString(&buf, r.Value)
	case AddBatchRequest:
		putUint32(&buf, uint32(requestAddBatch))
		putStrings(&buf, r.Values)
	case GetBatchRequest:
		putUint32(&buf, uint32(requestGetBatch))
		putRanges(&buf, r.Ranges)
	case DropBatchRequest:
		putUint32(&buf, uint32(requestDropBatch))
		putRanges(&buf, r.Ranges)
	default:
		return nil, fmt.Errorf("protocol: unknown request type %T", req)
	}
	return buf.Bytes(), nil
}

// DecodeRequest parses a wire body into one of the Request variants.
func DecodeRequest(body []byte) (Request, error) {
	br := &bodyReader{r: bytes.NewReader(body)}
	tag := requestKind(br.uint32())
	if br.err != nil {
		return nil, fmt.Errorf("protocol: decode request tag: %w", br.err)
	}

	var req Request
	switch tag {
	case requestAdd:
		req = AddRequest{Value: br.string()}
	case requestCheck:
		req = CheckRequest{Value: br.string()}
	case requestAddBatch:
		req = AddBatchRequest{Values: br.strings()}
	case requestGetBatch:
		req = GetBatchRequest{Ranges: br.ranges()}
	case requestDropBatch:
		req = DropBatchRequest{Ranges: br.ranges()}
	default:
		return nil, fmt.Errorf("protocol: unknown request tag %d", tag)
	}
	if br.err != nil {
		return nil, fmt.Errorf("protocol: decode request body: %w", br.err)
	}
	return req, nil
}

// EncodeResponse serializes a Response to its wire body representation.
func EncodeResponse(resp Response) ([]byte, error) {
	var buf bytes.Buffer
	switch r := resp.(type) {
	case StringResponse:
		putUint32(&buf, uint32(responseString))
		putString(&buf, r.Value)
	case ArrayResponse:
		putUint32(&buf, uint32(responseArray))
		putStrings(&buf, r.Values)
	case BoolResponse:
		putUint32(&buf, uint32(responseBool))
		if r.Value {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	default:
		return nil, fmt.Errorf("protocol: unknown response type %T", resp)
	}
	return buf.Bytes(), nil
}

// DecodeResponse parses a wire body into one of the Response variants.
func DecodeResponse(body []byte) (Response, error) {
	br := &bodyReader{r: bytes.NewReader(body)}
	tag := responseKind(br.uint32())
	if br.err != nil {
		return nil, fmt.Errorf("protocol: decode response tag: %w", br.err)
	}

	var resp Response
	switch tag {
	case responseString:
		resp = StringResponse{Value: br.string()}
	case responseArray:
		resp = ArrayResponse{Values: br.strings()}
	case responseBool:
		var b [1]byte
		if _, err := io.ReadFull(br.r, b[:]); err != nil {
			br.err = err
		} else {
			resp = BoolResponse{Value: b[0] != 0}
		}
	default:
		return nil, fmt.Errorf("protocol: unknown response tag %d", tag)
	}
	if br.err != nil {
		return nil, fmt.Errorf("protocol: decode response body: %w", br.err)
	}
	return resp, nil
}
