package protocol

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// Writer serializes frames onto an underlying stream, transparently
// gzip-compressing bodies of at least CompressionThreshold bytes and setting the
// frame's compression flag accordingly. A zero CompressionThreshold
// disables compression.
type Writer struct {
	w                    *bufio.Writer
	CompressionThreshold int
}

// NewWriter wraps w for frame output. threshold of 0 disables compression.
func NewWriter(w io.Writer, threshold int) *Writer {
	return &Writer{w: bufio.NewWriter(w), CompressionThreshold: threshold}
}

// WriteRequest encodes req and writes it as a request frame on stream.
func (pw *Writer) WriteRequest(stream uint16, req Request) error {
	body, err := EncodeRequest(req)
	if err != nil {
		return err
	}
	return pw.writeFrame(VersionRequest, OpQuery, stream, body)
}

// WriteResponse encodes resp and writes it as a response frame on stream.
func (pw *Writer) WriteResponse(stream uint16, resp Response) error {
	body, err := EncodeResponse(resp)
	if err != nil {
		return err
	}
	return pw.writeFrame(VersionResponse, OpQuery, stream, body)
}

func (pw *Writer) writeFrame(version Version, opcode Opcode, stream uint16, body []byte) error {
	flags := FlagNone
	if pw.CompressionThreshold > 0 && len(body) >= pw.CompressionThreshold {
		compressed, err := gzipCompress(body)
		if err != nil {
			return fmt.Errorf("protocol: compress body: %w", err)
		}
		body = compressed
		flags = FlagCompression
	}

	frame := Frame{Version: version, Flags: flags, Stream: stream, Opcode: opcode, Body: body}
	if err := frame.Encode(pw.w); err != nil {
		return &ConnectionError{Cause: err}
	}
	if err := pw.w.Flush(); err != nil {
		return &ConnectionError{Cause: err}
	}
	return nil
}

func gzipCompress(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(body); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
