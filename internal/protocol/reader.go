package protocol

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// Reader reads frames from an underlying stream, transparently
// decompressing bodies whose frame carries the compression flag.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps r for frame input.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadFrame reads the next frame and decompresses its body if needed. EOF
// on a clean connection close is returned unmodified.
func (pr *Reader) ReadFrame() (Frame, error) {
	frame, err := DecodeFrame(pr.r)
	if err != nil {
		if err == io.EOF {
			return Frame{}, err
		}
		return Frame{}, &ConnectionError{Cause: err}
	}

	if frame.Flags&FlagCompression != 0 {
		body, err := gzipDecompress(frame.Body)
		if err != nil {
			return Frame{}, &ParseError{Reason: "decompress body", Cause: err}
		}
		frame.Body = body
	}
	return frame, nil
}

// ReadRequest reads the next frame and decodes its body as a Request.
func (pr *Reader) ReadRequest() (uint16, Request, error) {
	frame, err := pr.ReadFrame()
	if err != nil {
		return 0, nil, err
	}
	req, err := DecodeRequest(frame.Body)
	if err != nil {
		return 0, nil, &ParseError{Reason: "decode request", Cause: err}
	}
	return frame.Stream, req, nil
}

// ReadResponse reads the next frame and decodes its body as a Response.
func (pr *Reader) ReadResponse() (uint16, Response, error) {
	frame, err := pr.ReadFrame()
	if err != nil {
		return 0, nil, err
	}
	resp, err := DecodeResponse(frame.Body)
	if err != nil {
		return 0, nil, &ParseError{Reason: "decode response", Cause: err}
	}
	return frame.Stream, resp, nil
}

func gzipDecompress(body []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("read gzip stream: %w", err)
	}
	return out, nil
}
