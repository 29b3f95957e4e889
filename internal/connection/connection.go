// Package connection wraps a single TCP stream with the buffered framing
// needed to exchange Request and Response values.
package connection

import (
	"net"

	"kvset/internal/protocol"
)

// Connection wraps one TCP stream with a buffered frame reader and writer.
// It is used by the node (to receive requests and send responses), and by
// the client and rebalancer (to send requests and receive responses).
type Connection struct {
	conn   net.Conn
	reader *protocol.Reader
	writer *protocol.Writer
}

// Dial opens a TCP connection to address with the given compression
// threshold (0 disables compression on outgoing frames).
func Dial(address string, compressionThreshold int) (*Connection, error) {
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, &protocol.ConnectionError{Cause: err}
	}
	return New(conn, compressionThreshold), nil
}

// New wraps an already-established net.Conn.
func New(conn net.Conn, compressionThreshold int) *Connection {
	return &Connection{
		conn:   conn,
		reader: protocol.NewReader(conn),
		writer: protocol.NewWriter(conn, compressionThreshold),
	}
}

// Close closes the underlying socket.
func (c *Connection) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the address of the peer, for logging.
func (c *Connection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// ReceiveRequest reads and decodes one request frame (server side).
func (c *Connection) ReceiveRequest() (uint16, protocol.Request, error) {
	return c.reader.ReadRequest()
}

// SendResponse encodes and writes one response frame (server side). Writes
// flush before returning so the reply is observable before the server reads
// the next request.
func (c *Connection) SendResponse(stream uint16, resp protocol.Response) error {
	return c.writer.WriteResponse(stream, resp)
}

// SendRequest encodes and writes one request frame (client & tool side).
func (c *Connection) SendRequest(stream uint16, req protocol.Request) error {
	return c.writer.WriteRequest(stream, req)
}

// ReceiveResponse reads and decodes one response frame (client & tool side).
func (c *Connection) ReceiveResponse() (uint16, protocol.Response, error) {
	return c.reader.ReadResponse()
}

// SendRequestWithResponse sends req on stream 0 and waits for the matching
// response. It is the shape used by the client and the rebalancer, which
// never pipeline more than one in-flight request per connection.
func (c *Connection) SendRequestWithResponse(req protocol.Request) (protocol.Response, error) {
	if err := c.SendRequest(0, req); err != nil {
		return nil, err
	}
	_, resp, err := c.ReceiveResponse()
	if err != nil {
		return nil, err
	}
	return resp, nil
}
