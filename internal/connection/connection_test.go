package connection

import (
	"net"
	"testing"

	"kvset/internal/protocol"
)

func TestRequestResponseRoundTrip(t *testing.T) {
	serverSide, clientSide := net.Pipe()
	defer serverSide.Close()
	defer clientSide.Close()

	server := New(serverSide, 0)
	client := New(clientSide, 0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		stream, req, err := server.ReceiveRequest()
		if err != nil {
			t.Errorf("ReceiveRequest: %v", err)
			return
		}
		if req != (protocol.CheckRequest{Value: "42"}) {
			t.Errorf("req = %#v, want CheckRequest{42}", req)
		}
		if err := server.SendResponse(stream, protocol.BoolResponse{Value: true}); err != nil {
			t.Errorf("SendResponse: %v", err)
		}
	}()

	resp, err := client.SendRequestWithResponse(protocol.CheckRequest{Value: "42"})
	if err != nil {
		t.Fatalf("SendRequestWithResponse: %v", err)
	}
	boolResp, ok := resp.(protocol.BoolResponse)
	if !ok || !boolResp.Value {
		t.Fatalf("resp = %#v, want BoolResponse{true}", resp)
	}
	<-done
}
