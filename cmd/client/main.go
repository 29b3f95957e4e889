// Command client is the interactive CLI: it hashes a value, looks up its
// owning node in a local ring view, opens a connection, and prints the
// response.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"kvset/internal/cluster"
	"kvset/internal/connection"
	"kvset/internal/protocol"
)

func main() {
	var (
		nodes       = flag.String("nodes", "", "comma-separated list of node addresses")
		compression = flag.Bool("compression", false, "gzip-compress outgoing frame bodies of 1KiB or more")
	)
	flag.Parse()

	addresses := splitAddresses(*nodes)
	if len(addresses) == 0 {
		fmt.Fprintln(os.Stderr, "client: --nodes is required, e.g. --nodes=127.0.0.1:4000,127.0.0.1:4001")
		os.Exit(1)
	}

	threshold := 0
	if *compression {
		threshold = 1024
	}

	ring := cluster.NewRing(addresses)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("command (add/check): ")
		if !scanner.Scan() {
			return
		}
		command := strings.TrimSpace(scanner.Text())
		if command == "" {
			continue
		}

		fmt.Print("value: ")
		if !scanner.Scan() {
			return
		}
		value := strings.TrimSpace(scanner.Text())

		owner := ring.Owner(value)
		resp, err := send(owner, threshold, command, value)
		if err != nil {
			fmt.Printf("Cannot connect to %s: %v\n", owner, err)
			continue
		}
		fmt.Println(formatResponse(resp))
	}
}

func send(address string, threshold int, command, value string) (protocol.Response, error) {
	conn, err := connection.Dial(address, threshold)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var req protocol.Request
	switch strings.ToLower(command) {
	case "add":
		req = protocol.AddRequest{Value: value}
	case "check":
		req = protocol.CheckRequest{Value: value}
	default:
		return nil, fmt.Errorf("unknown command %q, expected add or check", command)
	}

	return conn.SendRequestWithResponse(req)
}

func formatResponse(resp protocol.Response) string {
	switch r := resp.(type) {
	case protocol.StringResponse:
		return r.Value
	case protocol.BoolResponse:
		return fmt.Sprintf("%t", r.Value)
	case protocol.ArrayResponse:
		return strings.Join(r.Values, ", ")
	default:
		return fmt.Sprintf("unrecognized response %#v", resp)
	}
}

func splitAddresses(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
