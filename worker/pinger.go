package worker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/realDragonium/picocraft/mc"
)

const (
	DefaultPort        = 25565
	defaultPingTimeout = 5 * time.Second
)

var ErrPongMismatch = errors.New("pong does not echo the ping payload")

type PingResult struct {
	Status  mc.ResponseJSON
	Latency time.Duration
}

// Ping asks the server at addr for its status the way the server list of a
// client does. Without a port in addr the default port is used.
func Ping(ctx context.Context, addr string, protocol int32) (PingResult, error) {
	host, port, err := splitServerAddress(addr)
	if err != nil {
		return PingResult{}, err
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(int(port))))
	if err != nil {
		return PingResult{}, err
	}
	defer conn.Close()

	return PingConn(ctx, conn, host, port, protocol)
}

// PingConn runs the status exchange over an open connection. host and port
// only end up in the handshake.
func PingConn(ctx context.Context, conn net.Conn, host string, port uint16, protocol int32) (PingResult, error) {
	var result PingResult

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultPingTimeout)
	}
	conn.SetDeadline(deadline)
	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	mcConn := mc.NewMcConn(conn)
	handshake := mc.ServerBoundHandshake{
		ProtocolVersion: protocol,
		ServerAddress:   host,
		ServerPort:      port,
		NextState:       mc.Status.ID(),
	}
	if err := mcConn.WriteMcPacket(handshake); err != nil {
		return result, err
	}
	if err := mcConn.WriteMcPacket(mc.ServerBoundRequest{}); err != nil {
		return result, err
	}

	pk, err := mcConn.ReadPacket()
	if err != nil {
		return result, err
	}
	response, err := mc.UnmarshalClientBoundResponse(pk)
	if err != nil {
		return result, err
	}
	result.Status, err = response.ParseJSON()
	if err != nil {
		return result, fmt.Errorf("parsing status: %w", err)
	}

	ping := mc.NewServerBoundPing()
	start := time.Now()
	if err := mcConn.WriteMcPacket(ping); err != nil {
		return result, err
	}
	pk, err = mcConn.ReadPacket()
	if err != nil {
		return result, err
	}
	pong, err := mc.UnmarshalClientBoundPong(pk)
	if err != nil {
		return result, err
	}
	if pong.Payload != ping.Payload {
		return result, ErrPongMismatch
	}
	result.Latency = time.Since(start)

	return result, nil
}

func splitServerAddress(addr string) (string, uint16, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, DefaultPort, nil
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in %q: %w", addr, err)
	}
	return host, uint16(port), nil
}
