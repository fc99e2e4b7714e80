package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"time"
)

const dialTimeout = 2 * time.Second

// Client talks to a running snapbuy instance over its control socket.
// The zero value is not usable; construct with NewClient.
type Client struct {
	socket string
}

func NewClient() *Client {
	return &Client{socket: socketPath}
}

// Start begins an automation session in the running instance.
func (c *Client) Start() error {
	_, err := c.send(cmdStart)
	return err
}

// Stop ends the current automation session, if any.
func (c *Client) Stop() error {
	_, err := c.send(cmdStop)
	return err
}

// Status reports the worker state and last known balance.
func (c *Client) Status() (state string, balance float64, err error) {
	resp, err := c.send(cmdStatus)
	if err != nil {
		return "", 0, err
	}
	return resp.State, resp.Balance, nil
}

// WindowTitles lists the window titles the running instance can target.
func (c *Client) WindowTitles() ([]string, error) {
	resp, err := c.send(cmdWindows)
	if err != nil {
		return nil, err
	}
	return resp.Windows, nil
}

func (c *Client) send(command string) (Response, error) {
	conn, err := net.DialTimeout("unix", c.socket, dialTimeout)
	if err != nil {
		return Response{}, fmt.Errorf("failed to reach control socket %s: %w", c.socket, err)
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(Request{Command: command}); err != nil {
		return Response{}, fmt.Errorf("failed to send %q: %w", command, err)
	}
	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return Response{}, fmt.Errorf("failed to read reply to %q: %w", command, err)
	}
	if resp.Status != statusSuccess {
		return resp, fmt.Errorf("%s", resp.Message)
	}
	return resp, nil
}
