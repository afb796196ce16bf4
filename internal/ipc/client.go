package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"tesswm/internal/runtimepath"
)

// Client talks to the manager's IPC socket.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response.
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to manager: %w (is tesswm running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("manager error: %s", resp.Error)
	}

	return &resp, nil
}

// GetStatus retrieves manager status.
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// GetClients retrieves the managed window titles.
func (c *Client) GetClients() (*ClientsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetClients})
	if err != nil {
		return nil, err
	}

	var data ClientsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse clients data: %w", err)
	}

	return &data, nil
}

// GetMonitors retrieves monitor information.
func (c *Client) GetMonitors() (*MonitorsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetMonitors})
	if err != nil {
		return nil, err
	}

	var monitors MonitorsData
	if err := json.Unmarshal(resp.Data, &monitors); err != nil {
		return nil, fmt.Errorf("failed to parse monitors data: %w", err)
	}

	return &monitors, nil
}

// View switches the selected monitor to the given tag set.
func (c *Client) View(tags uint32) error {
	payload, err := json.Marshal(ViewPayload{Tags: tags})
	if err != nil {
		return fmt.Errorf("failed to marshal view payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandView, Payload: payload})
	return err
}

// ToggleLayout flips the selected monitor between tile and monocle.
func (c *Client) ToggleLayout() error {
	_, err := c.sendRequest(&Request{Command: CommandToggleLayout})
	return err
}

// Quit asks the manager to exit.
func (c *Client) Quit() error {
	_, err := c.sendRequest(&Request{Command: CommandQuit})
	return err
}

// Ping checks if the manager is responding.
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
