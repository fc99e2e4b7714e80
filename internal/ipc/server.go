package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"snapbuy/pkg/global"
)

const socketPath = "/tmp/snapbuy.sock"

const (
	cmdStart   = "start"
	cmdStop    = "stop"
	cmdStatus  = "status"
	cmdWindows = "windows"

	statusSuccess = "success"
	statusError   = "error"
)

type Request struct {
	Command string `json:"command"`
}

type Response struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	State   string   `json:"state,omitempty"`
	Balance float64  `json:"balance,omitempty"`
	Windows []string `json:"windows,omitempty"`
}

// Controller is the slice of the application the socket server drives.
type Controller interface {
	StartAutomation() error
	StopAutomation()
	Status() (state string, balance float64)
	Windows() ([]string, error)
}

func StartSocketServer(ctrl Controller) {
	log := global.GetLogger()

	// Remove the socket file if it already exists
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		log.Error("Failed to remove existing socket file", err)
		return
	}

	dir := filepath.Dir(socketPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatal("Failed to create socket directory", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		log.Fatal("Failed to start socket server", err)
	}
	defer listener.Close()

	log.Info("Socket server started", "path", socketPath)

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Error("Failed to accept connection", err)
			continue
		}

		log.Debug("New connection accepted", "remote_addr", conn.RemoteAddr())

		go handleConnection(conn, ctrl)
	}
}

func handleConnection(conn net.Conn, ctrl Controller) {
	log := global.GetLogger()
	defer conn.Close()

	var req Request
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&req); err != nil {
		log.Error("Failed to decode request", err)
		return
	}

	log.Info("Received request", "command", req.Command)

	var resp Response
	switch req.Command {
	case cmdStart:
		if err := ctrl.StartAutomation(); err != nil {
			log.Error("Start command failed", err)
			resp = Response{Status: statusError, Message: err.Error()}
		} else {
			resp = Response{Status: statusSuccess, Message: "Automation started"}
		}
	case cmdStop:
		ctrl.StopAutomation()
		resp = Response{Status: statusSuccess, Message: "Automation stopped"}
	case cmdStatus:
		state, balance := ctrl.Status()
		resp = Response{
			Status:  statusSuccess,
			Message: fmt.Sprintf("state %s, balance %.2f", state, balance),
			State:   state,
			Balance: balance,
		}
	case cmdWindows:
		windows, err := ctrl.Windows()
		if err != nil {
			log.Error("Window list failed", err)
			resp = Response{Status: statusError, Message: err.Error()}
		} else {
			resp = Response{Status: statusSuccess, Message: "Window list", Windows: windows}
		}
	default:
		log.Error("Unknown command received", fmt.Errorf("command: %s", req.Command))
		resp = Response{Status: statusError, Message: "Unknown command"}
	}

	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(resp); err != nil {
		log.Error("Failed to encode response", err)
	} else {
		log.Debug("Response sent successfully", "status", resp.Status)
	}
}
