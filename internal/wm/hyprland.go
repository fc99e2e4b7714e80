package wm

import (
	"encoding/json"
	"fmt"
	"os/exec"

	"snapbuy/pkg/global"
)

type Hyprland struct{}

type hyprClient struct {
	Address string `json:"address"`
	Class   string `json:"class"`
	Title   string `json:"title"`
}

func NewHyprland() (*Hyprland, error) {
	log := global.GetLogger()

	path, err := exec.LookPath("hyprctl")
	if err != nil {
		log.Error("hyprctl not found in PATH", err)
		return nil, fmt.Errorf("hyprctl not found in PATH: %w", err)
	}
	log.Debug("Found hyprctl", "path", path)

	return &Hyprland{}, nil
}

func (h *Hyprland) Name() string {
	return "Hyprland"
}

func (h *Hyprland) ActiveWindow() (Window, error) {
	log := global.GetLogger()

	output, err := exec.Command("hyprctl", "activewindow", "-j").CombinedOutput()
	if err != nil {
		log.Error("Failed to execute hyprctl", err, "output", string(output))
		return Window{}, fmt.Errorf("hyprctl error: %w", err)
	}

	var active hyprClient
	if err := json.Unmarshal(output, &active); err != nil {
		// hyprctl prints a plain message when nothing is focused
		return Window{}, nil
	}

	return Window{
		Class:   active.Class,
		Title:   active.Title,
		Address: active.Address,
	}, nil
}

func (h *Hyprland) ListWindows() ([]Window, error) {
	log := global.GetLogger()

	output, err := exec.Command("hyprctl", "clients", "-j").CombinedOutput()
	if err != nil {
		log.Error("Failed to execute hyprctl", err, "output", string(output))
		return nil, fmt.Errorf("hyprctl error: %w", err)
	}

	var clients []hyprClient
	if err := json.Unmarshal(output, &clients); err != nil {
		log.Error("Failed to parse hyprctl output", err, "output", string(output))
		return nil, fmt.Errorf("failed to parse hyprctl output: %w", err)
	}

	windows := make([]Window, 0, len(clients))
	for _, c := range clients {
		windows = append(windows, Window{
			Class:   c.Class,
			Title:   c.Title,
			Address: c.Address,
		})
	}
	return windows, nil
}
