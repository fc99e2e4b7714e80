package wm

import (
	"fmt"
	"os/exec"
	"strings"
)

type X11 struct{}

func NewX11() (*X11, error) {
	// Check if xdotool is available
	if _, err := exec.LookPath("xdotool"); err != nil {
		return nil, fmt.Errorf("xdotool is required for X11 support but was not found: %w", err)
	}
	return &X11{}, nil
}

func (x *X11) Name() string {
	return "X11"
}

func (x *X11) ActiveWindow() (Window, error) {
	out, err := exec.Command("xdotool", "getactivewindow").Output()
	if err != nil {
		// No focused window is not an error from the caller's perspective
		return Window{}, nil
	}
	windowID := strings.TrimSpace(string(out))
	if windowID == "" {
		return Window{}, nil
	}

	w := Window{ID: windowID}
	if titleOut, err := exec.Command("xdotool", "getwindowname", windowID).Output(); err == nil {
		w.Title = strings.TrimSpace(string(titleOut))
	}
	if classOut, err := exec.Command("xdotool", "getwindowclassname", windowID).Output(); err == nil {
		w.Class = strings.TrimSpace(string(classOut))
	}
	return w, nil
}

func (x *X11) ListWindows() ([]Window, error) {
	out, err := exec.Command("xdotool", "search", "--onlyvisible", "--name", ".").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}

	var windows []Window
	for _, id := range strings.Fields(string(out)) {
		titleOut, err := exec.Command("xdotool", "getwindowname", id).Output()
		if err != nil {
			continue
		}
		title := strings.TrimSpace(string(titleOut))
		if title == "" {
			continue
		}
		windows = append(windows, Window{ID: id, Title: title})
	}
	return windows, nil
}
