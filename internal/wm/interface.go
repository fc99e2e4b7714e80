package wm

// WindowManager answers window queries for one session type.
type WindowManager interface {
	// ActiveWindow returns the window that currently has input focus.
	ActiveWindow() (Window, error)
	// ListWindows returns all visible top-level windows.
	ListWindows() ([]Window, error)
	// Name returns the WM name for logging/display
	Name() string
}

type Window struct {
	ID      string
	Class   string
	Title   string
	Address string // For Hyprland
}
