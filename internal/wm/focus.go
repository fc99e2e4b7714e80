package wm

import "strings"

// Focus reports whether a target window currently has input focus. It never
// errors: a vanished window or a failed WM query reads as not focused.
type Focus struct {
	manager *Manager
}

func NewFocus(manager *Manager) *Focus {
	return &Focus{manager: manager}
}

// IsFocused matches the active window's title against target,
// case-insensitively. An empty target disables the gate.
func (f *Focus) IsFocused(target string) bool {
	target = strings.TrimSpace(target)
	if target == "" {
		return true
	}

	active, err := f.manager.ActiveWindow()
	if err != nil {
		return false
	}
	title := strings.TrimSpace(active.Title)
	if title == "" {
		return false
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(target))
}
