package input

import "github.com/go-vgo/robotgo"

// failsafeMargin is how close to the top-left corner the pointer must be
// for the abort gesture to register.
const failsafeMargin = 5

// Failsafe detects the slam-to-corner abort gesture. Moving the pointer
// into the top-left screen corner stops the automation on its next poll.
type Failsafe struct{}

func NewFailsafe() *Failsafe {
	return &Failsafe{}
}

func (f *Failsafe) Triggered() bool {
	x, y := robotgo.Location()
	return x <= failsafeMargin && y <= failsafeMargin
}
