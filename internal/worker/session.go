package worker

import (
	"math"
	"sync/atomic"

	"github.com/google/uuid"
)

// State is one position in the automation state machine.
type State string

const (
	StateIdle         State = "IDLE"
	StateClickItem    State = "CLICK_ITEM"
	StateCheckPrice   State = "CHECK_PRICE"
	StateCloseAndWait State = "CLOSE_AND_WAIT"
	StateMax          State = "MAX"
	StateBuy          State = "BUY"
	StateRecheck      State = "RECHECK"
)

// Session is the run state of one automation attempt. It is created on
// Start and torn down when the worker returns to IDLE. The balance is
// written by the poller goroutine and read by the state machine, so all
// access goes through atomics.
type Session struct {
	ID     string
	Target string

	state   atomic.Value
	running atomic.Bool
	balance atomic.Uint64
}

func NewSession(target string, startBalance float64) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		Target: target,
	}
	s.state.Store(StateIdle)
	s.running.Store(true)
	s.SetBalance(startBalance)
	return s
}

func (s *Session) State() State {
	return s.state.Load().(State)
}

func (s *Session) setState(st State) {
	s.state.Store(st)
}

func (s *Session) Running() bool {
	return s.running.Load()
}

func (s *Session) finish() {
	s.running.Store(false)
	s.state.Store(StateIdle)
}

func (s *Session) Balance() float64 {
	return math.Float64frombits(s.balance.Load())
}

func (s *Session) SetBalance(v float64) {
	s.balance.Store(math.Float64bits(v))
}

// Deduct subtracts amount from the balance, clamping at zero, and returns
// the new value. CAS loop so it never races the poller's writes.
func (s *Session) Deduct(amount float64) float64 {
	for {
		old := s.balance.Load()
		next := math.Float64frombits(old) - amount
		if next < 0 {
			next = 0
		}
		if s.balance.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
