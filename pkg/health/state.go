// Package health implements the continuous health tests that run against every sample drawn from
// a noise source: a repetition count test that detects a stuck source and an adaptive proportion
// test that detects large losses of entropy.  Both tests latch in the alarmed state until an
// operator resets them.
package health

import (
	"fmt"
)

// State represents a phase in the health test lifecycle
type State string

const (
	// Startup covers the first observations while the test establishes its reference sample
	Startup = State("startup")
	// Monitoring is the steady state where every sample is checked against the cutoff
	Monitoring = State("monitoring")
	// Alarmed is entered when the cutoff is exceeded and persists until Reset
	Alarmed = State("alarmed")
)

// Transition represents an allowable transition from one state to another
type Transition struct {
	From State
	To   State
}

// T is a shorthand function for declaring allowable transitions during machine creation
func T(from State, tos ...State) []Transition {
	var transitions []Transition
	for _, to := range tos {
		transitions = append(transitions, Transition{
			From: from,
			To:   to,
		})
	}
	return transitions
}

// Machine is a finite state machine for the health test lifecycle.  Entering Alarmed latches the
// machine: all further transitions error until Reset returns it to the initial state.
type Machine struct {
	current   State
	initial   State
	allowable map[State][]State
	latched   bool
}

func newMachine(initial State, transitions ...[]Transition) *Machine {
	m := &Machine{
		current:   initial,
		initial:   initial,
		allowable: map[State][]State{},
	}
	for _, tset := range transitions {
		for _, t := range tset {
			m.allowable[t.From] = append(m.allowable[t.From], t.To)
		}
	}
	return m
}

// State returns the current state of the machine
func (m *Machine) State() State {
	return m.current
}

// Allowable checks whether a transition between two states is allowable
func (m *Machine) Allowable(from, to State) bool {
	return contains(to, m.allowable[from])
}

// Transition will change the current state of the machine if it is allowable.  Transitions out of
// a latched machine always fail.
func (m *Machine) Transition(to State) error {
	if m.latched {
		return AlarmedError{Msg: "health test is latched in the alarmed state and must be reset"}
	}
	if !m.Allowable(m.current, to) {
		return TransitionNotAllowed{Msg: fmt.Sprintf("cannot transition from state %s to %s", m.current, to)}
	}
	m.current = to
	if to == Alarmed {
		m.latched = true
	}
	return nil
}

// Reset returns the machine to its initial state and clears the latch
func (m *Machine) Reset() {
	m.current = m.initial
	m.latched = false
}

func contains(s State, all []State) bool {
	for _, a := range all {
		if s == a {
			return true
		}
	}
	return false
}

// TransitionNotAllowed is an error caused by attempting a transition not allowed by the machine
type TransitionNotAllowed struct {
	Msg string
}

func (e TransitionNotAllowed) Error() string {
	return e.Msg
}

// AlarmedError is returned when recording against a test that has latched in the alarmed state
type AlarmedError struct {
	Msg string
}

func (e AlarmedError) Error() string {
	return e.Msg
}
