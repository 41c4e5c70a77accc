package statemachine

import (
	"errors"
	"strings"

	"messmate-api/models"
)

// Actors that may drive a transition
const (
	ActorStudent = "student"
	ActorStaff   = "staff"
)

// ErrInvalidTransition is wrapped by every rejection from CanTransition.
var ErrInvalidTransition = errors.New("invalid transition")

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Actor string `json:"actor"`
}

type transitionKey struct {
	From  string
	To    string
	Actor string
}

// Machine is a transition table with O(1) lookup.
type Machine struct {
	name        string
	transitions []Transition
	lookup      map[transitionKey]bool
}

func newMachine(name string, transitions []Transition) *Machine {
	m := &Machine{name: name, transitions: transitions, lookup: map[transitionKey]bool{}}
	for _, t := range transitions {
		m.lookup[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}

// Orders: students may only cancel before the kitchen starts; staff run the
// rest of the lifecycle.
var Orders = newMachine("order", []Transition{
	{From: string(models.OrderPending), To: string(models.OrderConfirmed), Actor: ActorStaff},
	{From: string(models.OrderPending), To: string(models.OrderCancelled), Actor: ActorStaff},
	{From: string(models.OrderPending), To: string(models.OrderCancelled), Actor: ActorStudent},
	{From: string(models.OrderConfirmed), To: string(models.OrderPreparing), Actor: ActorStaff},
	{From: string(models.OrderConfirmed), To: string(models.OrderCancelled), Actor: ActorStaff},
	{From: string(models.OrderConfirmed), To: string(models.OrderCancelled), Actor: ActorStudent},
	{From: string(models.OrderPreparing), To: string(models.OrderReady), Actor: ActorStaff},
	{From: string(models.OrderReady), To: string(models.OrderCompleted), Actor: ActorStaff},
})

// Bookings start CONFIRMED and end either served or cancelled.
var Bookings = newMachine("booking", []Transition{
	{From: string(models.BookingConfirmed), To: string(models.BookingCompleted), Actor: ActorStaff},
	{From: string(models.BookingConfirmed), To: string(models.BookingCancelled), Actor: ActorStaff},
})

// ValidTransitionsFrom returns all valid next states from a given state
func (m *Machine) ValidTransitionsFrom(status string) []string {
	var nexts []string
	seen := map[string]bool{}
	for _, t := range m.transitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func (m *Machine) CanTransition(from, to, actor string) error {
	if m.lookup[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return &TransitionError{Machine: m.name, From: from, To: to, Actor: actor, Valid: m.ValidTransitionsFrom(from)}
}

// Transitions returns the full table for documentation
func (m *Machine) Transitions() []Transition {
	return m.transitions
}

// TerminalStates lists states with no outgoing transition.
func (m *Machine) TerminalStates() []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range m.transitions {
		if !seen[t.To] && len(m.ValidTransitionsFrom(t.To)) == 0 {
			out = append(out, t.To)
		}
		seen[t.To] = true
	}
	return out
}

type TransitionError struct {
	Machine string
	From    string
	To      string
	Actor   string
	Valid   []string
}

func (e *TransitionError) Error() string {
	valid := "none (terminal state)"
	if len(e.Valid) > 0 {
		valid = strings.Join(e.Valid, ", ")
	}
	return "invalid " + e.Machine + " transition: " + e.From + " → " + e.To +
		" is not allowed for actor '" + e.Actor + "'. " +
		"Valid transitions from " + e.From + " are: " + valid
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
