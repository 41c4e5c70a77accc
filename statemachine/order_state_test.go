package statemachine

import (
	"errors"
	"strings"
	"testing"

	"messmate-api/models"
)

func TestOrders_CanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		actor   string
		wantErr bool
	}{
		{"staff confirms pending", models.OrderPending, models.OrderConfirmed, ActorStaff, false},
		{"student cancels pending", models.OrderPending, models.OrderCancelled, ActorStudent, false},
		{"student cancels confirmed", models.OrderConfirmed, models.OrderCancelled, ActorStudent, false},
		{"student cannot cancel preparing", models.OrderPreparing, models.OrderCancelled, ActorStudent, true},
		{"student cannot confirm", models.OrderPending, models.OrderConfirmed, ActorStudent, true},
		{"staff cannot skip to ready", models.OrderConfirmed, models.OrderReady, ActorStaff, true},
		{"completed is terminal", models.OrderCompleted, models.OrderPending, ActorStaff, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Orders.CanTransition(string(tt.from), string(tt.to), tt.actor)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CanTransition() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("error %v does not wrap ErrInvalidTransition", err)
			}
		})
	}
}

func TestTransitionError_Message(t *testing.T) {
	err := Orders.CanTransition(string(models.OrderCompleted), string(models.OrderPending), ActorStaff)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "none (terminal state)") {
		t.Errorf("message %q does not mention terminal state", err.Error())
	}

	err = Orders.CanTransition(string(models.OrderPending), string(models.OrderReady), ActorStaff)
	if !strings.Contains(err.Error(), "CONFIRMED, CANCELLED") {
		t.Errorf("message %q does not list valid next states", err.Error())
	}
}

func TestBookings_TerminalStates(t *testing.T) {
	got := Bookings.TerminalStates()
	want := map[string]bool{string(models.BookingCompleted): true, string(models.BookingCancelled): true}
	if len(got) != len(want) {
		t.Fatalf("TerminalStates() = %v, want %v", got, want)
	}
	for _, s := range got {
		if !want[s] {
			t.Errorf("unexpected terminal state %s", s)
		}
	}
}

func TestValidTransitionsFrom_Dedupes(t *testing.T) {
	// PENDING → CANCELLED appears once per actor but must be listed once.
	got := Orders.ValidTransitionsFrom(string(models.OrderPending))
	if len(got) != 2 {
		t.Fatalf("ValidTransitionsFrom(PENDING) = %v, want 2 entries", got)
	}
}
