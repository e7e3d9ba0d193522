package worker

import (
	"context"
	"testing"

	"billfold/internal/amqp"
)

func TestHandleAlert(t *testing.T) {
	w := NewAlertWorker()
	msg := amqp.NewBudgetAlertMessage(1, 10000, 10500, 2024, 3)

	if err := w.HandleAlert(context.Background(), msg); err != nil {
		t.Fatalf("HandleAlert: %v", err)
	}

	// Same user and month again is a no-op, not an error.
	if err := w.HandleAlert(context.Background(), msg); err != nil {
		t.Fatalf("duplicate alert: %v", err)
	}

	// A different month alerts again.
	next := amqp.NewBudgetAlertMessage(1, 10000, 10500, 2024, 4)
	if err := w.HandleAlert(context.Background(), next); err != nil {
		t.Fatalf("next month alert: %v", err)
	}
}

func TestHandleAlertRejectsMalformed(t *testing.T) {
	w := NewAlertWorker()

	bad := []*amqp.BudgetAlertMessage{
		amqp.NewBudgetAlertMessage(0, 100, 200, 2024, 3),
		amqp.NewBudgetAlertMessage(1, 100, 200, 2024, 13),
		amqp.NewBudgetAlertMessage(1, 100, 200, 2024, 0),
	}
	for _, msg := range bad {
		if err := w.HandleAlert(context.Background(), msg); err == nil {
			t.Fatalf("expected error for %+v", msg)
		}
	}
}
