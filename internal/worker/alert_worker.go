package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"billfold/internal/amqp"
)

// AlertWorker consumes budget-exceeded alerts and surfaces them. Repeat
// alerts for the same user and month are dropped so a flood of expenses
// produces one notification.
type AlertWorker struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewAlertWorker() *AlertWorker {
	return &AlertWorker{seen: make(map[string]struct{})}
}

// HandleAlert processes a single budget alert message.
func (w *AlertWorker) HandleAlert(ctx context.Context, msg *amqp.BudgetAlertMessage) error {
	if msg.UserID <= 0 {
		return fmt.Errorf("invalid user id %d in alert", msg.UserID)
	}
	if msg.Month < 1 || msg.Month > 12 {
		return fmt.Errorf("invalid month %d in alert", msg.Month)
	}

	key := fmt.Sprintf("%d:%04d-%02d", msg.UserID, msg.Year, msg.Month)

	w.mu.Lock()
	_, dup := w.seen[key]
	if !dup {
		w.seen[key] = struct{}{}
	}
	w.mu.Unlock()

	if dup {
		slog.DebugContext(ctx, "duplicate budget alert dropped",
			"user_id", msg.UserID,
			"year", msg.Year,
			"month", msg.Month)
		return nil
	}

	slog.WarnContext(ctx, "budget exceeded",
		"user_id", msg.UserID,
		"year", msg.Year,
		"month", msg.Month,
		"limit_cents", msg.LimitCents,
		"spent_cents", msg.SpentCents,
		"over_cents", msg.SpentCents-msg.LimitCents)

	return nil
}

// Run consumes alerts until the context is cancelled.
func (w *AlertWorker) Run(ctx context.Context, client *amqp.Client) error {
	slog.InfoContext(ctx, "alert worker started")
	return client.ConsumeBudgetAlerts(ctx, func(msg *amqp.BudgetAlertMessage) error {
		return w.HandleAlert(ctx, msg)
	})
}
