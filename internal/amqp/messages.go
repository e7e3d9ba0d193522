package amqp

import (
	"encoding/json"
	"time"
)

// BudgetAlertMessage notifies the alert worker that an expense pushed a
// user's current-month spend over the stored limit. It carries the numbers
// at the moment of crossing; the worker does not re-read the database.
type BudgetAlertMessage struct {
	UserID     int64     `json:"user_id"`
	LimitCents int64     `json:"limit_cents"`
	SpentCents int64     `json:"spent_cents"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewBudgetAlertMessage creates an alert for the given user and month.
func NewBudgetAlertMessage(userID, limitCents, spentCents int64, year, month int) *BudgetAlertMessage {
	return &BudgetAlertMessage{
		UserID:     userID,
		LimitCents: limitCents,
		SpentCents: spentCents,
		Year:       year,
		Month:      month,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BudgetAlertMessageFromJSON creates a message from JSON bytes.
func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
