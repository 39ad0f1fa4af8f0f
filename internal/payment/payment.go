// Package payment talks to the card/mobile payment processor. Amounts
// cross this boundary in minor units (cents).
package payment

import (
	"context"
	"math"
)

type IntentRequest struct {
	AmountMinor  int64
	Currency     string
	RestaurantID string
	OrderID      string
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusRefunded Status = "refunded"
)

type Intent struct {
	ID          string `json:"id"`
	Status      Status `json:"status"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
}

type Refund struct {
	ID          string `json:"id"`
	IntentID    string `json:"intent_id"`
	AmountMinor int64  `json:"amount_minor"`
	Status      string `json:"status"`
}

type Gateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (Intent, error)
	Confirm(ctx context.Context, intentID string) (Intent, error)
	// Refund returns the whole payment when amountMinor is nil.
	Refund(ctx context.Context, intentID string, amountMinor *int64) (Refund, error)
}

func ToMinor(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func FromMinor(minor int64) float64 {
	return float64(minor) / 100
}
