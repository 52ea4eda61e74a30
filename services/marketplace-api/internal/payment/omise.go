// Package payment talks to the Omise card gateway.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

const (
	StatusSuccessful = "successful"
	StatusFailed     = "failed"
	StatusPending    = "pending"

	EventChargeComplete = "charge.complete"
)

type ChargeRequest struct {
	BookingID string
	Amount    int64 // smallest currency unit
	Currency  string
	CardToken string
}

type Charge struct {
	ID             string
	Status         string
	Amount         int64
	Currency       string
	FailureCode    string
	FailureMessage string
}

// Event is a webhook event re-fetched from Omise, so its content is trusted.
type Event struct {
	ID        string
	Key       string
	ChargeID  string
	Status    string
	Amount    int64
	BookingID string
}

type Omise struct {
	omc *omise.Client
}

func NewOmise(publicKey, secretKey string) (*Omise, error) {
	c, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("omise client: %w", err)
	}
	return &Omise{omc: c}, nil
}

func (o *Omise) Charge(_ context.Context, in ChargeRequest) (*Charge, error) {
	if in.Amount <= 0 || in.CardToken == "" || in.Currency == "" {
		return nil, errors.New("invalid charge params")
	}
	ch := &omise.Charge{}
	req := &operations.CreateCharge{
		Amount:   in.Amount,
		Currency: in.Currency,
		Card:     in.CardToken,
		Metadata: map[string]any{"booking_id": in.BookingID},
	}
	if err := o.omc.Do(ch, req); err != nil {
		return nil, fmt.Errorf("create charge: %w", err)
	}
	out := &Charge{ID: ch.ID, Status: string(ch.Status), Amount: ch.Amount, Currency: ch.Currency}
	if ch.FailureCode != nil {
		out.FailureCode = *ch.FailureCode
	}
	if ch.FailureMessage != nil {
		out.FailureMessage = *ch.FailureMessage
	}
	return out, nil
}

func (o *Omise) Refund(_ context.Context, chargeID string, amount int64) error {
	rf := &omise.Refund{}
	if err := o.omc.Do(rf, &operations.CreateRefund{ChargeID: chargeID, Amount: amount}); err != nil {
		return fmt.Errorf("refund %s: %w", chargeID, err)
	}
	return nil
}

func (o *Omise) VerifyEvent(_ context.Context, eventID string) (*Event, error) {
	ev := &omise.Event{}
	if err := o.omc.Do(ev, &operations.RetrieveEvent{EventID: eventID}); err != nil {
		return nil, fmt.Errorf("retrieve event: %w", err)
	}
	out := &Event{ID: ev.ID, Key: ev.Key}
	if ev.Key != EventChargeComplete {
		return out, nil
	}
	// ev.Data is an untyped map; round-trip it into a Charge
	raw, err := json.Marshal(ev.Data)
	if err != nil {
		return nil, fmt.Errorf("event data: %w", err)
	}
	var ch omise.Charge
	if err := json.Unmarshal(raw, &ch); err != nil {
		return nil, fmt.Errorf("event charge: %w", err)
	}
	out.ChargeID = ch.ID
	out.Status = string(ch.Status)
	out.Amount = ch.Amount
	out.BookingID, _ = ch.Metadata["booking_id"].(string)
	return out, nil
}

// ToMinorUnits converts an amount to the smallest currency unit (e.g. paise, satang).
func ToMinorUnits(amount float64) int64 {
	if amount <= 0 {
		return 0
	}
	return int64(amount*100 + 0.5)
}
