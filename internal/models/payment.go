package models

import (
	"strings"
	"time"
)

type PaymentStatus string

const (
	StatusPending  PaymentStatus = "PENDING"
	StatusApproved PaymentStatus = "APPROVED"
	StatusRejected PaymentStatus = "REJECTED"
	StatusExpired  PaymentStatus = "EXPIRED"

	CurrencyBRL = "BRL"
)

// OrderKey identifies the customer order a payment belongs to.
type OrderKey struct {
	Email   string `json:"email"`
	PetName string `json:"pet_name"`
}

// NewOrderKey normalizes the email and pet name so lookups from the checkout flow
// and the upload flow land on the same key.
func NewOrderKey(email, petName string) OrderKey {
	return OrderKey{
		Email:   strings.ToLower(strings.TrimSpace(email)),
		PetName: strings.TrimSpace(petName),
	}
}

func (k OrderKey) String() string {
	return k.Email + "/" + k.PetName
}

type PaymentRecord struct {
	Reference     string        `json:"reference"`
	PreferenceID  string        `json:"preference_id"`
	TransactionID string        `json:"transaction_id,omitempty"`
	Key           OrderKey      `json:"key"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Status        PaymentStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	ExpiresAt     time.Time     `json:"expires_at"`
}

// CheckoutSession is what the gateway hands back when a hosted checkout is opened.
type CheckoutSession struct {
	Reference    string `json:"reference"`
	PreferenceID string `json:"preference_id"`
	CheckoutURL  string `json:"checkout_url"`
}

// GatewayTransaction is the gateway's view of a single payment attempt.
type GatewayTransaction struct {
	ID        string `json:"id"`
	Reference string `json:"external_reference"`
	Status    string `json:"status"`
	Detail    string `json:"status_detail"`
}

func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusExpired:
		return true
	default:
		return false
	}
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusExpired:
		return true
	default:
		return false
	}
}

// StatusFromGateway maps a gateway status string onto the ledger's status set.
func StatusFromGateway(status string) PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved":
		return StatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return StatusRejected
	default:
		return StatusPending
	}
}
