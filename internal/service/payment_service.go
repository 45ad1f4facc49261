package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/mrmateussiilva/petstory/internal/models/dto"
	"github.com/sirupsen/logrus"
)

// Ledger defines the payment ledger operations used by the payment entry points.
type Ledger interface {
	Create(ctx context.Context, key models.OrderKey, amount float64) (*models.CheckoutSession, error)
	ApplyStatus(reference string, status models.PaymentStatus) (*models.PaymentRecord, error)
	VerifyDirect(ctx context.Context, transactionID string) (*models.PaymentRecord, error)
	Get(reference string) (*models.PaymentRecord, bool)
}

// PaymentService is the entry point for checkout creation and for the three
// channels that report payment outcomes: gateway webhooks, relayed Kafka
// notifications and customer return pages.
type PaymentService struct {
	Ledger Ledger
	Price  float64
}

// NewPaymentService creates a PaymentService charging price for every kit.
func NewPaymentService(ledger Ledger, price float64) *PaymentService {
	return &PaymentService{
		Ledger: ledger,
		Price:  price,
	}
}

// CreatePayment opens a checkout session for the customer's pet.
// The returned session carries the hosted checkout URL the customer is sent to.
func (s *PaymentService) CreatePayment(ctx context.Context, req *dto.CreatePayment) (*models.CheckoutSession, error) {
	req.Sanitize()
	key := req.ToKey()
	if key.Email == "" {
		return nil, models.NewValidationError("email", "email is required")
	}
	if key.PetName == "" {
		return nil, models.NewValidationError("pet_name", "pet name is required")
	}

	return s.Ledger.Create(ctx, key, s.Price)
}

// ConfirmTransaction handles a gateway webhook for transactionID by querying
// the gateway and applying the result.
//
// Unknown sessions and conflicting reports are logged and swallowed so the
// gateway stops redelivering them; only gateway failures are returned.
func (s *PaymentService) ConfirmTransaction(ctx context.Context, transactionID string) (*models.PaymentRecord, error) {
	record, err := s.Ledger.VerifyDirect(ctx, transactionID)
	switch {
	case err == nil:
		return record, nil
	case errors.Is(err, models.ErrGatewayUnavailable):
		return nil, err
	case errors.Is(err, models.ErrRecordNotFound), errors.Is(err, models.ErrStatusConflict):
		logrus.WithField("transaction_id", transactionID).Warnf("webhook ignored: %v", err)
		return record, nil
	default:
		return nil, err
	}
}

// ApplyNotification applies a payment status relayed over Kafka.
func (s *PaymentService) ApplyNotification(ctx context.Context, event models.PaymentNotificationEvent) error {
	if strings.TrimSpace(event.Reference) == "" {
		return fmt.Errorf("notification without reference")
	}

	status := models.PaymentStatus(strings.ToUpper(strings.TrimSpace(event.Status)))
	if !status.IsValid() {
		status = models.StatusFromGateway(event.Status)
	}

	_, err := s.Ledger.ApplyStatus(event.Reference, status)
	if errors.Is(err, models.ErrRecordNotFound) || errors.Is(err, models.ErrStatusConflict) {
		return nil
	}
	return err
}

// PaymentStatus returns the stored record for a session reference.
func (s *PaymentService) PaymentStatus(reference string) (*models.PaymentRecord, bool) {
	if reference == "" {
		return nil, false
	}
	return s.Ledger.Get(reference)
}
