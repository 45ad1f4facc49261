package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	MaxPhotos      = 10
	MaxPhotoBytes  = 10 * 1024 * 1024
	MaxStoryLength = 5000
	minPhotos      = 1
	fieldEmail     = "email"
	fieldPetName   = "pet_name"
	fieldStory     = "pet_story"
	fieldPhotos    = "photos"
)

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// PaymentVerifier is the read side of the ledger used when admitting orders.
type PaymentVerifier interface {
	VerifyDirect(ctx context.Context, transactionID string) (*models.PaymentRecord, error)
	LookupApproved(key models.OrderKey) (*models.PaymentRecord, bool)
}

// AdmittedOrder is an order that passed validation and payment checks. It can
// only be built by UploadGate.Admit.
type AdmittedOrder struct {
	request models.OrderRequest
	key     models.OrderKey
	payment models.PaymentRecord
}

func (o *AdmittedOrder) Request() models.OrderRequest { return o.request }

func (o *AdmittedOrder) Key() models.OrderKey { return o.key }

func (o *AdmittedOrder) Payment() models.PaymentRecord { return o.payment }

type UploadGate struct {
	Ledger   PaymentVerifier
	validate *validator.Validate
}

func NewUploadGate(ledger PaymentVerifier) *UploadGate {
	return &UploadGate{
		Ledger:   ledger,
		validate: validator.New(),
	}
}

// Admit validates the request and resolves its payment.
//
// Validation stops at the first violation and returns a *models.ValidationError.
// With a transaction id the gateway is queried directly and the transaction must
// be approved for this same email and pet; otherwise the ledger must already hold
// an approved record for the pair. The gate has no side effects on disk.
func (g *UploadGate) Admit(ctx context.Context, req *models.OrderRequest) (*AdmittedOrder, error) {
	if err := g.validateRequest(req); err != nil {
		return nil, err
	}

	key := models.NewOrderKey(req.Email, req.PetName)
	log := logrus.WithField("key", key.String())

	record, err := g.resolvePayment(ctx, key, strings.TrimSpace(req.TransactionID))
	if err != nil {
		log.Warnf("order rejected: %v", err)
		return nil, err
	}

	log.WithField("reference", record.Reference).Info("order admitted")
	admitted := &AdmittedOrder{
		request: *req,
		key:     key,
		payment: *record,
	}
	admitted.request.Photos = append([]models.Photo(nil), req.Photos...)
	return admitted, nil
}

func (g *UploadGate) resolvePayment(ctx context.Context, key models.OrderKey, transactionID string) (*models.PaymentRecord, error) {
	if transactionID == "" {
		record, ok := g.Ledger.LookupApproved(key)
		if !ok {
			return nil, models.ErrPaymentRequired
		}
		return record, nil
	}

	record, err := g.Ledger.VerifyDirect(ctx, transactionID)
	switch {
	case errors.Is(err, models.ErrGatewayUnavailable):
		return nil, err
	case errors.Is(err, models.ErrStatusConflict):
	case err != nil:
		return nil, fmt.Errorf("%w: %v", models.ErrPaymentRequired, err)
	}

	if record == nil || record.Status != models.StatusApproved {
		return nil, models.ErrPaymentRequired
	}
	if record.Key != key {
		return nil, fmt.Errorf("%w: transaction %s belongs to another order", models.ErrPaymentRequired, transactionID)
	}
	return record, nil
}

func (g *UploadGate) validateRequest(req *models.OrderRequest) error {
	if err := g.validate.Var(strings.TrimSpace(req.Email), "required,email"); err != nil {
		return models.NewValidationError(fieldEmail, "a valid email address is required")
	}
	if strings.TrimSpace(req.PetName) == "" {
		return models.NewValidationError(fieldPetName, "pet name is required")
	}
	if strings.TrimSpace(req.Story) == "" {
		return models.NewValidationError(fieldStory, "story is required")
	}
	if utf8.RuneCountInString(req.Story) > MaxStoryLength {
		return models.NewValidationError(fieldStory, fmt.Sprintf("story must be at most %d characters", MaxStoryLength))
	}
	if len(req.Photos) < minPhotos || len(req.Photos) > MaxPhotos {
		return models.NewValidationError(fieldPhotos, fmt.Sprintf("between %d and %d photos are required", minPhotos, MaxPhotos))
	}

	for i, p := range req.Photos {
		field := fmt.Sprintf("%s[%d]", fieldPhotos, i)
		if len(p.Data) == 0 {
			return models.NewValidationError(field, "photo is empty")
		}
		if len(p.Data) > MaxPhotoBytes {
			return models.NewValidationError(field, "photo exceeds 10MB")
		}
		if !allowedContentTypes[normalizeContentType(p.ContentType)] {
			return models.NewValidationError(field, fmt.Sprintf("unsupported content type %q", p.ContentType))
		}
	}
	return nil
}

func normalizeContentType(ct string) string {
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
