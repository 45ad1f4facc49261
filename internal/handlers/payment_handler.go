package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/mrmateussiilva/petstory/internal/models/dto"
	"github.com/mrmateussiilva/petstory/internal/retry"
	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, req *dto.CreatePayment) (*models.CheckoutSession, error)
	ConfirmTransaction(ctx context.Context, transactionID string) (*models.PaymentRecord, error)
	ApplyNotification(ctx context.Context, event models.PaymentNotificationEvent) error
	PaymentStatus(reference string) (*models.PaymentRecord, bool)
}

const paymentNotificationSchema = `{
  "type": "object",
  "required": ["reference", "status"],
  "properties": {
    "reference": { "type": "string", "minLength": 1 },
    "transaction_id": { "type": "string" },
    "status": { "type": "string", "minLength": 1 }
  }
}`

var paymentNotificationLoader = gojsonschema.NewStringLoader(paymentNotificationSchema)

type PaymentHandler struct {
	Service PaymentService
}

func NewPaymentHandler(s PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: s}
}

// POST /api/payment/create
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req dto.CreatePayment
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email and pet name are required"})
		return
	}

	session, err := h.Service.CreatePayment(c.Request.Context(), &req)
	if err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
		case errors.Is(err, models.ErrGatewayUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payment service unavailable, try again later"})
		default:
			logrus.Errorf("create payment failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create payment"})
		}
		return
	}

	c.JSON(http.StatusOK, session)
}

// POST /api/payment/webhook
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var notification dto.WebhookNotification
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&notification); err != nil {
			logrus.Warnf("webhook with unreadable body: %v", err)
		}
	}

	kind := firstNonEmpty(notification.Type, c.Query("type"), c.Query("topic"))
	transactionID := firstNonEmpty(notification.Data.ID, c.Query("data.id"), c.Query("id"))
	if kind != "" && kind != "payment" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored", "type": kind})
		return
	}
	if transactionID == "" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	record, err := h.Service.ConfirmTransaction(c.Request.Context(), transactionID)
	if err != nil {
		logrus.WithField("transaction_id", transactionID).Errorf("webhook verification failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not verify payment"})
		return
	}

	resp := gin.H{"status": "ok"}
	if record != nil {
		resp["reference"] = record.Reference
		resp["payment_status"] = record.Status
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/payment/success
func (h *PaymentHandler) Success(c *gin.Context) {
	h.paymentReturn(c, "approved")
}

// GET /api/payment/failure
func (h *PaymentHandler) Failure(c *gin.Context) {
	h.paymentReturn(c, "rejected")
}

// GET /api/payment/pending
func (h *PaymentHandler) Pending(c *gin.Context) {
	h.paymentReturn(c, "pending")
}

// paymentReturn echoes the correlation data of a checkout redirect. It never
// changes the ledger.
func (h *PaymentHandler) paymentReturn(c *gin.Context, outcome string) {
	var ret dto.PaymentReturn
	if err := c.ShouldBindQuery(&ret); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid return parameters"})
		return
	}

	resp := gin.H{
		"outcome":   outcome,
		"email":     ret.Email,
		"pet_name":  ret.PetName,
		"reference": ret.ExternalReference,
	}
	if ret.PaymentID != "" {
		resp["payment_id"] = ret.PaymentID
	}
	if record, ok := h.Service.PaymentStatus(ret.ExternalReference); ok {
		resp["payment_status"] = record.Status
	}
	c.JSON(http.StatusOK, resp)
}

// HandleEvents applies payment notifications consumed from Kafka. Malformed
// payloads are marked permanent so they go straight to the DLQ.
func (h *PaymentHandler) HandleEvents(ctx context.Context, topic string, value []byte) error {
	switch topic {
	case models.PaymentNotificationTopic:
		if err := validatePayload(paymentNotificationLoader, value); err != nil {
			logrus.Errorf("Error validating payment notification %s", err.Error())
			return retry.Permanent(err)
		}
		var event models.PaymentNotificationEvent
		if err := json.Unmarshal(value, &event); err != nil {
			logrus.Errorf("Error parsing payment notification %s", err.Error())
			return retry.Permanent(fmt.Errorf("error parsing payment notification %w", err))
		}
		if err := h.Service.ApplyNotification(ctx, event); err != nil {
			return fmt.Errorf("error applying payment notification %w", err)
		}
		return nil
	default:
		logrus.Errorf("topic not allowed %s", topic)
		return retry.Permanent(fmt.Errorf("topic not allowed %s", topic))
	}
}

func validatePayload(schema gojsonschema.JSONLoader, body []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var sb strings.Builder
		for _, e := range result.Errors() {
			sb.WriteString(e.String())
			sb.WriteString("; ")
		}
		return fmt.Errorf("payload does not conform to schema: %s", sb.String())
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
