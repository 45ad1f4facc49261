package dto

import (
	"strings"

	"github.com/mrmateussiilva/petstory/internal/models"
)

type CreatePayment struct {
	Email   string `form:"email" json:"email" binding:"required,email"`
	PetName string `form:"pet_name" json:"pet_name" binding:"required"`
}

func (p *CreatePayment) Sanitize() {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.PetName = strings.TrimSpace(p.PetName)
}

func (p *CreatePayment) ToKey() models.OrderKey {
	return models.NewOrderKey(p.Email, p.PetName)
}

// WebhookNotification is the body Mercado Pago posts to the notification URL.
type WebhookNotification struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// PaymentReturn carries the query parameters of the checkout back_urls.
type PaymentReturn struct {
	Email             string `form:"email"`
	PetName           string `form:"pet_name"`
	ExternalReference string `form:"external_reference"`
	PaymentID         string `form:"payment_id"`
	CollectionStatus  string `form:"collection_status"`
}
