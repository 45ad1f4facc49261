package dto

import (
	"strings"

	"github.com/mrmateussiilva/petstory/internal/models"
)

// UploadForm holds the text fields of the multipart upload; photos are read
// separately from the form's file parts.
type UploadForm struct {
	Email     string `form:"email"`
	PetName   string `form:"pet_name"`
	PetDate   string `form:"pet_date"`
	PetStory  string `form:"pet_story"`
	PaymentID string `form:"payment_id"`
}

func (f *UploadForm) Sanitize() {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.PetName = strings.TrimSpace(f.PetName)
	f.PetDate = strings.TrimSpace(f.PetDate)
	f.PetStory = strings.TrimSpace(f.PetStory)
	f.PaymentID = strings.TrimSpace(f.PaymentID)
}

func (f *UploadForm) ToRequest(photos []models.Photo) *models.OrderRequest {
	return &models.OrderRequest{
		Email:         f.Email,
		PetName:       f.PetName,
		PetDate:       f.PetDate,
		Story:         f.PetStory,
		Photos:        photos,
		TransactionID: f.PaymentID,
	}
}

type UploadAccepted struct {
	OrderID string `json:"order_id"`
	Message string `json:"message"`
	PetName string `json:"pet_name"`
	Email   string `json:"email"`
	Photos  int    `json:"photos"`
}
