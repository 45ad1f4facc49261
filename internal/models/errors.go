package models

import (
	"errors"
	"fmt"
)

var (
	ErrPaymentRequired      = errors.New("no approved payment for this order")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrNoArtifactsGenerated = errors.New("no artwork could be generated from the submitted photos")
	ErrRecordNotFound       = errors.New("payment record not found")
	ErrStatusConflict       = errors.New("payment already settled with a different status")
	ErrOrderNotFound        = errors.New("order not found")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ArtGenerationError describes why a single photo produced no artwork.
// It never aborts the order on its own.
type ArtGenerationError struct {
	PhotoIndex int
	Reason     string
	Err        error
}

func (e *ArtGenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("photo %d: %s: %v", e.PhotoIndex+1, e.Reason, e.Err)
	}
	return fmt.Sprintf("photo %d: %s", e.PhotoIndex+1, e.Reason)
}

func (e *ArtGenerationError) Unwrap() error {
	return e.Err
}

type AssemblyError struct {
	Reason string
	Err    error
}

func (e *AssemblyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("kit assembly failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("kit assembly failed: %s", e.Reason)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}

type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s failed: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
