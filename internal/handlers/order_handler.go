package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/mrmateussiilva/petstory/internal/models/dto"
	"github.com/mrmateussiilva/petstory/internal/service"
	"github.com/sirupsen/logrus"
)

type OrderGate interface {
	Admit(ctx context.Context, req *models.OrderRequest) (*service.AdmittedOrder, error)
}

type OrderRunner interface {
	Submit(order *service.AdmittedOrder) (*models.OrderRun, error)
	Get(ctx context.Context, id string) (*models.OrderRun, error)
}

type OrderHandler struct {
	Gate   OrderGate
	Runner OrderRunner
}

func NewOrderHandler(gate OrderGate, runner OrderRunner) *OrderHandler {
	return &OrderHandler{Gate: gate, Runner: runner}
}

// POST /api/upload
func (h *OrderHandler) Upload(c *gin.Context) {
	var form dto.UploadForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}
	form.Sanitize()

	photos, err := readPhotos(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Gate.Admit(c.Request.Context(), form.ToRequest(photos))
	if err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
		case errors.Is(err, models.ErrPaymentRequired):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment not found or not approved for this email and pet"})
		case errors.Is(err, models.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not verify payment, try again later"})
		default:
			logrus.Errorf("upload rejected: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process order"})
		}
		return
	}

	run, err := h.Runner.Submit(order)
	if err != nil {
		logrus.Errorf("failed to start order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start order processing"})
		return
	}

	c.JSON(http.StatusAccepted, dto.UploadAccepted{
		OrderID: run.ID,
		Message: fmt.Sprintf("Recebemos as fotos de %s! O kit chegará em %s em alguns minutos.", form.PetName, form.Email),
		PetName: form.PetName,
		Email:   form.Email,
		Photos:  len(photos),
	})
}

// GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	run, err := h.Runner.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

// readPhotos loads the "photos" file parts. Each part is read up to one byte
// past the size limit so the gate can reject oversized files.
func readPhotos(c *gin.Context) ([]models.Photo, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	files := form.File["photos"]
	if len(files) > service.MaxPhotos {
		files = files[:service.MaxPhotos+1]
	}

	photos := make([]models.Photo, 0, len(files))
	for _, fh := range files {
		data, err := readPart(fh)
		if err != nil {
			return nil, fmt.Errorf("could not read %s: %w", fh.Filename, err)
		}
		photos = append(photos, models.Photo{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return photos, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, service.MaxPhotoBytes+1))
}
