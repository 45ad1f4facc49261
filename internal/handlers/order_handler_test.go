package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrmateussiilva/petstory/internal/handlers"
	"github.com/mrmateussiilva/petstory/internal/handlers/mocks"
	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/mrmateussiilva/petstory/internal/models/dto"
	"github.com/mrmateussiilva/petstory/internal/pipeline"
	"github.com/mrmateussiilva/petstory/internal/service"
	servicemocks "github.com/mrmateussiilva/petstory/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func orderRouter(h *handlers.OrderHandler) *gin.Engine {
	r := gin.New()
	r.POST("/api/upload", h.Upload)
	r.GET("/api/orders/:id", h.GetOrder)
	return r
}

type upload struct {
	fields map[string]string
	photos int
	ctype  string
}

func (u upload) request(t *testing.T) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range u.fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	ctype := u.ctype
	if ctype == "" {
		ctype = "image/jpeg"
	}
	for i := 0; i < u.photos; i++ {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="photos"; filename="rex.jpg"`)
		h.Set("Content-Type", ctype)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func validFields() map[string]string {
	return map[string]string{
		"email":     "Tutor@Example.com",
		"pet_name":  "Rex",
		"pet_date":  "2015 - 2024",
		"pet_story": "Rex adorava correr na praia.",
	}
}

func TestUpload_Accepted(t *testing.T) {
	verifier := servicemocks.NewMockPaymentVerifier(t)
	runner := mocks.NewMockOrderRunner(t)
	r := orderRouter(handlers.NewOrderHandler(service.NewUploadGate(verifier), runner))

	key := models.NewOrderKey("tutor@example.com", "Rex")
	verifier.EXPECT().LookupApproved(key).
		Return(&models.PaymentRecord{Reference: "ref-1", Key: key, Status: models.StatusApproved}, true).Once()
	runner.EXPECT().Submit(mock.MatchedBy(func(o *service.AdmittedOrder) bool {
		return len(o.Request().Photos) == 2 && o.Request().Photos[0].ContentType == "image/jpeg"
	})).Return(&models.OrderRun{ID: "order-1", State: models.StateAdmitted}, nil).Once()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, upload{fields: validFields(), photos: 2}.request(t))

	require.Equal(t, http.StatusAccepted, w.Code)
	var body dto.UploadAccepted
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "order-1", body.OrderID)
	assert.Equal(t, "tutor@example.com", body.Email)
	assert.Equal(t, 2, body.Photos)
}

func TestUpload_DirectVerificationWithPaymentID(t *testing.T) {
	verifier := servicemocks.NewMockPaymentVerifier(t)
	runner := mocks.NewMockOrderRunner(t)
	r := orderRouter(handlers.NewOrderHandler(service.NewUploadGate(verifier), runner))

	key := models.NewOrderKey("tutor@example.com", "Rex")
	verifier.EXPECT().VerifyDirect(mock.Anything, "555").
		Return(&models.PaymentRecord{Reference: "ref-1", Key: key, Status: models.StatusApproved}, nil).Once()
	runner.EXPECT().Submit(mock.Anything).Return(&models.OrderRun{ID: "order-2"}, nil).Once()

	fields := validFields()
	fields["payment_id"] = "555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, upload{fields: fields, photos: 1}.request(t))

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestUpload_PaymentRequiredLeavesNoDirectory(t *testing.T) {
	verifier := servicemocks.NewMockPaymentVerifier(t)
	workDir := t.TempDir()
	orchestrator := pipeline.NewOrchestrator(nil, nil, nil, nil, nil, workDir)
	r := orderRouter(handlers.NewOrderHandler(service.NewUploadGate(verifier), orchestrator))

	verifier.EXPECT().LookupApproved(mock.Anything).Return(nil, false).Once()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, upload{fields: validFields(), photos: 1}.request(t))

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpload_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		upload upload
		field  string
	}{
		{name: "no photos", upload: upload{fields: validFields()}, field: "photos"},
		{name: "too many photos", upload: upload{fields: validFields(), photos: 11}, field: "photos"},
		{name: "wrong type", upload: upload{fields: validFields(), photos: 1, ctype: "application/pdf"}, field: "photos[0]"},
		{name: "missing story", upload: upload{fields: map[string]string{"email": "a@b.com", "pet_name": "Rex"}, photos: 1}, field: "pet_story"},
		{name: "bad email", upload: upload{fields: map[string]string{"email": "nope", "pet_name": "Rex", "pet_story": "x"}, photos: 1}, field: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := servicemocks.NewMockPaymentVerifier(t)
			runner := mocks.NewMockOrderRunner(t)
			r := orderRouter(handlers.NewOrderHandler(service.NewUploadGate(verifier), runner))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, tt.upload.request(t))

			require.Equal(t, http.StatusBadRequest, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.field, body["field"])
		})
	}
}

func TestUpload_GatewayUnavailable(t *testing.T) {
	verifier := servicemocks.NewMockPaymentVerifier(t)
	runner := mocks.NewMockOrderRunner(t)
	r := orderRouter(handlers.NewOrderHandler(service.NewUploadGate(verifier), runner))

	verifier.EXPECT().VerifyDirect(mock.Anything, "555").Return(nil, models.ErrGatewayUnavailable).Once()

	fields := validFields()
	fields["payment_id"] = "555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, upload{fields: fields, photos: 1}.request(t))

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetOrder(t *testing.T) {
	runner := mocks.NewMockOrderRunner(t)
	r := orderRouter(handlers.NewOrderHandler(nil, runner))
	finished := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	runner.EXPECT().Get(mock.Anything, "order-1").
		Return(&models.OrderRun{ID: "order-1", State: models.StateCompleted, Degraded: true, FinishedAt: &finished}, nil).Once()
	runner.EXPECT().Get(mock.Anything, "missing").Return(nil, models.ErrOrderNotFound).Once()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/order-1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var run models.OrderRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	assert.Equal(t, models.StateCompleted, run.State)
	assert.True(t, run.Degraded)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClientRateLimiter(t *testing.T) {
	limiter := handlers.NewClientRateLimiter(1, 2)
	r := gin.New()
	r.Use(limiter.Middleware())
	r.GET("/health", handlers.Health)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, limiter.Cleanup())
}
