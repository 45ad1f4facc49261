package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mrmateussiilva/petstory/internal/handlers"
	"github.com/mrmateussiilva/petstory/internal/handlers/mocks"
	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/mrmateussiilva/petstory/internal/models/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func paymentRouter(h *handlers.PaymentHandler) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/payment")
	api.POST("/create", h.CreatePayment)
	api.POST("/webhook", h.Webhook)
	api.GET("/success", h.Success)
	api.GET("/failure", h.Failure)
	api.GET("/pending", h.Pending)
	return r
}

func postForm(r http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePayment_Success(t *testing.T) {
	svc := mocks.NewMockPaymentService(t)
	r := paymentRouter(handlers.NewPaymentHandler(svc))

	svc.EXPECT().CreatePayment(mock.Anything, mock.MatchedBy(func(req *dto.CreatePayment) bool {
		return req.Email == "tutor@example.com" && req.PetName == "Rex"
	})).Return(&models.CheckoutSession{Reference: "ref-1", PreferenceID: "pref-1", CheckoutURL: "https://mp/checkout"}, nil).Once()

	w := postForm(r, "/api/payment/create", url.Values{"email": {"tutor@example.com"}, "pet_name": {"Rex"}})

	require.Equal(t, http.StatusOK, w.Code)
	var body models.CheckoutSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://mp/checkout", body.CheckoutURL)
	assert.Equal(t, "ref-1", body.Reference)
}

func TestCreatePayment_InvalidEmail(t *testing.T) {
	svc := mocks.NewMockPaymentService(t)
	r := paymentRouter(handlers.NewPaymentHandler(svc))

	w := postForm(r, "/api/payment/create", url.Values{"email": {"not-an-email"}, "pet_name": {"Rex"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
}

func TestCreatePayment_GatewayUnavailable(t *testing.T) {
	svc := mocks.NewMockPaymentService(t)
	r := paymentRouter(handlers.NewPaymentHandler(svc))

	svc.EXPECT().CreatePayment(mock.Anything, mock.Anything).Return(nil, models.ErrGatewayUnavailable).Once()

	w := postForm(r, "/api/payment/create", url.Values{"email": {"tutor@example.com"}, "pet_name": {"Rex"}})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestWebhook_VerifiesTransaction(t *testing.T) {
	svc := mocks.NewMockPaymentService(t)
	r := paymentRouter(handlers.NewPaymentHandler(svc))

	svc.EXPECT().ConfirmTransaction(mock.Anything, "123456").
		Return(&models.PaymentRecord{Reference: "ref-1", Status: models.StatusApproved}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", strings.NewReader(`{"type":"payment","action":"payment.updated","data":{"id":"123456"}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"payment_status":"APPROVED"`)
}

func TestWebhook_QueryParams(t *testing.T) {
	svc := mocks.NewMockPaymentService(t)
	r := paymentRouter(handlers.NewPaymentHandler(svc))

	svc.EXPECT().ConfirmTransaction(mock.Anything, "987").Return(nil, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook?type=payment&data.id=987", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhook_IgnoresOtherTopics(t *testing.T) {
	svc := mocks.NewMockPaymentService(t)
	r := paymentRouter(handlers.NewPaymentHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook?topic=merchant_order&id=55", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ignored")
}

func TestWebhook_GatewayFailureAsksForRedelivery(t *testing.T) {
	svc := mocks.NewMockPaymentService(t)
	r := paymentRouter(handlers.NewPaymentHandler(svc))

	svc.EXPECT().ConfirmTransaction(mock.Anything, "1").Return(nil, models.ErrGatewayUnavailable).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook?data.id=1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestPaymentReturn_DisplayOnly(t *testing.T) {
	svc := mocks.NewMockPaymentService(t)
	r := paymentRouter(handlers.NewPaymentHandler(svc))

	svc.EXPECT().PaymentStatus("ref-1").Return(&models.PaymentRecord{Status: models.StatusPending}, true).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/payment/success?email=tutor%40example.com&pet_name=Rex&external_reference=ref-1&payment_id=77", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "approved", body["outcome"])
	assert.Equal(t, "PENDING", body["payment_status"])
	assert.Equal(t, "Rex", body["pet_name"])
	svc.AssertNotCalled(t, "ConfirmTransaction", mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "ApplyNotification", mock.Anything, mock.Anything)
}

func TestHandleEvents_AppliesNotification(t *testing.T) {
	svc := mocks.NewMockPaymentService(t)
	h := handlers.NewPaymentHandler(svc)
	ctx := context.Background()

	event := models.PaymentNotificationEvent{Reference: "ref-1", TransactionID: "99", Status: "approved"}
	svc.EXPECT().ApplyNotification(ctx, event).Return(nil).Once()

	err := h.HandleEvents(ctx, models.PaymentNotificationTopic, []byte(`{"reference":"ref-1","transaction_id":"99","status":"approved"}`))

	assert.NoError(t, err)
}

func TestHandleEvents_RejectsMalformedPayload(t *testing.T) {
	svc := mocks.NewMockPaymentService(t)
	h := handlers.NewPaymentHandler(svc)

	err := h.HandleEvents(context.Background(), models.PaymentNotificationTopic, []byte(`{"status":"approved"}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference")
	svc.AssertNotCalled(t, "ApplyNotification", mock.Anything, mock.Anything)
}

func TestHandleEvents_ServiceError(t *testing.T) {
	svc := mocks.NewMockPaymentService(t)
	h := handlers.NewPaymentHandler(svc)
	serviceErr := errors.New("ledger unavailable")

	svc.EXPECT().ApplyNotification(mock.Anything, mock.Anything).Return(serviceErr).Once()

	err := h.HandleEvents(context.Background(), models.PaymentNotificationTopic, []byte(`{"reference":"ref-1","status":"rejected"}`))

	assert.ErrorIs(t, err, serviceErr)
}

func TestHandleEvents_UnknownTopic(t *testing.T) {
	h := handlers.NewPaymentHandler(mocks.NewMockPaymentService(t))

	assert.Error(t, h.HandleEvents(context.Background(), "wallet.events", []byte(`{}`)))
}
