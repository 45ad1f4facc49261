package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mrmateussiilva/petstory/config"
	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/mrmateussiilva/petstory/internal/retry"
)

const mercadoPagoTime = "2006-01-02T15:04:05.000-07:00"

type item struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	CurrencyID  string  `json:"currency_id"`
	UnitPrice   float64 `json:"unit_price"`
}

type payer struct {
	Email string `json:"email"`
}

type backURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type preferenceRequest struct {
	Items               []item   `json:"items"`
	Payer               payer    `json:"payer"`
	BackURLs            backURLs `json:"back_urls"`
	AutoReturn          string   `json:"auto_return"`
	NotificationURL     string   `json:"notification_url"`
	ExternalReference   string   `json:"external_reference"`
	StatementDescriptor string   `json:"statement_descriptor"`
	Expires             bool     `json:"expires"`
	ExpirationDateFrom  string   `json:"expiration_date_from"`
	ExpirationDateTo    string   `json:"expiration_date_to"`
}

type preferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

type paymentResponse struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	StatusDetail      string      `json:"status_detail"`
	ExternalReference string      `json:"external_reference"`
}

// Client is the Mercado Pago checkout gateway.
type Client struct {
	accessToken string
	apiURL      string
	baseURL     string
	httpClient  *http.Client
	retryConfig config.RetryConfig
	now         func() time.Time
}

func NewClient(cfg config.Payment) *Client {
	return &Client{
		accessToken: cfg.AccessToken,
		apiURL:      strings.TrimRight(cfg.APIURL, "/"),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		retryConfig: retry.WithDefaults(cfg.GetRetryConfig()),
		now:         time.Now,
	}
}

// CreateCheckout creates a checkout preference valid for one day. The sandbox
// checkout URL is preferred when the account returns one.
func (c *Client) CreateCheckout(ctx context.Context, reference string, key models.OrderKey, amount float64) (*models.CheckoutSession, error) {
	if c.accessToken == "" {
		return nil, fmt.Errorf("mercado pago access token not configured")
	}

	now := c.now()
	returnQuery := url.Values{
		"email":    {key.Email},
		"pet_name": {key.PetName},
	}.Encode()

	pref := preferenceRequest{
		Items: []item{{
			Title:       fmt.Sprintf("Kit Digital do %s - PetStory", key.PetName),
			Description: fmt.Sprintf("Kit digital completo com livro de colorir e página de homenagem para %s", key.PetName),
			Quantity:    1,
			CurrencyID:  models.CurrencyBRL,
			UnitPrice:   amount,
		}},
		Payer: payer{Email: key.Email},
		BackURLs: backURLs{
			Success: c.baseURL + "/api/payment/success?" + returnQuery,
			Failure: c.baseURL + "/api/payment/failure?" + returnQuery,
			Pending: c.baseURL + "/api/payment/pending?" + returnQuery,
		},
		AutoReturn:          "approved",
		NotificationURL:     c.baseURL + "/api/payment/webhook",
		ExternalReference:   reference,
		StatementDescriptor: "PetStory Art",
		Expires:             true,
		ExpirationDateFrom:  now.Format(mercadoPagoTime),
		ExpirationDateTo:    now.Add(24 * time.Hour).Format(mercadoPagoTime),
	}

	body, err := json.Marshal(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preference: %w", err)
	}

	var created preferenceResponse
	err = retry.Do(ctx, c.retryConfig, "mercadopago create preference", func(ctx context.Context) error {
		return c.do(ctx, http.MethodPost, "/checkout/preferences", body, http.StatusCreated, &created)
	})
	if err != nil {
		return nil, err
	}

	checkoutURL := created.SandboxInitPoint
	if checkoutURL == "" {
		checkoutURL = created.InitPoint
	}
	return &models.CheckoutSession{
		Reference:    reference,
		PreferenceID: created.ID,
		CheckoutURL:  checkoutURL,
	}, nil
}

// FetchTransaction looks a payment up by its Mercado Pago id.
func (c *Client) FetchTransaction(ctx context.Context, transactionID string) (*models.GatewayTransaction, error) {
	if c.accessToken == "" {
		return nil, fmt.Errorf("mercado pago access token not configured")
	}

	var payment paymentResponse
	path := "/v1/payments/" + url.PathEscape(transactionID)
	err := retry.Do(ctx, c.retryConfig, "mercadopago get payment", func(ctx context.Context) error {
		return c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &payment)
	})
	if err != nil {
		return nil, err
	}

	return &models.GatewayTransaction{
		ID:        payment.ID.String(),
		Reference: payment.ExternalReference,
		Status:    payment.Status,
		Detail:    payment.StatusDetail,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, want int, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, reader)
	if err != nil {
		return retry.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Mercado Pago: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != want {
		apiErr := fmt.Errorf("mercado pago error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return retry.Permanent(apiErr)
		}
		return apiErr
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return retry.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}
