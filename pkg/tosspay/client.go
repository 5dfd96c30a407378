// Package tosspay is a thin client for the Toss Payments v1 API, covering
// the two calls the purchase flow needs: confirm and cancel.
package tosspay

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.tosspayments.com/v1/payments"

// GatewayError is a non-2xx answer from the gateway. Code and Message come
// from the gateway's own error body when it sends one.
type GatewayError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *GatewayError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("gateway error %d: %s", e.StatusCode, e.Message)
}

// ConfirmResult is the subset of the confirm response the engine reads,
// plus the raw body for audit storage.
type ConfirmResult struct {
	PaymentKey string
	OrderId    string
	ApprovedAt time.Time
	RawPayload json.RawMessage
}

type CancelResult struct {
	RawPayload json.RawMessage
}

type IClient interface {
	// Confirm captures an authorized payment. The gateway verifies that the
	// amount matches what was authorized client side.
	Confirm(ctx context.Context, paymentKey, orderId string, amount int) (*ConfirmResult, error)
	// Cancel reverses a captured payment in full.
	Cancel(ctx context.Context, paymentKey, cancelReason string) (*CancelResult, error)
}

type client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

func NewClient(secretKey, baseURL string) IClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	// Secret key with empty password, per the gateway's Basic auth scheme.
	encoded := base64.StdEncoding.EncodeToString([]byte(secretKey + ":"))
	return &client{
		baseURL:    baseURL,
		authHeader: "Basic " + encoded,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *client) Confirm(ctx context.Context, paymentKey, orderId string, amount int) (*ConfirmResult, error) {
	body := map[string]interface{}{
		"paymentKey": paymentKey,
		"orderId":    orderId,
		"amount":     amount,
	}
	raw, err := c.post(ctx, c.baseURL+"/confirm", body)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		PaymentKey string    `json:"paymentKey"`
		OrderId    string    `json:"orderId"`
		ApprovedAt time.Time `json:"approvedAt"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decoding confirm response: %w", err)
	}

	return &ConfirmResult{
		PaymentKey: parsed.PaymentKey,
		OrderId:    parsed.OrderId,
		ApprovedAt: parsed.ApprovedAt,
		RawPayload: raw,
	}, nil
}

func (c *client) Cancel(ctx context.Context, paymentKey, cancelReason string) (*CancelResult, error) {
	body := map[string]interface{}{
		"cancelReason": cancelReason,
	}
	raw, err := c.post(ctx, c.baseURL+"/"+paymentKey+"/cancel", body)
	if err != nil {
		return nil, err
	}
	return &CancelResult{RawPayload: raw}, nil
}

func (c *client) post(ctx context.Context, url string, body map[string]interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gwErr := &GatewayError{StatusCode: resp.StatusCode, Message: "payment gateway request failed"}
		var errBody struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &errBody) == nil && errBody.Message != "" {
			gwErr.Code = errBody.Code
			gwErr.Message = errBody.Message
		}
		return nil, gwErr
	}

	return raw, nil
}
