package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// SaleRequest is a single capture attempt against the payment processor.
type SaleRequest struct {
	Amount              string `json:"amount"`
	PaymentMethodNonce  string `json:"paymentMethodNonce"`
	SubmitForSettlement bool   `json:"submitForSettlement"`
}

// SaleResult distinguishes a soft decline (Success false, Message set) from a
// successful capture. Hard processor failures are returned as errors by the
// gateway instead.
type SaleResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	Message       string `json:"message,omitempty"`
}

// Gateway is the payment processor seam. The orchestrator only ever talks to
// this interface, so tests substitute a fake and production wires either the
// HTTP adapter or the sandbox.
type Gateway interface {
	GenerateClientToken(ctx context.Context) (string, error)
	Sale(ctx context.Context, req SaleRequest) (*SaleResult, error)
}

// GatewayConfig holds the processor credentials, resolved from the
// environment.
type GatewayConfig struct {
	MerchantID string
	PublicKey  string
	PrivateKey string
	APIURL     string
}

func gatewayConfigFromEnv() (GatewayConfig, error) {
	cfg := GatewayConfig{
		MerchantID: os.Getenv("PAYMENT_MERCHANT_ID"),
		PublicKey:  os.Getenv("PAYMENT_PUBLIC_KEY"),
		PrivateKey: os.Getenv("PAYMENT_PRIVATE_KEY"),
		APIURL:     os.Getenv("PAYMENT_API_URL"),
	}
	if cfg.MerchantID == "" || cfg.PublicKey == "" || cfg.PrivateKey == "" || cfg.APIURL == "" {
		return GatewayConfig{}, fmt.Errorf("payment gateway configuration missing")
	}
	return cfg, nil
}

// NewGatewayFromEnv picks the sandbox gateway when PAYMENT_MODE is
// "sandbox" or "dev", otherwise the HTTP adapter against the configured
// processor endpoint.
func NewGatewayFromEnv() (Gateway, error) {
	mode := os.Getenv("PAYMENT_MODE")
	if mode == "sandbox" || mode == "dev" {
		return NewSandboxGateway(), nil
	}
	cfg, err := gatewayConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewHTTPGateway(cfg), nil
}

// HTTPGateway talks to a Braintree-style processor over its JSON API.
type HTTPGateway struct {
	cfg    GatewayConfig
	client *http.Client
}

func NewHTTPGateway(cfg GatewayConfig) *HTTPGateway {
	return &HTTPGateway{cfg: cfg, client: &http.Client{}}
}

type gatewayResponse struct {
	ClientToken string `json:"clientToken"`
	Success     bool   `json:"success"`
	Transaction struct {
		ID string `json:"id"`
	} `json:"transaction"`
	Message string `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (g *HTTPGateway) post(ctx context.Context, path string, payload map[string]interface{}) (*gatewayResponse, error) {
	payload["merchantId"] = g.cfg.MerchantID
	payload["publicKey"] = g.cfg.PublicKey
	payload["privateKey"] = g.cfg.PrivateKey

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.APIURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment gateway error (%d): %s", resp.StatusCode, string(body))
	}

	var decoded gatewayResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %v", err)
	}
	if decoded.Error != nil {
		return nil, fmt.Errorf("payment gateway error: %s", decoded.Error.Message)
	}
	return &decoded, nil
}

func (g *HTTPGateway) GenerateClientToken(ctx context.Context) (string, error) {
	resp, err := g.post(ctx, "/client_token", map[string]interface{}{})
	if err != nil {
		return "", err
	}
	if resp.ClientToken == "" {
		return "", fmt.Errorf("payment gateway returned empty client token")
	}
	return resp.ClientToken, nil
}

func (g *HTTPGateway) Sale(ctx context.Context, req SaleRequest) (*SaleResult, error) {
	resp, err := g.post(ctx, "/transactions", map[string]interface{}{
		"transaction": map[string]interface{}{
			"amount":             req.Amount,
			"paymentMethodNonce": req.PaymentMethodNonce,
			"options": map[string]bool{
				"submitForSettlement": req.SubmitForSettlement,
			},
		},
	})
	if err != nil {
		return nil, err
	}
	return &SaleResult{
		Success:       resp.Success,
		TransactionID: resp.Transaction.ID,
		Message:       resp.Message,
	}, nil
}
