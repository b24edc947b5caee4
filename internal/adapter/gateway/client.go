// Package gateway talks to the external payment gateway. Only the two
// operations the core needs are implemented: authoritative transaction
// status lookup (used to cross-check webhooks) and checkout token
// creation for non-cash bookings.
package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/bersihin/bersihin/internal/domain/errors"
)

// TransactionStatus is the gateway's authoritative view of a transaction.
type TransactionStatus struct {
	OrderRef          string
	TransactionID     string
	StatusCode        string
	GrossAmount       int64
	TransactionStatus string
	FraudStatus       string
}

// Client exposes gateway operations used by the core.
type Client interface {
	VerifyTransaction(ctx context.Context, orderRef string) (*TransactionStatus, error)
	CreateTransactionToken(ctx context.Context, orderRef string, amount int64, customerID string) (string, error)
}

// HTTPClient implements Client against the gateway's REST API.
type HTTPClient struct {
	baseURL    *url.URL
	serverKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

type statusResponse struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}

type tokenRequest struct {
	TransactionDetails struct {
		OrderID     string `json:"order_id"`
		GrossAmount int64  `json:"gross_amount"`
	} `json:"transaction_details"`
	CustomerDetails struct {
		CustomerID string `json:"customer_id"`
	} `json:"customer_details"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// NewHTTPClient creates a gateway client with a default timeout.
func NewHTTPClient(baseURL, serverKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL:   parsed,
		serverKey: serverKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// VerifyTransaction fetches the authoritative transaction status for an
// order reference.
func (c *HTTPClient) VerifyTransaction(ctx context.Context, orderRef string) (*TransactionStatus, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v2/", orderRef, "/status")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainErrors.ErrGatewayUnavailable
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var data statusResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return nil, err
		}
		amount, err := ParseGross(data.GrossAmount)
		if err != nil {
			return nil, err
		}
		return &TransactionStatus{
			OrderRef:          data.OrderID,
			TransactionID:     data.TransactionID,
			StatusCode:        data.StatusCode,
			GrossAmount:       amount,
			TransactionStatus: data.TransactionStatus,
			FraudStatus:       data.FraudStatus,
		}, nil
	case http.StatusNotFound:
		return nil, domainErrors.ErrNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway status request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, domainErrors.ErrGatewayUnavailable
	}
}

// CreateTransactionToken requests a checkout token for the order.
func (c *HTTPClient) CreateTransactionToken(ctx context.Context, orderRef string, amount int64, customerID string) (string, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/snap/v1/transactions")

	var payload tokenRequest
	payload.TransactionDetails.OrderID = orderRef
	payload.TransactionDetails.GrossAmount = amount
	payload.CustomerDetails.CustomerID = customerID

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domainErrors.ErrGatewayUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway token request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return "", domainErrors.ErrGatewayUnavailable
	}

	var data tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if data.Token == "" {
		return "", domainErrors.ErrGatewayUnavailable
	}
	return data.Token, nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	credentials := base64.StdEncoding.EncodeToString([]byte(c.serverKey + ":"))
	req.Header.Set("Authorization", "Basic "+credentials)
}

// ParseGross converts the gateway's decimal-string amount ("100000.00")
// into whole minor units.
func ParseGross(raw string) (int64, error) {
	whole, _, _ := strings.Cut(raw, ".")
	if whole == "" {
		return 0, fmt.Errorf("empty gross amount")
	}
	amount, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse gross amount %q: %w", raw, err)
	}
	return amount, nil
}
