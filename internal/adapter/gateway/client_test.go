package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainErrors "github.com/bersihin/bersihin/internal/domain/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientRejectsBadURL(t *testing.T) {
	if _, err := NewHTTPClient(":://bad", "key", testLogger()); err == nil {
		t.Fatal("expected error for malformed url")
	}
	if _, err := NewHTTPClient("relative/path", "key", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestVerifyTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/42/status" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") == "" {
			t.Fatal("expected basic auth header")
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"order_id":           "42",
			"transaction_id":     "tx-1",
			"status_code":        "200",
			"gross_amount":       "115000.00",
			"transaction_status": "settlement",
		})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "server-key", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status, err := client.VerifyTransaction(context.Background(), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.OrderRef != "42" || status.TransactionID != "tx-1" {
		t.Fatalf("unexpected identity: %+v", status)
	}
	if status.GrossAmount != 115000 {
		t.Fatalf("expected amount 115000, got %d", status.GrossAmount)
	}
	if status.TransactionStatus != "settlement" {
		t.Fatalf("unexpected status %s", status.TransactionStatus)
	}
}

func TestVerifyTransactionNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, "server-key", testLogger())
	if _, err := client.VerifyTransaction(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestVerifyTransactionServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, "server-key", testLogger())
	if _, err := client.VerifyTransaction(context.Background(), "42"); !errors.Is(err, domainErrors.ErrGatewayUnavailable) {
		t.Fatalf("expected gateway unavailable, got %v", err)
	}
}

func TestCreateTransactionToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/snap/v1/transactions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var payload tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.TransactionDetails.OrderID != "42" || payload.TransactionDetails.GrossAmount != 115000 {
			t.Fatalf("unexpected transaction details: %+v", payload.TransactionDetails)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "snap-token"})
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, "server-key", testLogger())
	token, err := client.CreateTransactionToken(context.Background(), "42", 115000, "cust-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "snap-token" {
		t.Fatalf("unexpected token %s", token)
	}
}

func TestSignatureRoundTrip(t *testing.T) {
	sig := Signature("42", "200", "115000.00", "server-key")
	if !VerifySignature(sig, "42", "200", "115000.00", "server-key") {
		t.Fatal("signature must verify against the same inputs")
	}
	if VerifySignature(sig, "42", "200", "115000.00", "other-key") {
		t.Fatal("signature must not verify with a different key")
	}
	if VerifySignature(sig, "43", "200", "115000.00", "server-key") {
		t.Fatal("signature must not verify for a different order")
	}
}

func TestParseGross(t *testing.T) {
	amount, err := ParseGross("100000.00")
	if err != nil || amount != 100000 {
		t.Fatalf("expected 100000, got %d (%v)", amount, err)
	}
	if _, err := ParseGross(""); err == nil {
		t.Fatal("expected error for empty amount")
	}
	if _, err := ParseGross("abc"); err == nil {
		t.Fatal("expected error for non-numeric amount")
	}
}
