package test

import (
	"context"

	"github.com/bersihin/bersihin/internal/adapter/gateway"
)

// GatewayClientStub simulates the payment gateway.
type GatewayClientStub struct {
	VerifyFn func(ctx context.Context, orderRef string) (*gateway.TransactionStatus, error)
	TokenFn  func(ctx context.Context, orderRef string, amount int64, customerID string) (string, error)
}

func (s GatewayClientStub) VerifyTransaction(ctx context.Context, orderRef string) (*gateway.TransactionStatus, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, orderRef)
	}
	return &gateway.TransactionStatus{OrderRef: orderRef, TransactionStatus: "settlement"}, nil
}

func (s GatewayClientStub) CreateTransactionToken(ctx context.Context, orderRef string, amount int64, customerID string) (string, error) {
	if s.TokenFn != nil {
		return s.TokenFn(ctx, orderRef, amount, customerID)
	}
	return "checkout-token", nil
}
