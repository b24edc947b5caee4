package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/bersihin/bersihin/internal/adapter/gateway"
	domainErrors "github.com/bersihin/bersihin/internal/domain/errors"
	"github.com/bersihin/bersihin/internal/domain/model"
	"github.com/bersihin/bersihin/internal/domain/repository"
)

// WebhookNotification is the parsed gateway webhook payload. OrderRef
// carries the customer-visible order number as a string.
type WebhookNotification struct {
	OrderRef          string
	TransactionID     string
	TransactionStatus string
	StatusCode        string
	GrossAmount       string
	FraudStatus       string
	SignatureKey      string
}

// PaymentUseCase is the trust boundary for payment state: only this
// component, driven by gateway webhooks, moves non-cash payments to
// PAID. It also issues checkout tokens for non-cash bookings.
type PaymentUseCase struct {
	orders    repository.OrderRepository
	payments  repository.PaymentRepository
	gateway   gateway.Client
	serverKey string
	logger    *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(repos repository.Factory, gw gateway.Client, serverKey string, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{
		orders:    repos.Orders(),
		payments:  repos.Payments(),
		gateway:   gw,
		serverKey: serverKey,
		logger:    logger,
	}
}

// HandleWebhook reconciles a gateway notification. It never fails
// outward: every branch is logged and absorbed so the caller can always
// acknowledge receipt and the gateway never enters a retry storm.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, n WebhookNotification) {
	log := u.logger.With(
		slog.String("order_ref", n.OrderRef),
		slog.String("transaction_id", n.TransactionID),
		slog.String("transaction_status", n.TransactionStatus),
	)

	if n.OrderRef == "" || n.StatusCode == "" || n.GrossAmount == "" || n.SignatureKey == "" {
		log.Warn("webhook missing required fields, discarded")
		return
	}

	if !gateway.VerifySignature(n.SignatureKey, n.OrderRef, n.StatusCode, n.GrossAmount, u.serverKey) {
		log.Warn("webhook signature mismatch, discarded")
		return
	}

	if !u.crossCheck(ctx, n, log) {
		return
	}

	if !paidStatus(n.TransactionStatus, n.FraudStatus) {
		log.Info("webhook status does not settle payment, ignored")
		return
	}

	// Duplicate deliveries short-circuit on the transaction id.
	if existing, err := u.payments.GetByTransactionID(ctx, n.TransactionID); err == nil {
		if existing.Status == model.PaymentStatusPaid {
			log.Info("webhook replay for settled payment, ignored")
			return
		}
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		log.Error("payment lookup by transaction failed", slog.String("error", err.Error()))
		return
	}

	orderNumber, err := strconv.ParseInt(n.OrderRef, 10, 64)
	if err != nil {
		log.Warn("webhook order reference is not a number, discarded")
		return
	}

	order, err := u.orders.GetByNumber(ctx, orderNumber)
	if err != nil {
		log.Error("order lookup failed", slog.String("error", err.Error()))
		return
	}

	payment, err := u.payments.GetByOrder(ctx, order.ID)
	if err != nil {
		log.Error("payment lookup failed", slog.String("error", err.Error()))
		return
	}

	if payment.Status == model.PaymentStatusPaid {
		log.Info("payment already settled, ignored")
		return
	}

	if payment.Method.Cash() {
		log.Warn("webhook targeted a cash payment, discarded")
		return
	}

	gross, err := gateway.ParseGross(n.GrossAmount)
	if err != nil || gross != payment.Amount {
		log.Warn("webhook amount mismatch, discarded",
			slog.Int64("expected", payment.Amount), slog.String("gross_amount", n.GrossAmount))
		return
	}

	settled, err := u.payments.MarkPaid(ctx, payment.ID, n.TransactionID, repository.NotificationDraft{
		UserID:  order.CustomerID,
		OrderID: order.ID,
		Title:   "Payment received",
		Message: fmt.Sprintf("Payment for order #%d was received.", order.OrderNumber),
	})
	if err != nil {
		log.Error("settle payment failed", slog.String("error", err.Error()))
		return
	}
	if settled {
		log.Info("payment settled from webhook")
	}
}

// crossCheck re-fetches the transaction from the gateway and compares
// order reference, amount and status against the webhook payload. A
// transient gateway failure falls back to the already-verified
// signature; a mismatch discards the webhook.
func (u *PaymentUseCase) crossCheck(ctx context.Context, n WebhookNotification, log *slog.Logger) bool {
	if u.gateway == nil {
		return true
	}

	status, err := u.gateway.VerifyTransaction(ctx, n.OrderRef)
	if err != nil {
		if errors.Is(err, domainErrors.ErrGatewayUnavailable) {
			log.Warn("gateway cross-check unavailable, proceeding on signature")
			return true
		}
		log.Warn("gateway cross-check failed, discarded", slog.String("error", err.Error()))
		return false
	}

	if status.OrderRef != n.OrderRef ||
		status.GrossAmount != mustGross(n.GrossAmount) ||
		status.TransactionStatus != n.TransactionStatus {
		log.Warn("gateway cross-check mismatch, discarded")
		return false
	}
	return true
}

func mustGross(raw string) int64 {
	amount, err := gateway.ParseGross(raw)
	if err != nil {
		return -1
	}
	return amount
}

// paidStatus maps the gateway status vocabulary to a settlement
// decision: settlement, or capture accepted by fraud screening, means
// PAID; everything else leaves the payment PENDING.
func paidStatus(transactionStatus, fraudStatus string) bool {
	switch transactionStatus {
	case "settlement":
		return true
	case "capture":
		return fraudStatus == "accept"
	default:
		return false
	}
}

// RequestToken asks the gateway for a checkout token for a non-cash
// payment and stores it for the client to complete the flow.
func (u *PaymentUseCase) RequestToken(ctx context.Context, orderID, customerID uuid.UUID) (string, error) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.CustomerID != customerID {
		return "", domainErrors.ErrForbidden
	}

	payment, err := u.payments.GetByOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	if payment.Method.Cash() || payment.Status == model.PaymentStatusPaid {
		return "", domainErrors.ErrInvalidInput
	}
	if u.gateway == nil {
		return "", domainErrors.ErrGatewayUnavailable
	}

	token, err := u.gateway.CreateTransactionToken(ctx, strconv.FormatInt(order.OrderNumber, 10), payment.Amount, customerID.String())
	if err != nil {
		return "", err
	}

	if err := u.payments.AttachToken(ctx, orderID, token); err != nil {
		return "", err
	}
	return token, nil
}

// PaymentByOrder exposes the payment read side.
func (u *PaymentUseCase) PaymentByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	return u.payments.GetByOrder(ctx, orderID)
}
