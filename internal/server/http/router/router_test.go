package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bersihin/bersihin/internal/domain/model"
	pkgAuth "github.com/bersihin/bersihin/internal/pkg/auth"
	"github.com/bersihin/bersihin/internal/server/http/handlers"
	"github.com/bersihin/bersihin/internal/server/http/middleware"
	testhelpers "github.com/bersihin/bersihin/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	customerID := uuid.New()
	facade := testhelpers.BookingFacadeStub{
		OrderFacadeStub: testhelpers.OrderFacadeStub{
			OrdersFn: func(context.Context, uuid.UUID) ([]model.Order, error) {
				return []model.Order{{ID: uuid.New(), OrderNumber: 1, CustomerID: customerID, Status: model.OrderStatusPending, CreatedAt: time.Unix(0, 0)}}, nil
			},
		},
	}
	parser := testhelpers.TokenParserStub{Actor: pkgAuth.Actor{ID: customerID, Role: pkgAuth.RoleCustomer}}
	engine := Setup(facade, parser, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for orders, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", resp.Code)
	}

	// Customer tokens must not reach admin routes.
	req = httptest.NewRequest(http.MethodDelete, "/api/orders/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for admin route, got %d", resp.Code)
	}

	// The webhook route carries no bearer token at all.
	body, _ := json.Marshal(map[string]string{"order_id": "1", "transaction_status": "settlement"})
	req = httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for webhook, got %d", resp.Code)
	}
}

var _ handlers.BookingFacade = (*testhelpers.BookingFacadeStub)(nil)
var _ middleware.TokenParser = (*testhelpers.TokenParserStub)(nil)
