package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/bersihin/bersihin/internal/domain/errors"
	"github.com/bersihin/bersihin/internal/domain/model"
	"github.com/bersihin/bersihin/internal/server/http/dto"
	"github.com/bersihin/bersihin/internal/usecase"
)

// OrderHandler manages order lifecycle endpoints.
type OrderHandler struct {
	facade BookingFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade BookingFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), usecase.CreateOrderInput{
		CustomerID:    CurrentActorID(c),
		PackageID:     req.PackageID,
		ExtraIDs:      req.ExtraIDs,
		Lat:           req.Lat,
		Lng:           req.Lng,
		Address:       req.Address,
		ScheduledAt:   req.ScheduledAt,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentActorID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), orderID, CurrentActorID(c), CurrentActorIsAdmin(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Assign handles POST /api/orders/:id/assign.
func (h *OrderHandler) Assign(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req dto.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.AssignOrder(c.Request.Context(), orderID, req.WorkerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Advance handles POST /api/orders/:id/status.
func (h *OrderHandler) Advance(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.AdvanceStatus(c.Request.Context(), orderID, model.OrderStatus(req.Status), CurrentActorID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// UploadAfterPhotos handles POST /api/orders/:id/after-photos.
func (h *OrderHandler) UploadAfterPhotos(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req dto.PhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if len(req.Photos) == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.UploadAfterPhotos(c.Request.Context(), orderID, CurrentActorID(c), req.Photos)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Tip handles POST /api/orders/:id/tip.
func (h *OrderHandler) Tip(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req dto.TipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if _, err := h.facade.SubmitTip(c.Request.Context(), orderID, CurrentActorID(c), req.Amount); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// Rate handles POST /api/orders/:id/rating.
func (h *OrderHandler) Rate(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req dto.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if _, err := h.facade.SubmitRating(c.Request.Context(), orderID, CurrentActorID(c), req.Stars, req.Comment); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// Complete handles POST /api/orders/:id/complete.
func (h *OrderHandler) Complete(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.facade.VerifyCompletion(c.Request.Context(), orderID, CurrentActorID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// PaymentToken handles POST /api/orders/:id/payment/token.
func (h *OrderHandler) PaymentToken(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	token, err := h.facade.RequestPaymentToken(c.Request.Context(), orderID, CurrentActorID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	if err := h.facade.DeleteOrder(c.Request.Context(), orderID); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// BulkDelete handles POST /api/orders/bulk-delete.
func (h *OrderHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if len(req.OrderIDs) == 0 {
		abortWithError(c, domainErrors.ErrInvalidInput)
		return
	}

	if err := h.facade.BulkDeleteOrders(c.Request.Context(), req.OrderIDs); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		Status:         string(order.Status),
		WorkerID:       order.WorkerID,
		Lat:            order.Lat,
		Lng:            order.Lng,
		Address:        order.Address,
		ScheduledAt:    order.ScheduledAt,
		BeforePhotos:   order.BeforePhotos,
		AfterPhotos:    order.AfterPhotos,
		BasePrice:      order.BasePrice,
		DistancePrice:  order.DistancePrice,
		ExtraPrice:     order.ExtraPrice,
		Surge:          order.Surge,
		TotalPrice:     order.TotalPrice,
		DistanceMeters: order.DistanceMeters,
		ETAMinutes:     order.ETAMinutes,
		CreatedAt:      order.CreatedAt,
	}
	for _, e := range order.Extras {
		resp.Extras = append(resp.Extras, dto.OrderExtraResponse{ID: e.ID, Name: e.Name, Price: e.Price})
	}
	return resp
}
