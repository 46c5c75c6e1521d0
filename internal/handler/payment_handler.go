package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stayhub/service-booking/internal/application"
	"github.com/stayhub/service-booking/internal/pkg/auth"
	"github.com/stayhub/service-booking/internal/pkg/middleware"
	"github.com/stayhub/service-booking/internal/pkg/response"
)

// PaymentHandler handles HTTP requests for payment operations.
type PaymentHandler struct {
	service *application.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *application.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers all payment routes on the given router group.
func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	payments := r.Group("/api/v1/payments")
	payments.Use(authMW)
	{
		payments.POST("", h.ProcessPayment)
		payments.GET("", h.GetPaymentHistory)
		payments.GET("/:id", h.GetPayment)
		payments.POST("/:id/refund", h.RefundPayment)
	}
}

// ProcessPayment handles POST /api/v1/payments.
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ProcessPayment(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetPaymentHistory handles GET /api/v1/payments.
func (h *PaymentHandler) GetPaymentHistory(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := parsePagination(c)

	result, err := h.service.GetPaymentHistory(c.Request.Context(), identity.UserID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetPayment handles GET /api/v1/payments/:id.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid payment ID")
		return
	}

	result, err := h.service.GetPayment(c.Request.Context(), identity, paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RefundPayment handles POST /api/v1/payments/:id/refund.
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid payment ID")
		return
	}

	result, err := h.service.RefundPayment(c.Request.Context(), identity, paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
