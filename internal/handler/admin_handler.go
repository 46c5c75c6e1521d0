package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stayhub/service-booking/internal/application"
	"github.com/stayhub/service-booking/internal/pkg/auth"
	"github.com/stayhub/service-booking/internal/pkg/middleware"
	"github.com/stayhub/service-booking/internal/pkg/response"
)

// AdminHandler handles administrative booking endpoints.
type AdminHandler struct {
	service *application.BookingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *application.BookingService) *AdminHandler {
	return &AdminHandler{service: service}
}

// RegisterRoutes registers all admin routes on the given router group.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/bookings/stats", h.GetStats)
		admin.POST("/bookings/sweep-completed", h.SweepCompleted)
	}
}

// ListBookings handles GET /api/v1/admin/bookings with optional status and
// guest free-text filters.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.service.ListAllBookings(c.Request.Context(), c.Query("status"), c.Query("guest"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetStats handles GET /api/v1/admin/bookings/stats.
func (h *AdminHandler) GetStats(c *gin.Context) {
	result, err := h.service.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SweepCompleted handles POST /api/v1/admin/bookings/sweep-completed. It
// transitions confirmed bookings whose stay has ended to completed.
func (h *AdminHandler) SweepCompleted(c *gin.Context) {
	count, err := h.service.CompleteDepartedBookings(c.Request.Context(), time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"completed": count})
}
