package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stayhub/service-booking/internal/application"
	hotelDomain "github.com/stayhub/service-booking/internal/domain/hotel"
	"github.com/stayhub/service-booking/internal/pkg/auth"
	"github.com/stayhub/service-booking/internal/pkg/middleware"
	"github.com/stayhub/service-booking/internal/pkg/response"
)

// HotelHandler handles HTTP requests for the hotel catalog. Reads are
// public; catalog management requires the admin role.
type HotelHandler struct {
	service *application.HotelService
}

// NewHotelHandler creates a new HotelHandler.
func NewHotelHandler(service *application.HotelService) *HotelHandler {
	return &HotelHandler{service: service}
}

// RegisterRoutes registers all hotel routes on the given router group.
func (h *HotelHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	hotels := r.Group("/api/v1/hotels")
	{
		hotels.GET("", h.SearchHotels)
		hotels.GET("/:id", h.GetHotel)
		hotels.GET("/:id/rooms", h.ListRooms)
	}

	adminMW := []gin.HandlerFunc{
		middleware.AuthMiddleware(jwtManager),
		middleware.RequireRole(auth.RoleAdmin),
	}
	hotels.POST("", append(adminMW, h.CreateHotel)...)
	hotels.PUT("/:id", append(adminMW, h.UpdateHotel)...)
	hotels.DELETE("/:id", append(adminMW, h.DeactivateHotel)...)
	hotels.POST("/:id/rooms", append(adminMW, h.AddRoom)...)
}

// SearchHotels handles GET /api/v1/hotels.
func (h *HotelHandler) SearchHotels(c *gin.Context) {
	page, limit := parsePagination(c)
	minStars, _ := strconv.Atoi(c.DefaultQuery("min_stars", "0"))

	filter := hotelDomain.SearchFilter{
		Query:    c.Query("q"),
		City:     c.Query("city"),
		MinStars: minStars,
	}

	result, err := h.service.SearchHotels(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetHotel handles GET /api/v1/hotels/:id.
func (h *HotelHandler) GetHotel(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hotel ID")
		return
	}

	result, err := h.service.GetHotel(c.Request.Context(), hotelID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListRooms handles GET /api/v1/hotels/:id/rooms.
func (h *HotelHandler) ListRooms(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hotel ID")
		return
	}

	result, err := h.service.ListRooms(c.Request.Context(), hotelID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateHotel handles POST /api/v1/hotels (admin).
func (h *HotelHandler) CreateHotel(c *gin.Context) {
	var req application.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateHotel(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateHotel handles PUT /api/v1/hotels/:id (admin).
func (h *HotelHandler) UpdateHotel(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hotel ID")
		return
	}

	var req application.UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateHotel(c.Request.Context(), hotelID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeactivateHotel handles DELETE /api/v1/hotels/:id (admin).
func (h *HotelHandler) DeactivateHotel(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hotel ID")
		return
	}

	if err := h.service.DeactivateHotel(c.Request.Context(), hotelID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"deactivated": true})
}

// AddRoom handles POST /api/v1/hotels/:id/rooms (admin).
func (h *HotelHandler) AddRoom(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid hotel ID")
		return
	}

	var req application.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddRoom(c.Request.Context(), hotelID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
