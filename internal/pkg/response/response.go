package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stayhub/service-booking/internal/pkg/domain"
)

// Envelope is the JSON shape shared by all endpoints.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// PaginatedEnvelope adds paging metadata to a list response.
type PaginatedEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
}

// Success writes a 200 with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Paginated writes a 200 with a page of items and paging metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, PaginatedEnvelope{
		Success: true,
		Data:    items,
		Total:   total,
		Page:    page,
		Limit:   limit,
	})
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: message, Code: string(domain.KindInvalidRequest)})
}

// Unauthorized writes a 401 with the given message.
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: message, Code: string(domain.KindUnauthorized)})
}

// Forbidden writes a 403 with the given message.
func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, Envelope{Success: false, Message: message, Code: string(domain.KindForbidden)})
}

// InternalError writes a generic 500 without diagnostic detail.
func InternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Envelope{Success: false, Message: "internal error", Code: string(domain.KindInternal)})
}

// Error maps a domain error to its HTTP status. Non-domain errors become a
// generic 500 so internal detail never reaches the caller.
func Error(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok || kind == domain.KindInternal {
		InternalError(c)
		return
	}
	c.JSON(status, Envelope{Success: false, Message: err.Error(), Code: string(kind)})
}

var statusByKind = map[domain.ErrorKind]int{
	domain.KindInvalidRequest:   http.StatusBadRequest,
	domain.KindInvalidDateRange: http.StatusBadRequest,
	domain.KindNotFound:         http.StatusNotFound,
	domain.KindConflict:         http.StatusConflict,
	domain.KindInvalidState:     http.StatusBadRequest,
	domain.KindTooLate:          http.StatusBadRequest,
	domain.KindUnauthorized:     http.StatusUnauthorized,
	domain.KindForbidden:        http.StatusForbidden,
	domain.KindInternal:         http.StatusInternalServerError,
}
