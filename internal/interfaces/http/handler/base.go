package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/supplychain/backend/internal/domain/procurement"
	"github.com/supplychain/backend/internal/domain/shared"
	"github.com/supplychain/backend/internal/interfaces/http/dto"
	"github.com/supplychain/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common response utilities for all handlers
type BaseHandler struct{}

// Success sends a 200 response wrapping data in the standard envelope
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Paginated sends a 200 response with items and pagination meta
func (h *BaseHandler) Paginated(c *gin.Context, items any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(items, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponse(dto.ErrCodeBadRequest, message, middleware.GetRequestID(c)))
}

// HandleError converts domain errors to HTTP responses, deriving the
// status code from the domain error code
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := middleware.GetRequestID(c)

	var transitionErr *procurement.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		c.JSON(http.StatusUnprocessableEntity,
			dto.NewErrorResponse("INVALID_TRANSITION", transitionErr.Error(), requestID))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code),
			dto.NewErrorResponse(domainErr.Code, domainErr.Message, requestID))
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred", requestID))
}

// parseIDParam parses a UUID path parameter
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
