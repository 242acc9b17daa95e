package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grana-app/grana-backend/internal/apperrors"
	portssvc "github.com/grana-app/grana-backend/internal/core/ports/services"
	"github.com/grana-app/grana-backend/internal/dto"
	"github.com/grana-app/grana-backend/internal/middleware"
)

// reserveHandler handles HTTP requests related to savings reserves.
type reserveHandler struct {
	reserveService portssvc.ReserveSvcFacade
}

func newReserveHandler(rs portssvc.ReserveSvcFacade) *reserveHandler {
	return &reserveHandler{reserveService: rs}
}

// registerReserveRoutes registers routes related to reserves.
func registerReserveRoutes(rg *gin.RouterGroup, reserveService portssvc.ReserveSvcFacade) {
	h := newReserveHandler(reserveService)

	reserves := rg.Group("/reserves")
	{
		reserves.POST("", h.createReserve)
		reserves.GET("", h.listReserves)
		reserves.PUT("/:id", h.updateReserve)
		reserves.DELETE("/:id", h.deleteReserve)
		reserves.POST("/:id/movements", h.applyMovement)
	}
}

// createReserve godoc
// @Summary Create a reserve
// @Description Creates a savings reserve for the logged-in user
// @Tags reserves
// @Accept  json
// @Produce  json
// @Param   reserve body dto.CreateReserveRequest true "Reserve details"
// @Success 201 {object} dto.ReserveResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reserves [post]
func (h *reserveHandler) createReserve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reserve, err := h.reserveService.CreateReserve(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create reserve", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create reserve"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToReserveResponse(reserve))
}

// listReserves godoc
// @Summary List reserves
// @Description Retrieves all reserves of the logged-in user
// @Tags reserves
// @Produce  json
// @Success 200 {array} dto.ReserveResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reserves [get]
func (h *reserveHandler) listReserves(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reserves, err := h.reserveService.ListReserves(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list reserves", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list reserves"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReserveResponses(reserves))
}

// updateReserve godoc
// @Summary Update a reserve
// @Description Updates a reserve of the logged-in user
// @Tags reserves
// @Accept  json
// @Produce  json
// @Param   id path string true "Reserve ID"
// @Param   reserve body dto.CreateReserveRequest true "Reserve details"
// @Success 200 {object} dto.ReserveResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reserves/{id} [put]
func (h *reserveHandler) updateReserve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reserve, err := h.reserveService.UpdateReserve(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Reserve not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to update reserve", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update reserve"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReserveResponse(reserve))
}

// deleteReserve godoc
// @Summary Delete a reserve
// @Description Deletes a reserve of the logged-in user
// @Tags reserves
// @Produce  json
// @Param   id path string true "Reserve ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reserves/{id} [delete]
func (h *reserveHandler) deleteReserve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.reserveService.DeleteReserve(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Reserve not found"})
			return
		}
		logger.Error("Failed to delete reserve", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete reserve"})
		return
	}

	c.Status(http.StatusNoContent)
}

// applyMovement godoc
// @Summary Deposit into or withdraw from a reserve
// @Description Applies a movement to a reserve and returns the updated reserve with its history
// @Tags reserves
// @Accept  json
// @Produce  json
// @Param   id path string true "Reserve ID"
// @Param   movement body dto.ReserveMovementRequest true "Movement details"
// @Success 200 {object} dto.ReserveResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reserves/{id}/movements [post]
func (h *reserveHandler) applyMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReserveMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reserve, err := h.reserveService.ApplyMovement(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Reserve not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to apply reserve movement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to apply reserve movement"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReserveResponse(reserve))
}
