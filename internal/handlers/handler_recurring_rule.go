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

// recurringRuleHandler handles HTTP requests related to recurring rules.
type recurringRuleHandler struct {
	ruleService portssvc.RecurringRuleSvcFacade
}

func newRecurringRuleHandler(rs portssvc.RecurringRuleSvcFacade) *recurringRuleHandler {
	return &recurringRuleHandler{ruleService: rs}
}

// registerRecurringRuleRoutes registers routes related to recurring rules.
func registerRecurringRuleRoutes(rg *gin.RouterGroup, ruleService portssvc.RecurringRuleSvcFacade) {
	h := newRecurringRuleHandler(ruleService)

	rules := rg.Group("/recurring_rules")
	{
		rules.POST("", h.createRule)
		rules.GET("", h.listRules)
		rules.PUT("/:id", h.updateRule)
		rules.DELETE("/:id", h.deleteRule)
	}
}

// createRule godoc
// @Summary Create a recurring rule
// @Description Creates a monthly recurring rule for the logged-in user
// @Tags recurring_rules
// @Accept  json
// @Produce  json
// @Param   rule body dto.CreateRecurringRuleRequest true "Rule details"
// @Success 201 {object} dto.RecurringRuleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring_rules [post]
func (h *recurringRuleHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecurringRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rule, err := h.ruleService.CreateRule(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create recurring rule", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create recurring rule"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecurringRuleResponse(rule))
}

// listRules godoc
// @Summary List recurring rules
// @Description Retrieves all recurring rules of the logged-in user
// @Tags recurring_rules
// @Produce  json
// @Success 200 {array} dto.RecurringRuleResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring_rules [get]
func (h *recurringRuleHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rules, err := h.ruleService.ListRules(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list recurring rules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list recurring rules"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringRuleResponses(rules))
}

// updateRule godoc
// @Summary Update a recurring rule
// @Description Updates an existing recurring rule of the logged-in user
// @Tags recurring_rules
// @Accept  json
// @Produce  json
// @Param   id path string true "Rule ID"
// @Param   rule body dto.CreateRecurringRuleRequest true "Rule details"
// @Success 200 {object} dto.RecurringRuleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring_rules/{id} [put]
func (h *recurringRuleHandler) updateRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecurringRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rule, err := h.ruleService.UpdateRule(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Recurring rule not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to update recurring rule", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update recurring rule"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringRuleResponse(rule))
}

// deleteRule godoc
// @Summary Delete a recurring rule
// @Description Deletes a recurring rule of the logged-in user
// @Tags recurring_rules
// @Produce  json
// @Param   id path string true "Rule ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring_rules/{id} [delete]
func (h *recurringRuleHandler) deleteRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.ruleService.DeleteRule(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Recurring rule not found"})
			return
		}
		logger.Error("Failed to delete recurring rule", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete recurring rule"})
		return
	}

	c.Status(http.StatusNoContent)
}
