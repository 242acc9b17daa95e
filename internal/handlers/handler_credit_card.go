package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grana-app/grana-backend/internal/apperrors"
	"github.com/grana-app/grana-backend/internal/core/billing"
	portssvc "github.com/grana-app/grana-backend/internal/core/ports/services"
	"github.com/grana-app/grana-backend/internal/dto"
	"github.com/grana-app/grana-backend/internal/middleware"
)

// creditCardHandler handles HTTP requests related to credit cards and their
// derived statements.
type creditCardHandler struct {
	cardService portssvc.CreditCardSvcFacade
}

func newCreditCardHandler(cs portssvc.CreditCardSvcFacade) *creditCardHandler {
	return &creditCardHandler{cardService: cs}
}

// RegisterCreditCardRoutes registers routes related to credit cards.
// Exported so handler tests can mount the routes against a mock service.
func RegisterCreditCardRoutes(rg *gin.RouterGroup, cardService portssvc.CreditCardSvcFacade) {
	h := newCreditCardHandler(cardService)

	cards := rg.Group("/credit_cards")
	{
		cards.POST("", h.createCreditCard)
		cards.GET("", h.listCreditCards)
		cards.GET("/:id", h.getCreditCard)
		cards.PUT("/:id", h.updateCreditCard)
		cards.DELETE("/:id", h.deleteCreditCard)

		cards.GET("/:id/statement", h.getStatement)
		cards.GET("/:id/projection", h.getProjection)
		cards.POST("/:id/pay_invoice", h.payInvoice)
	}
}

// monthParam parses the required ?month=YYYY-MM query parameter.
func monthParam(c *gin.Context) (billing.YearMonth, bool) {
	month, err := billing.ParseYearMonth(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid month, expected YYYY-MM"})
		return billing.YearMonth{}, false
	}
	return month, true
}

// createCreditCard godoc
// @Summary Register a credit card
// @Description Creates a credit card with its billing cycle for the logged-in user
// @Tags credit_cards
// @Accept  json
// @Produce  json
// @Param   card body dto.CreateCreditCardRequest true "Card details"
// @Success 201 {object} dto.CreditCardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /credit_cards [post]
func (h *creditCardHandler) createCreditCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCreditCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	card, err := h.cardService.CreateCreditCard(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create credit card", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create credit card"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreditCardResponse(card))
}

// listCreditCards godoc
// @Summary List credit cards
// @Description Retrieves all credit cards of the logged-in user
// @Tags credit_cards
// @Produce  json
// @Success 200 {array} dto.CreditCardResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /credit_cards [get]
func (h *creditCardHandler) listCreditCards(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	cards, err := h.cardService.ListCreditCards(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list credit cards", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list credit cards"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditCardResponses(cards))
}

// getCreditCard godoc
// @Summary Get a credit card
// @Description Retrieves one credit card of the logged-in user
// @Tags credit_cards
// @Produce  json
// @Param   id path string true "Credit card ID"
// @Success 200 {object} dto.CreditCardResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /credit_cards/{id} [get]
func (h *creditCardHandler) getCreditCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	card, err := h.cardService.GetCreditCardByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Credit card not found"})
			return
		}
		logger.Error("Failed to get credit card", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve credit card"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditCardResponse(card))
}

// updateCreditCard godoc
// @Summary Update a credit card
// @Description Updates a credit card of the logged-in user
// @Tags credit_cards
// @Accept  json
// @Produce  json
// @Param   id path string true "Credit card ID"
// @Param   card body dto.CreateCreditCardRequest true "Card details"
// @Success 200 {object} dto.CreditCardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /credit_cards/{id} [put]
func (h *creditCardHandler) updateCreditCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCreditCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	card, err := h.cardService.UpdateCreditCard(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Credit card not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to update credit card", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update credit card"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditCardResponse(card))
}

// deleteCreditCard godoc
// @Summary Delete a credit card
// @Description Deletes a credit card of the logged-in user
// @Tags credit_cards
// @Produce  json
// @Param   id path string true "Credit card ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /credit_cards/{id} [delete]
func (h *creditCardHandler) deleteCreditCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.cardService.DeleteCreditCard(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Credit card not found"})
			return
		}
		logger.Error("Failed to delete credit card", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete credit card"})
		return
	}

	c.Status(http.StatusNoContent)
}

// getStatement godoc
// @Summary Get a card statement
// @Description Retrieves the statement of a card for one month: persisted transactions plus projected recurring charges
// @Tags credit_cards
// @Produce  json
// @Param   id path string true "Credit card ID"
// @Param   month query string true "Statement month (YYYY-MM)"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /credit_cards/{id}/statement [get]
func (h *creditCardHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	month, ok := monthParam(c)
	if !ok {
		return
	}

	stmt, err := h.cardService.GetStatement(c.Request.Context(), userID, c.Param("id"), month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Credit card not found"})
			return
		}
		logger.Error("Failed to build statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build statement"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(stmt))
}

// getProjection godoc
// @Summary Project future invoices
// @Description Forecasts invoice totals for the next 12 statement months of a card
// @Tags credit_cards
// @Produce  json
// @Param   id path string true "Credit card ID"
// @Success 200 {array} dto.ProjectionEntryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /credit_cards/{id}/projection [get]
func (h *creditCardHandler) getProjection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entries, err := h.cardService.ProjectInvoices(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Credit card not found"})
			return
		}
		logger.Error("Failed to project invoices", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to project invoices"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectionResponse(entries))
}

// payInvoice godoc
// @Summary Pay a card invoice
// @Description Marks the month's PENDING card transactions as PAID; repeating the call settles nothing further
// @Tags credit_cards
// @Produce  json
// @Param   id path string true "Credit card ID"
// @Param   month query string true "Statement month (YYYY-MM)"
// @Success 200 {object} dto.PayInvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /credit_cards/{id}/pay_invoice [post]
func (h *creditCardHandler) payInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	month, ok := monthParam(c)
	if !ok {
		return
	}

	count, err := h.cardService.PayInvoice(c.Request.Context(), userID, c.Param("id"), month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Credit card not found"})
			return
		}
		logger.Error("Failed to pay invoice", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to pay invoice"})
		return
	}

	c.JSON(http.StatusOK, dto.PayInvoiceResponse{Message: "Invoice paid", Count: count})
}
