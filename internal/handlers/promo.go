// internal/handlers/promo.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vapeshop/vapeshop-backend/internal/repository"
	"github.com/vapeshop/vapeshop-backend/internal/services"
	"github.com/vapeshop/vapeshop-backend/internal/utils"
)

type PromoHandler struct {
	promoService *services.PromoService
}

func NewPromoHandler(promoService *services.PromoService) *PromoHandler {
	return &PromoHandler{promoService: promoService}
}

// GET /api/promos
func (h *PromoHandler) GetPromos(c *gin.Context) {
	promos, err := h.promoService.ListPromos(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, promos)
}

// POST /api/promos
func (h *PromoHandler) CreatePromo(c *gin.Context) {
	var req services.CreatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	promo, err := h.promoService.CreatePromo(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			utils.ConflictResponse(c, "Promo code already exists")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, promo)
}

// POST /api/promos/apply
func (h *PromoHandler) ApplyPromo(c *gin.Context) {
	var req services.ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	discount, err := h.promoService.ApplyPromo(c.Request.Context(), req.Code, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			utils.NotFoundResponse(c, "Promo code")
		case errors.Is(err, repository.ErrLimitReached):
			utils.ErrorResponse(c, http.StatusConflict, "LIMIT_REACHED", "Promo code usage limit reached", nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"discount": discount})
}
