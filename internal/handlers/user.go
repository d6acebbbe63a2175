// internal/handlers/user.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vapeshop/vapeshop-backend/internal/repository"
	"github.com/vapeshop/vapeshop-backend/internal/services"
	"github.com/vapeshop/vapeshop-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
	adminIDs    map[int64]struct{}
}

func NewUserHandler(userService *services.UserService, adminIDs map[int64]struct{}) *UserHandler {
	return &UserHandler{userService: userService, adminIDs: adminIDs}
}

// canActOn allows a caller to touch their own profile; admins may touch any.
func (h *UserHandler) canActOn(c *gin.Context, targetID int64) bool {
	actorID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return false
	}
	if actorID == targetID {
		return true
	}
	_, admin := h.adminIDs[actorID]
	return admin
}

// GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid user id", nil)
		return
	}

	// Reading an unknown id lazily creates the profile.
	user, err := h.userService.GetOrCreate(c.Request.Context(), id)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, user)
}

// PUT /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid user id", nil)
		return
	}

	if !h.canActOn(c, id) {
		utils.ForbiddenResponse(c, "")
		return
	}

	var req services.UpdateUserProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, user)
}

// POST /api/users/:id/referral
func (h *UserHandler) ApplyReferral(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid user id", nil)
		return
	}

	if !h.canActOn(c, id) {
		utils.ForbiddenResponse(c, "")
		return
	}

	var req services.ApplyReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	referrer, err := h.userService.ApplyReferral(c.Request.Context(), id, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			utils.NotFoundResponse(c, "Referral code")
		case errors.Is(err, services.ErrSelfReferral):
			utils.BadRequestResponse(c, err.Error(), nil)
		case errors.Is(err, services.ErrAlreadyReferred):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"referrer_id": referrer.ID})
}
