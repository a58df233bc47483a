package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boostline-inc/boostline/internal/application/verification/usecases"
	"github.com/boostline-inc/boostline/internal/interfaces/http/middleware"
	"github.com/boostline-inc/boostline/internal/shared/utils"
)

type VerificationHandler struct {
	resendUseCase *usecases.ResendVerificationUseCase
}

func NewVerificationHandler(resendUseCase *usecases.ResendVerificationUseCase) *VerificationHandler {
	return &VerificationHandler{resendUseCase: resendUseCase}
}

// Resend re-sends the verification email, bounded by the shared rate
// limiter. Rejections come back as 429 with the wait details.
func (h *VerificationHandler) Resend(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.resendUseCase.Execute(c.Request.Context(), usecases.ResendVerificationCommand{
		UserID: userID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Verification email sent", nil)
}
