package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	identity "github.com/boostline-inc/boostline/internal/application/identity/usecases"
	verification "github.com/boostline-inc/boostline/internal/application/verification/usecases"
	"github.com/boostline-inc/boostline/internal/shared/utils"
)

type AuthHandler struct {
	registerUseCase *identity.RegisterUserUseCase
	loginUseCase    *identity.LoginUserUseCase
	verifyUseCase   *verification.VerifyEmailUseCase
}

func NewAuthHandler(
	registerUseCase *identity.RegisterUserUseCase,
	loginUseCase *identity.LoginUserUseCase,
	verifyUseCase *verification.VerifyEmailUseCase,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		verifyUseCase:   verifyUseCase,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=2,max=64"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), identity.RegisterUserCommand{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, newUserResponse(result.User), "Account created, verification email sent")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), identity.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"access_token": result.AccessToken,
		"user":         newUserResponse(result.User),
	})
}

// VerifyEmail consumes the token from the verification link. It is
// idempotent; clicking the link twice succeeds both times.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Verification token is required")
		return
	}

	if err := h.verifyUseCase.Execute(c.Request.Context(), verification.VerifyEmailCommand{
		Token: token,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Email verified", nil)
}
