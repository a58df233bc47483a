package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/boostline-inc/boostline/internal/application/billing/usecases"
	"github.com/boostline-inc/boostline/internal/interfaces/http/middleware"
	"github.com/boostline-inc/boostline/internal/shared/id"
	"github.com/boostline-inc/boostline/internal/shared/utils"
)

type PaymentHandler struct {
	listUseCase   *usecases.ListUserPaymentsUseCase
	refundUseCase *usecases.RefundPaymentUseCase
}

func NewPaymentHandler(
	listUseCase *usecases.ListUserPaymentsUseCase,
	refundUseCase *usecases.RefundPaymentUseCase,
) *PaymentHandler {
	return &PaymentHandler{
		listUseCase:   listUseCase,
		refundUseCase: refundUseCase,
	}
}

// List returns the caller's payment ledger, refund rows included.
func (h *PaymentHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListUserPaymentsCommand{
		UserID: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	payments := make([]paymentResponse, 0, len(result.Payments))
	for _, p := range result.Payments {
		payments = append(payments, newPaymentResponse(p))
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"payments": payments})
}

type refundPaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Refund issues a refund for a completed charge. Admin only; the route
// group enforces that.
func (h *PaymentHandler) Refund(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req refundPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sid, numericID := parsePaymentRef(c.Param("id"))
	result, err := h.refundUseCase.Execute(c.Request.Context(), usecases.RefundPaymentCommand{
		PaymentSID:  sid,
		PaymentID:   numericID,
		Reason:      req.Reason,
		RequestedBy: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment refunded", gin.H{
		"refund":   newPaymentResponse(result.Refund),
		"original": newPaymentResponse(result.Original),
	})
}

func parsePaymentRef(ref string) (string, uint) {
	if strings.HasPrefix(ref, id.PrefixPayment+"_") {
		return ref, 0
	}
	numericID, err := strconv.ParseUint(ref, 10, 32)
	if err != nil {
		return ref, 0
	}
	return "", uint(numericID)
}
