package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/boostline-inc/boostline/internal/application/billing/usecases"
	"github.com/boostline-inc/boostline/internal/interfaces/http/middleware"
	"github.com/boostline-inc/boostline/internal/shared/utils"
)

// AdminHandler hosts the destructive administrative operations: user
// deletion with its remote-cancellation cascade, and invoice deletion.
type AdminHandler struct {
	deleteUserUseCase    *usecases.DeleteUserUseCase
	deleteInvoiceUseCase *usecases.DeleteInvoiceUseCase
}

func NewAdminHandler(
	deleteUserUseCase *usecases.DeleteUserUseCase,
	deleteInvoiceUseCase *usecases.DeleteInvoiceUseCase,
) *AdminHandler {
	return &AdminHandler{
		deleteUserUseCase:    deleteUserUseCase,
		deleteInvoiceUseCase: deleteInvoiceUseCase,
	}
}

// DeleteUser removes an account. Remote subscriptions are cancelled
// best effort; failures are reported in the response and audited for
// retry, but the local deletion always goes through.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	requestedBy, _ := middleware.CurrentUserID(c)
	result, err := h.deleteUserUseCase.Execute(c.Request.Context(), usecases.DeleteUserCommand{
		UserID:      uint(targetID),
		RequestedBy: requestedBy,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User deleted", gin.H{
		"remote_cancellations": result.RemoteCancellations,
		"remote_failures":      result.RemoteFailures,
	})
}

// DeleteInvoice removes an invoice with no recorded payments.
func (h *AdminHandler) DeleteInvoice(c *gin.Context) {
	invoiceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid invoice id")
		return
	}

	requestedBy, _ := middleware.CurrentUserID(c)
	if err := h.deleteInvoiceUseCase.Execute(c.Request.Context(), usecases.DeleteInvoiceCommand{
		InvoiceID:   uint(invoiceID),
		RequestedBy: requestedBy,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invoice deleted", nil)
}
