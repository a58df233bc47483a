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

type SubscriptionHandler struct {
	createUseCase *usecases.CreateSubscriptionUseCase
	cancelUseCase *usecases.CancelSubscriptionUseCase
	getUseCase    *usecases.GetSubscriptionUseCase
	listUseCase   *usecases.ListUserSubscriptionsUseCase
}

func NewSubscriptionHandler(
	createUseCase *usecases.CreateSubscriptionUseCase,
	cancelUseCase *usecases.CancelSubscriptionUseCase,
	getUseCase *usecases.GetSubscriptionUseCase,
	listUseCase *usecases.ListUserSubscriptionsUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUseCase: createUseCase,
		cancelUseCase: cancelUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
	}
}

type createSubscriptionRequest struct {
	PlanSID         string                 `json:"plan_sid"`
	PlanID          uint                   `json:"plan_id"`
	PaymentMethod   string                 `json:"payment_method" binding:"required,oneof=card crypto"`
	ServiceSettings map[string]interface{} `json:"service_settings"`
}

// Create starts a new subscription. The card path returns the client
// secret the frontend needs to confirm the initial payment; the crypto
// path returns the payment reference and the accepted coin list.
func (h *SubscriptionHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreateSubscriptionCommand{
		UserID:          userID,
		PlanSID:         req.PlanSID,
		PlanID:          req.PlanID,
		PaymentMethod:   req.PaymentMethod,
		ServiceSettings: req.ServiceSettings,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := gin.H{
		"subscription": newSubscriptionResponse(result.Subscription),
	}
	if result.ClientSecret != "" {
		resp["client_secret"] = result.ClientSecret
	}
	if result.PaymentReference != "" {
		resp["payment_reference"] = result.PaymentReference
		resp["accepted_coins"] = result.AcceptedCoins
	}

	utils.CreatedResponse(c, resp, "Subscription created")
}

// Cancel cancels the caller's subscription with a grace period; access
// continues until the returned end date.
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	sid, numericID := parseSubscriptionRef(c.Param("id"))
	result, err := h.cancelUseCase.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		SubscriptionSID: sid,
		SubscriptionID:  numericID,
		RequestedBy:     userID,
		IsAdmin:         middleware.IsAdmin(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled", gin.H{
		"status":   string(result.Subscription.Status()),
		"end_date": result.EndDate,
	})
}

func (h *SubscriptionHandler) Get(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), usecases.GetSubscriptionCommand{
		SubscriptionSID: c.Param("id"),
		RequestedBy:     userID,
		IsAdmin:         middleware.IsAdmin(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := gin.H{
		"subscription":    newSubscriptionResponse(result.Subscription),
		"in_grace_period": result.InGracePeriod,
	}
	if result.Plan != nil {
		resp["plan"] = newPlanResponse(result.Plan)
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListUserSubscriptionsCommand{
		UserID: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"subscriptions": newSubscriptionResponses(result.Subscriptions),
	})
}

// parseSubscriptionRef accepts either a sub_ short id or a numeric
// primary key in the path.
func parseSubscriptionRef(ref string) (string, uint) {
	if strings.HasPrefix(ref, id.PrefixSubscription+"_") {
		return ref, 0
	}
	numericID, err := strconv.ParseUint(ref, 10, 32)
	if err != nil {
		return ref, 0
	}
	return "", uint(numericID)
}
