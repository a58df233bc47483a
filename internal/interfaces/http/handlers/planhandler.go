package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boostline-inc/boostline/internal/application/catalog/usecases"
	"github.com/boostline-inc/boostline/internal/interfaces/http/middleware"
	"github.com/boostline-inc/boostline/internal/shared/utils"
)

type PlanHandler struct {
	listUseCase   *usecases.ListPlansUseCase
	createUseCase *usecases.CreatePlanUseCase
	updateUseCase *usecases.UpdatePlanUseCase
	deleteUseCase *usecases.DeletePlanUseCase
}

func NewPlanHandler(
	listUseCase *usecases.ListPlansUseCase,
	createUseCase *usecases.CreatePlanUseCase,
	updateUseCase *usecases.UpdatePlanUseCase,
	deleteUseCase *usecases.DeletePlanUseCase,
) *PlanHandler {
	return &PlanHandler{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List is the public catalog: visible, active plans only.
func (h *PlanHandler) List(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListPlansCommand{})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	plans := make([]planResponse, 0, len(result.Plans))
	for _, plan := range result.Plans {
		plans = append(plans, newPlanResponse(plan))
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"plans": plans})
}

// AdminList returns the full catalog, hidden plans included.
func (h *PlanHandler) AdminList(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListPlansCommand{
		IncludeHidden: true,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	plans := make([]adminPlanResponse, 0, len(result.Plans))
	for _, plan := range result.Plans {
		plans = append(plans, newAdminPlanResponse(plan))
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"plans": plans})
}

type createPlanRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Price         int64  `json:"price" binding:"min=0"`
	Currency      string `json:"currency" binding:"required,currency"`
	BillingCycle  string `json:"billing_cycle" binding:"required,oneof=day week month year"`
	StripePriceID string `json:"stripe_price_id"`
	Visible       bool   `json:"visible"`
	SortOrder     int    `json:"sort_order"`
}

func (h *PlanHandler) Create(c *gin.Context) {
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	result, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreatePlanCommand{
		Name:          req.Name,
		RequestedBy:   userID,
		Description:   req.Description,
		Price:         req.Price,
		Currency:      req.Currency,
		BillingCycle:  req.BillingCycle,
		StripePriceID: req.StripePriceID,
		Visible:       req.Visible,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, newAdminPlanResponse(result.Plan), "Plan created")
}

type updatePlanRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Visible     bool   `json:"visible"`
	SortOrder   int    `json:"sort_order"`

	UpdatePricing bool   `json:"update_pricing"`
	Price         int64  `json:"price"`
	Currency      string `json:"currency" binding:"omitempty,currency"`
	BillingCycle  string `json:"billing_cycle"`
	StripePriceID string `json:"stripe_price_id"`
}

func (h *PlanHandler) Update(c *gin.Context) {
	var req updatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	result, err := h.updateUseCase.Execute(c.Request.Context(), usecases.UpdatePlanCommand{
		PlanSID:       c.Param("id"),
		RequestedBy:   userID,
		Name:          req.Name,
		Description:   req.Description,
		Visible:       req.Visible,
		SortOrder:     req.SortOrder,
		UpdatePricing: req.UpdatePricing,
		Price:         req.Price,
		Currency:      req.Currency,
		BillingCycle:  req.BillingCycle,
		StripePriceID: req.StripePriceID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan updated", newAdminPlanResponse(result.Plan))
}

func (h *PlanHandler) Delete(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	if err := h.deleteUseCase.Execute(c.Request.Context(), usecases.DeletePlanCommand{
		PlanSID:     c.Param("id"),
		RequestedBy: userID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan deleted", nil)
}
