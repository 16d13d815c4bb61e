package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hxlane/rental_go_server/internal/api/middleware"
	"github.com/hxlane/rental_go_server/internal/model/dto"
	"github.com/hxlane/rental_go_server/internal/pkg/response"
	"github.com/hxlane/rental_go_server/internal/service"
)

type SubscriptionHandler struct {
	subService *service.SubscriptionService
	payService *service.PaymentReviewService
}

func NewSubscriptionHandler(
	subService *service.SubscriptionService,
	payService *service.PaymentReviewService,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subService: subService,
		payService: payService,
	}
}

// Subscribe 发起付费套餐订阅（待审核）
// POST /api/v1/subscriptions
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	sub, err := h.subService.Subscribe(userID, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotSubscribable):
			response.PlanError(c, err.Error())
		case errors.Is(err, service.ErrPendingExists):
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "订阅申请已提交，等待付款审核", sub)
}

// ListMine 当前用户的订阅历史
// GET /api/v1/subscriptions
func (h *SubscriptionHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	subs, err := h.subService.ListMine(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, subs)
}

// CancelPending 取消本人待审核的订阅
// DELETE /api/v1/subscriptions/:id
func (h *SubscriptionHandler) CancelPending(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的订阅 ID")
		return
	}

	if err := h.subService.CancelPending(userID, id); err != nil {
		if errors.Is(err, service.ErrSubNotCancelable) {
			response.PlanError(c, err.Error())
		} else {
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "订阅已取消", nil)
}

// SubmitPayment 为待审订阅提交付款凭据
// POST /api/v1/subscriptions/payments
func (h *SubscriptionHandler) SubmitPayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	payment, err := h.payService.Submit(userID, req.SubscriptionID, req.Amount, req.Method, req.Reference)
	if err != nil {
		if errors.Is(err, service.ErrSubNotFound) {
			response.NotFoundError(c, err.Error())
		} else {
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "付款凭据已提交，等待审核", payment)
}
